// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package draft persists the in-progress create form between heroctl runs.

There is exactly one draft, stored under [StorageKey]. It holds the text
fields only; selected image files are never persisted.
*/
package draft

import "context"

// StorageKey names the single draft in every backend.
const StorageKey = "hero-draft"

// Draft is the last-edited state of the create form.
type Draft struct {
	Nickname          string `json:"nickname"`
	RealName          string `json:"real_name"`
	OriginDescription string `json:"origin_description"`
	Superpowers       string `json:"superpowers"`
	CatchPhrase       string `json:"catch_phrase"`
}

// IsEmpty reports whether no field has been filled in.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Patch is a partial update. Nil fields keep their current value.
type Patch struct {
	Nickname          *string
	RealName          *string
	OriginDescription *string
	Superpowers       *string
	CatchPhrase       *string
}

// Apply returns d with every non-nil field of patch applied.
func (d Draft) Apply(patch Patch) Draft {
	set := func(target *string, value *string) {
		if value != nil {
			*target = *value
		}
	}

	set(&d.Nickname, patch.Nickname)
	set(&d.RealName, patch.RealName)
	set(&d.OriginDescription, patch.OriginDescription)
	set(&d.Superpowers, patch.Superpowers)
	set(&d.CatchPhrase, patch.CatchPhrase)
	return d
}

// Store is a draft backend.
//
// Load returns an empty Draft, not an error, when nothing has been saved.
type Store interface {
	Load(ctx context.Context) (Draft, error)
	Save(ctx context.Context, draft Draft) error
	Clear(ctx context.Context) error
}

// Merge loads the draft, applies patch, saves and returns the result.
func Merge(ctx context.Context, store Store, patch Patch) (Draft, error) {
	current, err := store.Load(ctx)
	if err != nil {
		return Draft{}, err
	}

	merged := current.Apply(patch)
	if err := store.Save(ctx, merged); err != nil {
		return Draft{}, err
	}
	return merged, nil
}
