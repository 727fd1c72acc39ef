// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package hero manages the superhero catalog.

It covers the record lifecycle from creation to hard deletion, paginated
listing with nickname search and the append-on-update policy for images.

# Core Responsibility

  - Catalog: Defines the [Hero] entity and its validation rules.
  - Images: Keeps image URLs in insertion order; the first one is the avatar.
  - Persistence: [Repository] abstracts the relational table.

The [Handler] adapts the [Service] to the HTTP surface.
*/
package hero

import "github.com/taibuivan/heroes/pkg/pagination"

// # Field Names

// Field names shared by JSON bodies, form fields and validation errors.
const (
	FieldID                = "id"
	FieldNickname          = "nickname"
	FieldRealName          = "real_name"
	FieldOriginDescription = "origin_description"
	FieldSuperpowers       = "superpowers"
	FieldCatchPhrase       = "catch_phrase"
	FieldImages            = "images"
)

// # Core Entities

// Hero is the single catalog record.
type Hero struct {
	ID                int      `json:"id"`
	Nickname          string   `json:"nickname"`
	RealName          string   `json:"real_name"`
	OriginDescription string   `json:"origin_description"`
	Superpowers       string   `json:"superpowers"` // free text, comma separated by convention
	CatchPhrase       string   `json:"catch_phrase"`
	Images            []string `json:"images"`
}

// Filter narrows a listing.
type Filter struct {
	// Search is a case-insensitive substring of the nickname. Empty means no filter.
	Search string
}

// Page is one page of a listing with its pagination metadata.
type Page struct {
	Heroes []*Hero `json:"heroes"`
	pagination.Meta
}
