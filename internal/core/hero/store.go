// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hero

import "context"

// Repository is the persistence contract of the catalog.
//
// GetHero, GetHeroImages and UpdateHero return [dberr.ErrNotFound] for an
// unknown id. DeleteHero does not.
type Repository interface {
	ListHeroes(context context.Context, filter Filter, limit, offset int) ([]*Hero, error)
	CountHeroes(context context.Context, filter Filter) (int, error)
	GetHero(context context.Context, id int) (*Hero, error)

	// GetHeroImages reads the image list and locks the row until the
	// surrounding transaction ends.
	GetHeroImages(context context.Context, id int) ([]string, error)

	CreateHero(context context.Context, hero *Hero) error
	UpdateHero(context context.Context, hero *Hero) error
	DeleteHero(context context.Context, id int) error

	// WithinTx runs fn against a repository bound to a single transaction.
	// The transaction is committed when fn returns nil and rolled back otherwise.
	WithinTx(context context.Context, fn func(repository Repository) error) error
}
