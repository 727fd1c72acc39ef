// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hero

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/heroes/internal/platform/apperr"
	"github.com/taibuivan/heroes/internal/platform/dberr"
	"github.com/taibuivan/heroes/internal/platform/validate"
	"github.com/taibuivan/heroes/pkg/pagination"
)

// # Validation Limits

const (
	nicknameMinLen = 3
	nicknameMaxLen = 50
	realNameMinLen = 2
	realNameMaxLen = 100
	originMinLen   = 2
)

// # Service Layer

// Service orchestrates the catalog rules on top of a [Repository].
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new hero [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
Validate checks the writable fields of a hero and reports every failure at once.

It has no side effects, so the HTTP layer runs it before any uploaded file
reaches permanent storage.

Returns:
  - error: A VALIDATION_ERROR [apperr.AppError] listing each failing field, or nil
*/
func Validate(hero *Hero) error {
	validator := &validate.Validator{}

	validator.Required(FieldNickname, hero.Nickname).
		MinLen(FieldNickname, hero.Nickname, nicknameMinLen).
		MaxLen(FieldNickname, hero.Nickname, nicknameMaxLen)

	validator.Required(FieldRealName, hero.RealName).
		MinLen(FieldRealName, hero.RealName, realNameMinLen).
		MaxLen(FieldRealName, hero.RealName, realNameMaxLen)

	validator.Required(FieldOriginDescription, hero.OriginDescription).
		MinLen(FieldOriginDescription, hero.OriginDescription, originMinLen)

	validator.Required(FieldSuperpowers, hero.Superpowers)
	validator.Required(FieldCatchPhrase, hero.CatchPhrase)
	validator.URLs(FieldImages, hero.Images)

	return validator.Err()
}

// normalize returns a copy of hero with surrounding whitespace removed from
// the text fields.
func normalize(hero Hero) Hero {
	hero.Nickname = strings.TrimSpace(hero.Nickname)
	hero.RealName = strings.TrimSpace(hero.RealName)
	hero.OriginDescription = strings.TrimSpace(hero.OriginDescription)
	hero.Superpowers = strings.TrimSpace(hero.Superpowers)
	hero.CatchPhrase = strings.TrimSpace(hero.CatchPhrase)
	return hero
}

// notFound is the client-facing error for a missing hero.
func notFound(id int) error {
	return apperr.NotFound(fmt.Sprintf("Superhero with id %d", id))
}

/*
ListHeroes returns one page of heroes ordered by id.

Parameters:
  - context: context.Context
  - filter: Filter (nickname search)
  - params: pagination.Params (normalized to the defaults when below 1)

Returns:
  - *Page: Heroes plus page, perPage, total and totalPages of the filtered set
  - error: Retrieval errors
*/
func (service *Service) ListHeroes(context context.Context, filter Filter, params pagination.Params) (*Page, error) {
	params = params.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)

	heroes, err := service.repo.ListHeroes(context, filter, params.PerPage, params.Offset())
	if err != nil {
		return nil, err
	}

	total, err := service.repo.CountHeroes(context, filter)
	if err != nil {
		return nil, err
	}

	if heroes == nil {
		heroes = make([]*Hero, 0)
	}

	return &Page{
		Heroes: heroes,
		Meta:   pagination.NewMeta(params.Page, params.PerPage, total),
	}, nil
}

/*
GetHero retrieves a hero by id.

Returns:
  - *Hero: The stored record
  - error: NOT_FOUND naming the id if no row matches
*/
func (service *Service) GetHero(context context.Context, id int) (*Hero, error) {
	hero, err := service.repo.GetHero(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return hero, nil
}

/*
CreateHero validates and inserts a new hero.

hero.Images must already hold resolved URLs. On success hero is refilled from
the stored row, including its new ID.
*/
func (service *Service) CreateHero(context context.Context, hero *Hero) error {
	record := normalize(*hero)
	if err := Validate(&record); err != nil {
		return err
	}

	record.ID = 0
	if record.Images == nil {
		record.Images = []string{}
	}

	if err := service.repo.CreateHero(context, &record); err != nil {
		return err
	}
	*hero = record

	service.logger.Info("hero_created",
		slog.Int("hero_id", hero.ID),
		slog.Int("images", len(hero.Images)),
	)

	return nil
}

/*
UpdateHero replaces the scalar fields of a hero and appends hero.Images to the
stored image list.

The image read and the write run in one transaction holding the row lock, so
concurrent updates of the same hero never lose each other's images. Scalar
fields are last-writer-wins.

Returns:
  - error: Validation failures, NOT_FOUND naming the id, or persistence errors
*/
func (service *Service) UpdateHero(context context.Context, id int, hero *Hero) error {
	input := normalize(*hero)
	if err := Validate(&input); err != nil {
		return err
	}

	appended := len(input.Images)

	var updated Hero
	err := service.repo.WithinTx(context, func(repository Repository) error {
		existing, err := repository.GetHeroImages(context, id)
		if err != nil {
			return err
		}

		record := input
		record.ID = id
		record.Images = make([]string, 0, len(existing)+len(input.Images))
		record.Images = append(record.Images, existing...)
		record.Images = append(record.Images, input.Images...)

		if err := repository.UpdateHero(context, &record); err != nil {
			return err
		}
		updated = record
		return nil
	})
	if errors.Is(err, dberr.ErrNotFound) {
		return notFound(id)
	}
	if err != nil {
		return err
	}
	*hero = updated

	service.logger.Info("hero_updated",
		slog.Int("hero_id", id),
		slog.Int("images_appended", appended),
		slog.Int("images_total", len(hero.Images)),
	)

	return nil
}

/*
DeleteHero hard-deletes a hero. Deleting an unknown id is not an error.
*/
func (service *Service) DeleteHero(context context.Context, id int) error {
	if err := service.repo.DeleteHero(context, id); err != nil {
		return err
	}

	service.logger.Info("hero_deleted", slog.Int("hero_id", id))
	return nil
}
