// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hero_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/heroes/internal/core/hero"
	"github.com/taibuivan/heroes/internal/core/hero/herotest"
	"github.com/taibuivan/heroes/internal/platform/apperr"
	"github.com/taibuivan/heroes/pkg/pagination"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newService(t *testing.T) (*hero.Service, *herotest.MemoryRepository) {
	t.Helper()
	repository := herotest.NewMemoryRepository()
	return hero.NewService(repository, discardLogger()), repository
}

func named(nickname string) hero.Hero {
	record := herotest.Valid()
	record.Nickname = nickname
	return record
}

/*
TestValidate collects every failing field in one error.
*/
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(record *hero.Hero)
		fields []string
	}{
		{"valid", func(record *hero.Hero) {}, nil},
		{"short_nickname", func(record *hero.Hero) { record.Nickname = "Su" }, []string{"nickname"}},
		{"padded_short_nickname", func(record *hero.Hero) { record.Nickname = "  ab  " }, []string{"nickname"}},
		{"long_nickname", func(record *hero.Hero) { record.Nickname = string(make([]byte, 51)) }, []string{"nickname"}},
		{"short_real_name", func(record *hero.Hero) { record.RealName = "C" }, []string{"real_name"}},
		{"short_origin", func(record *hero.Hero) { record.OriginDescription = "K" }, []string{"origin_description"}},
		{"missing_superpowers", func(record *hero.Hero) { record.Superpowers = "" }, []string{"superpowers"}},
		{"missing_catch_phrase", func(record *hero.Hero) { record.CatchPhrase = " " }, []string{"catch_phrase"}},
		{"bad_image", func(record *hero.Hero) { record.Images = []string{"https://cdn.example.com/a.png", "not a uri"} }, []string{"images[1]"}},
		{"everything_missing", func(record *hero.Hero) { *record = hero.Hero{} }, []string{
			"nickname", "real_name", "origin_description", "superpowers", "catch_phrase",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := herotest.Valid()
			tt.mutate(&record)

			err := hero.Validate(&record)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)

			fields := make([]string, 0, len(appError.Details))
			for _, detail := range appError.Details {
				fields = append(fields, detail.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

/*
TestService_ListHeroes pages through the id-ordered set and reports totals.
*/
func TestService_ListHeroes(t *testing.T) {
	service, repository := newService(t)
	for i := 1; i <= 12; i++ {
		repository.Seed(named(fmt.Sprintf("Hero %02d", i)))
	}

	tests := []struct {
		name       string
		params     pagination.Params
		wantIDs    []int
		wantPage   int
		wantPer    int
		totalPages int
	}{
		{"first_page_defaults", pagination.Params{}, []int{1, 2, 3, 4, 5}, 1, 5, 3},
		{"last_partial_page", pagination.Params{Page: 3, PerPage: 5}, []int{11, 12}, 3, 5, 3},
		{"beyond_last_page", pagination.Params{Page: 9, PerPage: 5}, []int{}, 9, 5, 3},
		{"huge_page_size", pagination.Params{Page: 1, PerPage: 1000}, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 1, 1000, 1},
		{"negative_values", pagination.Params{Page: -2, PerPage: -1}, []int{1, 2, 3, 4, 5}, 1, 5, 3},
		{"max_page_size", pagination.Params{Page: 1, PerPage: math.MaxInt}, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 1, math.MaxInt, 1},
		{"max_page_number", pagination.Params{Page: 1<<61 + 1, PerPage: 5}, []int{}, 1<<61 + 1, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := service.ListHeroes(context.Background(), hero.Filter{}, tt.params)
			require.NoError(t, err)

			ids := make([]int, 0, len(page.Heroes))
			for _, record := range page.Heroes {
				ids = append(ids, record.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantPer, page.PerPage)
			assert.Equal(t, 12, page.Total)
			assert.Equal(t, tt.totalPages, page.TotalPages)
		})
	}
}

/*
TestService_ListHeroes_Search filters by nickname regardless of case.
*/
func TestService_ListHeroes_Search(t *testing.T) {
	service, repository := newService(t)
	repository.Seed(named("Superman"), named("Batman"), named("Supergirl"), named("Wonder Woman"))

	upper, err := service.ListHeroes(context.Background(), hero.Filter{Search: "SUPER"}, pagination.Params{})
	require.NoError(t, err)
	lower, err := service.ListHeroes(context.Background(), hero.Filter{Search: "super"}, pagination.Params{})
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
	assert.Equal(t, 2, upper.Total)
	assert.Equal(t, 1, upper.TotalPages)
	require.Len(t, upper.Heroes, 2)
	assert.Equal(t, "Superman", upper.Heroes[0].Nickname)
	assert.Equal(t, "Supergirl", upper.Heroes[1].Nickname)
}

/*
TestService_GetHero returns the stored record or a NOT_FOUND naming the id.
*/
func TestService_GetHero(t *testing.T) {
	service, repository := newService(t)
	seeded := repository.Seed(herotest.Valid())[0]

	found, err := service.GetHero(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded, found)

	_, err = service.GetHero(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	assert.Equal(t, "Superhero with id 404 not found", err.Error())
}

/*
TestService_CreateHero assigns an id and keeps images in upload order.
*/
func TestService_CreateHero(t *testing.T) {
	service, _ := newService(t)

	t.Run("no_images", func(t *testing.T) {
		record := herotest.Valid()
		require.NoError(t, service.CreateHero(context.Background(), &record))

		assert.Positive(t, record.ID)
		assert.NotNil(t, record.Images)
		assert.Empty(t, record.Images)
	})

	t.Run("ordered_images", func(t *testing.T) {
		record := herotest.Valid()
		record.Images = []string{"https://cdn.example.com/1.png", "https://cdn.example.com/2.png", "https://cdn.example.com/3.png"}
		require.NoError(t, service.CreateHero(context.Background(), &record))

		stored, err := service.GetHero(context.Background(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.Images, stored.Images)
	})

	t.Run("invalid", func(t *testing.T) {
		record := named("Su")
		err := service.CreateHero(context.Background(), &record)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
		assert.Zero(t, record.ID)
	})

	t.Run("padding_does_not_count", func(t *testing.T) {
		record := named("  Su  ")
		err := service.CreateHero(context.Background(), &record)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("stores_trimmed_fields", func(t *testing.T) {
		record := named("  Batman ")
		require.NoError(t, service.CreateHero(context.Background(), &record))
		assert.Equal(t, "Batman", record.Nickname)

		stored, err := service.GetHero(context.Background(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, "Batman", stored.Nickname)
	})
}

/*
TestService_UpdateHero appends new images after the stored ones.
*/
func TestService_UpdateHero(t *testing.T) {
	service, repository := newService(t)

	base := herotest.Valid()
	base.Images = []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"}
	seeded := repository.Seed(base)[0]

	t.Run("append", func(t *testing.T) {
		input := named("Superman Prime")
		input.Images = []string{"https://cdn.example.com/u1.png"}

		require.NoError(t, service.UpdateHero(context.Background(), seeded.ID, &input))

		want := []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png", "https://cdn.example.com/u1.png"}
		assert.Equal(t, want, input.Images)

		stored, err := service.GetHero(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, "Superman Prime", stored.Nickname)
		assert.Equal(t, want, stored.Images)
	})

	t.Run("no_new_images_keeps_list", func(t *testing.T) {
		before, err := service.GetHero(context.Background(), seeded.ID)
		require.NoError(t, err)

		input := herotest.Valid()
		require.NoError(t, service.UpdateHero(context.Background(), seeded.ID, &input))
		assert.Equal(t, before.Images, input.Images)
	})

	t.Run("duplicates_are_kept", func(t *testing.T) {
		before, err := service.GetHero(context.Background(), seeded.ID)
		require.NoError(t, err)

		input := herotest.Valid()
		input.Images = []string{before.Images[0]}
		require.NoError(t, service.UpdateHero(context.Background(), seeded.ID, &input))
		assert.Len(t, input.Images, len(before.Images)+1)
	})

	t.Run("unknown_id", func(t *testing.T) {
		input := herotest.Valid()
		input.Images = []string{"https://cdn.example.com/u2.png"}
		before := input

		err := service.UpdateHero(context.Background(), 999, &input)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
		assert.Equal(t, "Superhero with id 999 not found", err.Error())
		assert.Equal(t, before, input)
	})

	t.Run("trims_text_fields", func(t *testing.T) {
		input := herotest.Valid()
		input.Nickname = "  Superman  "
		input.CatchPhrase = "Up, up and away!\n"
		require.NoError(t, service.UpdateHero(context.Background(), seeded.ID, &input))

		stored, err := service.GetHero(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, "Superman", stored.Nickname)
		assert.Equal(t, "Up, up and away!", stored.CatchPhrase)
	})

	t.Run("invalid", func(t *testing.T) {
		input := named("Su")
		err := service.UpdateHero(context.Background(), seeded.ID, &input)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	})
}

/*
TestService_UpdateHero_Concurrent never loses an image under parallel updates.
*/
func TestService_UpdateHero_Concurrent(t *testing.T) {
	service, repository := newService(t)
	seeded := repository.Seed(herotest.Valid())[0]

	const writers = 20
	errs := make(chan error, writers)
	for i := range writers {
		go func() {
			input := herotest.Valid()
			input.Images = []string{fmt.Sprintf("https://cdn.example.com/%d.png", i)}
			errs <- service.UpdateHero(context.Background(), seeded.ID, &input)
		}()
	}
	for range writers {
		require.NoError(t, <-errs)
	}

	stored, err := service.GetHero(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Images, writers)
}

/*
TestService_DeleteHero is idempotent.
*/
func TestService_DeleteHero(t *testing.T) {
	service, repository := newService(t)
	seeded := repository.Seed(herotest.Valid())[0]

	require.NoError(t, service.DeleteHero(context.Background(), seeded.ID))
	require.NoError(t, service.DeleteHero(context.Background(), seeded.ID))

	_, err := service.GetHero(context.Background(), seeded.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}
