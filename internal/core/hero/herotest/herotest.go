// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package herotest provides in-memory doubles for the hero catalog.
package herotest

import (
	"context"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/heroes/internal/core/hero"
	"github.com/taibuivan/heroes/internal/platform/dberr"
	"github.com/taibuivan/heroes/internal/platform/storage"
)

// MemoryRepository is a [hero.Repository] backed by a map.
//
// WithinTx serializes transactions and restores the previous state when the
// callback fails.
type MemoryRepository struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	nextID int
	rows   map[int]hero.Hero
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, rows: make(map[int]hero.Hero)}
}

func clone(record hero.Hero) *hero.Hero {
	record.Images = append([]string{}, record.Images...)
	return &record
}

func matches(record hero.Hero, filter hero.Filter) bool {
	return strings.Contains(strings.ToLower(record.Nickname), strings.ToLower(filter.Search))
}

func (repository *MemoryRepository) sortedIDs() []int {
	ids := make([]int, 0, len(repository.rows))
	for id := range repository.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (repository *MemoryRepository) ListHeroes(ctx context.Context, filter hero.Filter, limit, offset int) ([]*hero.Hero, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	heroes := make([]*hero.Hero, 0)
	skipped := 0
	for _, id := range repository.sortedIDs() {
		record := repository.rows[id]
		if !matches(record, filter) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(heroes) == limit {
			break
		}
		heroes = append(heroes, clone(record))
	}
	return heroes, nil
}

func (repository *MemoryRepository) CountHeroes(ctx context.Context, filter hero.Filter) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	total := 0
	for _, record := range repository.rows {
		if matches(record, filter) {
			total++
		}
	}
	return total, nil
}

func (repository *MemoryRepository) GetHero(ctx context.Context, id int) (*hero.Hero, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	record, ok := repository.rows[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return clone(record), nil
}

func (repository *MemoryRepository) GetHeroImages(ctx context.Context, id int) ([]string, error) {
	record, err := repository.GetHero(ctx, id)
	if err != nil {
		return nil, err
	}
	return record.Images, nil
}

func (repository *MemoryRepository) CreateHero(ctx context.Context, record *hero.Hero) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	record.ID = repository.nextID
	repository.nextID++
	repository.rows[record.ID] = *clone(*record)
	return nil
}

func (repository *MemoryRepository) UpdateHero(ctx context.Context, record *hero.Hero) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.rows[record.ID]; !ok {
		return dberr.ErrNotFound
	}
	repository.rows[record.ID] = *clone(*record)
	return nil
}

func (repository *MemoryRepository) DeleteHero(ctx context.Context, id int) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.rows, id)
	return nil
}

func (repository *MemoryRepository) WithinTx(ctx context.Context, fn func(repository hero.Repository) error) error {
	repository.txMu.Lock()
	defer repository.txMu.Unlock()

	repository.mu.Lock()
	snapshot := make(map[int]hero.Hero, len(repository.rows))
	for id, record := range repository.rows {
		snapshot[id] = *clone(record)
	}
	repository.mu.Unlock()

	if err := fn(repository); err != nil {
		repository.mu.Lock()
		repository.rows = snapshot
		repository.mu.Unlock()
		return err
	}
	return nil
}

// Seed inserts records directly and returns them with their ids.
func (repository *MemoryRepository) Seed(records ...hero.Hero) []*hero.Hero {
	seeded := make([]*hero.Hero, 0, len(records))
	for _, record := range records {
		created := clone(record)
		_ = repository.CreateHero(context.Background(), created)
		seeded = append(seeded, created)
	}
	return seeded
}

// Persister is a [storage.Persister] that consumes staged files and hands out
// URLs under BaseURL, or fails with Err.
type Persister struct {
	BaseURL string
	Err     error

	mu        sync.Mutex
	persisted []string
}

func (persister *Persister) Persist(ctx context.Context, file storage.StagedFile) (string, error) {
	if persister.Err != nil {
		return "", persister.Err
	}

	_ = os.Remove(file.Path)

	persister.mu.Lock()
	defer persister.mu.Unlock()
	persister.persisted = append(persister.persisted, file.Name)

	return strings.TrimRight(persister.BaseURL, "/") + "/" + file.Name, nil
}

// Persisted returns the names of the files persisted so far.
func (persister *Persister) Persisted() []string {
	persister.mu.Lock()
	defer persister.mu.Unlock()
	return append([]string{}, persister.persisted...)
}

// Valid returns a hero that passes validation.
func Valid() hero.Hero {
	return hero.Hero{
		Nickname:          "Superman",
		RealName:          "Clark Kent",
		OriginDescription: "From Krypton",
		Superpowers:       "Flight, strength",
		CatchPhrase:       "Up, up and away!",
	}
}
