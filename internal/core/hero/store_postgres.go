// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hero

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/heroes/internal/platform/database/schema"
	"github.com/taibuivan/heroes/internal/platform/dberr"
)

// DB is the query surface shared by *pgxpool.Pool and pgx.Tx.
type DB interface {
	Begin(context context.Context) (pgx.Tx, error)
	Exec(context context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(context context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(context context.Context, sql string, args ...any) pgx.Row
}

// likeEscaper makes LIKE metacharacters in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresRepository implements [Repository] on top of PostgreSQL.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository constructs a repository bound to db.
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func heroColumns() string {
	return strings.Join(schema.Hero.Columns(), ", ")
}

// searchClause returns the WHERE clause and its arguments for filter.
func searchClause(filter Filter) (string, []any) {
	if filter.Search == "" {
		return "", nil
	}
	pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
	return fmt.Sprintf(" WHERE %s ILIKE $1", schema.Hero.Nickname), []any{pattern}
}

func scanHero(row pgx.Row, hero *Hero) error {
	return row.Scan(
		&hero.ID, &hero.Nickname, &hero.RealName, &hero.OriginDescription,
		&hero.Superpowers, &hero.CatchPhrase, &hero.Images,
	)
}

// nonNilImages keeps NULL out of the images column.
func nonNilImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

func (repository *PostgresRepository) ListHeroes(context context.Context, filter Filter, limit, offset int) ([]*Hero, error) {
	where, args := searchClause(filter)
	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		heroColumns(), schema.Hero.Table, where, schema.Hero.ID, len(args)+1, len(args)+2)

	rows, err := repository.db.Query(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_heroes")
	}
	defer rows.Close()

	heroes := make([]*Hero, 0)
	for rows.Next() {
		hero := &Hero{}
		if err := scanHero(rows, hero); err != nil {
			return nil, dberr.Wrap(err, "scan_hero")
		}
		hero.Images = nonNilImages(hero.Images)
		heroes = append(heroes, hero)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_heroes_rows")
	}

	return heroes, nil
}

func (repository *PostgresRepository) CountHeroes(context context.Context, filter Filter) (int, error) {
	where, args := searchClause(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.Hero.Table, where)

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_heroes")
	}

	return total, nil
}

func (repository *PostgresRepository) GetHero(context context.Context, id int) (*Hero, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, heroColumns(), schema.Hero.Table, schema.Hero.ID)

	hero := &Hero{}
	if err := scanHero(repository.db.QueryRow(context, query, id), hero); err != nil {
		return nil, dberr.Wrap(err, "get_hero")
	}
	hero.Images = nonNilImages(hero.Images)

	return hero, nil
}

func (repository *PostgresRepository) GetHeroImages(context context.Context, id int) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, schema.Hero.Images, schema.Hero.Table, schema.Hero.ID)

	var images []string
	if err := repository.db.QueryRow(context, query, id).Scan(&images); err != nil {
		return nil, dberr.Wrap(err, "get_hero_images")
	}

	return nonNilImages(images), nil
}

func (repository *PostgresRepository) CreateHero(context context.Context, hero *Hero) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s`,
		schema.Hero.Table,
		schema.Hero.Nickname, schema.Hero.RealName, schema.Hero.OriginDescription,
		schema.Hero.Superpowers, schema.Hero.CatchPhrase, schema.Hero.Images,
		heroColumns(),
	)

	row := repository.db.QueryRow(context, query,
		hero.Nickname, hero.RealName, hero.OriginDescription,
		hero.Superpowers, hero.CatchPhrase, nonNilImages(hero.Images),
	)
	if err := scanHero(row, hero); err != nil {
		return dberr.Wrap(err, "create_hero")
	}
	hero.Images = nonNilImages(hero.Images)

	return nil
}

func (repository *PostgresRepository) UpdateHero(context context.Context, hero *Hero) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $7 RETURNING %s`,
		schema.Hero.Table,
		schema.Hero.Nickname, schema.Hero.RealName, schema.Hero.OriginDescription,
		schema.Hero.Superpowers, schema.Hero.CatchPhrase, schema.Hero.Images,
		schema.Hero.ID,
		heroColumns(),
	)

	row := repository.db.QueryRow(context, query,
		hero.Nickname, hero.RealName, hero.OriginDescription,
		hero.Superpowers, hero.CatchPhrase, nonNilImages(hero.Images),
		hero.ID,
	)
	if err := scanHero(row, hero); err != nil {
		return dberr.Wrap(err, "update_hero")
	}
	hero.Images = nonNilImages(hero.Images)

	return nil
}

func (repository *PostgresRepository) DeleteHero(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Hero.Table, schema.Hero.ID)

	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "delete_hero")
	}

	return nil
}

func (repository *PostgresRepository) WithinTx(context context.Context, fn func(repository Repository) error) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_tx")
	}

	if err := fn(&PostgresRepository{db: transaction}); err != nil {
		_ = transaction.Rollback(context)
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_tx")
	}

	return nil
}
