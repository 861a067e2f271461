// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/ortheo/internal/platform/database/schema"
	"github.com/taibuivan/ortheo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListLocales retrieves all registered publishing languages.

Parameters:
  - context: context.Context

Returns:
  - []*Locale: Collection ordered by code
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) ListLocales(context context.Context) ([]*Locale, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.RefLocale.Code, schema.RefLocale.Name, schema.RefLocale.NativeName,
		schema.RefLocale.Table, schema.RefLocale.Code)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_locales")
	}
	defer rows.Close()

	var locales []*Locale
	for rows.Next() {
		l := &Locale{}
		if err := rows.Scan(&l.Code, &l.Name, &l.NativeName); err != nil {
			return nil, dberr.Wrap(err, "scan_locale")
		}
		locales = append(locales, l)
	}

	return locales, nil
}

// GetByCode returns the registry entry for one locale code.
func (repository *PostgresRepository) GetByCode(context context.Context, code string) (*Locale, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.RefLocale.Code, schema.RefLocale.Name, schema.RefLocale.NativeName,
		schema.RefLocale.Table, schema.RefLocale.Code)

	l := &Locale{}
	if err := repository.db.QueryRow(context, query, code).Scan(&l.Code, &l.Name, &l.NativeName); err != nil {
		return nil, dberr.Wrap(err, "get_locale_by_code")
	}
	return l, nil
}
