// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assessment_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ortheo/internal/core/assessment"
)

// fakeDB hands out a single scripted transaction.
type fakeDB struct {
	tx *fakeTx
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) { return db.tx, nil }

func (db *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query outside transaction")
}

// fakeTx records every statement and fails the junction batch, so the test
// can observe what ran before the failure and whether it was committed.
type fakeTx struct {
	execs      []string
	batchErr   error
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Begin(context.Context) (pgx.Tx, error) { return tx, nil }

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.rolledBack = true
	return nil
}

func (tx *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	tx.execs = append(tx.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (tx *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return emptyRows{}, nil
}

func (tx *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: pgx.ErrNoRows}
}

func (tx *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	return failingBatchResults{err: tx.batchErr}
}

func (tx *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (tx *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (tx *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (tx *fakeTx) Conn() *pgx.Conn { return nil }

// emptyRows is a result set with zero rows.
type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

type errRow struct {
	err error
}

func (row errRow) Scan(...any) error { return row.err }

type failingBatchResults struct {
	err error
}

func (results failingBatchResults) Exec() (pgconn.CommandTag, error) { return pgconn.CommandTag{}, results.err }
func (results failingBatchResults) Query() (pgx.Rows, error)         { return nil, results.err }
func (results failingBatchResults) QueryRow() pgx.Row                { return errRow{err: results.err} }
func (results failingBatchResults) Close() error                     { return results.err }

func (tx *fakeTx) sawStatement(fragment string) bool {
	for _, sql := range tx.execs {
		if strings.Contains(sql, fragment) {
			return true
		}
	}
	return false
}

/*
TestCreate_AssociationFailureRollsBack verifies that a failure while writing
the taxonomy associations aborts the whole create: the structural insert and
the translation upsert ran on the same transaction, and that transaction was
rolled back instead of committed, so no partial assessment survives.
*/
func TestCreate_AssociationFailureRollsBack(t *testing.T) {
	batchErr := errors.New("junction insert failed")
	tx := &fakeTx{batchErr: batchErr}
	repo := assessment.NewPostgresRepository(&fakeDB{tx: tx})

	err := repo.Create(context.Background(), "assessment-1", &assessment.Input{
		Locale:  "fr",
		Name:    "Bilan de langage oral",
		Domains: []string{"Phonologie"},
	})
	require.ErrorIs(t, err, batchErr)

	// 1. The earlier steps all ran inside the transaction
	assert.True(t, tx.sawStatement("INSERT INTO catalog.assessment "))
	assert.True(t, tx.sawStatement("INSERT INTO catalog.assessmenttranslation"))
	assert.True(t, tx.sawStatement("INSERT INTO ref.domain"))

	// 2. Nothing was committed; the deferred rollback fired
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}
