package relation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ortheo/internal/core/relation"
	"github.com/taibuivan/ortheo/internal/platform/database/schema"
)

type execCall struct {
	sql  string
	args []any
}

// fakeTx records every statement instead of talking to a database.
type fakeTx struct {
	execs   []execCall
	batches []*pgx.Batch
	execErr error
}

func (tx *fakeTx) Exec(_ context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	tx.execs = append(tx.execs, execCall{sql: sql, args: arguments})
	return pgconn.CommandTag{}, tx.execErr
}

func (tx *fakeTx) SendBatch(_ context.Context, batch *pgx.Batch) pgx.BatchResults {
	tx.batches = append(tx.batches, batch)
	return fakeBatchResults{}
}

type fakeBatchResults struct{}

func (fakeBatchResults) Exec() (pgconn.CommandTag, error) { return pgconn.CommandTag{}, nil }
func (fakeBatchResults) Query() (pgx.Rows, error)         { return nil, nil }
func (fakeBatchResults) QueryRow() pgx.Row                { return nil }
func (fakeBatchResults) Close() error                     { return nil }

/*
TestSync_FullReplace verifies that the prior association set is flushed
before the target set is queued.
*/
func TestSync_FullReplace(t *testing.T) {
	tx := &fakeTx{}

	err := relation.Sync(context.Background(), tx, schema.AssessmentTag, "content-1", []string{"tag-b", "tag-c"})
	require.NoError(t, err)

	// 1. Delete ran first, scoped to the content id
	require.Len(t, tx.execs, 1)
	assert.Contains(t, tx.execs[0].sql, "DELETE FROM catalog.assessmenttag")
	assert.Equal(t, []any{"content-1"}, tx.execs[0].args)

	// 2. One queued insert per target id
	require.Len(t, tx.batches, 1)
	queued := tx.batches[0].QueuedQueries
	require.Len(t, queued, 2)
	assert.Contains(t, queued[0].SQL, "ON CONFLICT DO NOTHING")
	assert.Equal(t, []any{"content-1", "tag-b"}, queued[0].Arguments)
	assert.Equal(t, []any{"content-1", "tag-c"}, queued[1].Arguments)
}

/*
TestSync_EmptySetClearsAll verifies that an empty target set deletes
existing rows and sends no batch.
*/
func TestSync_EmptySetClearsAll(t *testing.T) {
	tx := &fakeTx{}

	err := relation.Sync(context.Background(), tx, schema.ResourceDomain, "content-1", nil)
	require.NoError(t, err)
	assert.Len(t, tx.execs, 1)
	assert.Empty(t, tx.batches)
}

/*
TestSync_DeleteFailureStopsInserts verifies that a failed clear aborts
before any insert is queued.
*/
func TestSync_DeleteFailureStopsInserts(t *testing.T) {
	tx := &fakeTx{execErr: errors.New("deadlock detected")}

	err := relation.Sync(context.Background(), tx, schema.ToolTag, "content-1", []string{"tag-a"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "catalog.tooltag"))
	assert.Empty(t, tx.batches)
}
