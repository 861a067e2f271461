// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package relation keeps content ↔ taxonomy junction tables in step with a
// desired id set. All junctions share the same two-column shape, so one
// generic synchronizer serves every content kind.
package relation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taibuivan/ortheo/internal/platform/database/schema"
)

// Execer is the slice of pgx.Tx the synchronizer needs. Sync must run on
// the caller's open transaction: the delete and the reinserts have to land
// atomically or a reader could observe the row with zero associations.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

/*
Sync replaces the full association set for one content row.

Description: Implements a "Clear and Insert" strategy rather than a diff.
All junction rows for the content id are flushed first, then the target ids
are queued through the native pgx.Batch pipeline in one network round trip.
Duplicate ids inside the batch are absorbed by ON CONFLICT DO NOTHING rather
than failing the transaction. An empty target set is a valid "clear all".

Parameters:
  - context: context.Context
  - transaction: Execer (the actively executed transaction boundary)
  - junction: schema.JunctionTable (which physical join table to reconcile)
  - contentID: string (UUID of the owning content row)
  - taxonomyIDs: []string (the desired full association set)

Returns:
  - error: Statement or batch execution failures
*/
func Sync(context context.Context, transaction Execer, junction schema.JunctionTable, contentID string, taxonomyIDs []string) error {
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", junction.Table, junction.ContentID)
	if _, err := transaction.Exec(context, delQuery, contentID); err != nil {
		return fmt.Errorf("postgres: failed to clear %s: %w", junction.Table, err)
	}

	if len(taxonomyIDs) == 0 {
		return nil
	}

	insQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		junction.Table, junction.ContentID, junction.TaxonomyID)
	batch := &pgx.Batch{}
	for _, taxonomyID := range taxonomyIDs {
		batch.Queue(insQuery, contentID, taxonomyID)
	}

	results := transaction.SendBatch(context, batch)
	if err := results.Close(); err != nil {
		return fmt.Errorf("postgres: failed to batch insert into %s: %w", junction.Table, err)
	}

	return nil
}
