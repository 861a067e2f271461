package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/ortheo/internal/core/i18n"
	"github.com/taibuivan/ortheo/internal/platform/apperr"
	"github.com/taibuivan/ortheo/internal/platform/database/schema"
	"github.com/taibuivan/ortheo/internal/platform/dberr"
	"github.com/taibuivan/ortheo/pkg/uuidv7"
)

// kindTables maps a taxonomy kind to its physical tables. Keeping the
// mapping in one place lets the generic normalizer and delete paths build
// their statements without per-kind query duplication.
type kindTables struct {
	entity        string
	entityID      string
	entitySlug    string
	translation   string
	translationFK string
	locale        string
	label         string
	slug          string
	junctions     []schema.JunctionTable
}

func tablesFor(kind Kind) kindTables {
	switch kind {
	case KindDomain:
		return kindTables{
			entity:        schema.RefDomain.Table,
			entityID:      schema.RefDomain.ID,
			translation:   schema.RefDomainTranslation.Table,
			translationFK: schema.RefDomainTranslation.DomainID,
			locale:        schema.RefDomainTranslation.Locale,
			label:         schema.RefDomainTranslation.Label,
			slug:          schema.RefDomainTranslation.Slug,
			junctions:     []schema.JunctionTable{schema.AssessmentDomain, schema.ResourceDomain, schema.ToolDomain},
		}
	case KindPathology:
		return kindTables{
			entity:        schema.RefPathology.Table,
			entityID:      schema.RefPathology.ID,
			entitySlug:    schema.RefPathology.Slug,
			translation:   schema.RefPathologyTranslation.Table,
			translationFK: schema.RefPathologyTranslation.PathologyID,
			locale:        schema.RefPathologyTranslation.Locale,
			label:         schema.RefPathologyTranslation.Label,
			junctions:     []schema.JunctionTable{schema.AssessmentPathology},
		}
	default:
		return kindTables{
			entity:        schema.RefTag.Table,
			entityID:      schema.RefTag.ID,
			translation:   schema.RefTagTranslation.Table,
			translationFK: schema.RefTagTranslation.TagID,
			locale:        schema.RefTagTranslation.Locale,
			label:         schema.RefTagTranslation.Label,
			junctions:     []schema.JunctionTable{schema.AssessmentTag, schema.ResourceTag, schema.ToolTag},
		}
	}
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListDomains(context context.Context, locale, fallback string) ([]*Domain, error) {
	domains, err := repository.queryDomains(context, "", locale, fallback)
	if err != nil {
		return nil, err
	}

	collator := collate.New(language.Make(locale))
	sort.SliceStable(domains, func(i, j int) bool {
		return collator.CompareString(domains[i].Label, domains[j].Label) < 0
	})
	return domains, nil
}

func (repository *PostgresRepository) GetDomain(context context.Context, id, locale, fallback string) (*Domain, error) {
	domains, err := repository.queryDomains(context, id, locale, fallback)
	if err != nil {
		return nil, err
	}
	if len(domains) == 0 {
		return nil, apperr.NotFound("domain")
	}
	return domains[0], nil
}

// queryDomains loads domains with their translation rows for the locale
// pair, resolved in Go. An empty id loads every domain.
func (repository *PostgresRepository) queryDomains(context context.Context, id, locale, fallback string) ([]*Domain, error) {
	query := fmt.Sprintf(`
		SELECT d.%s, d.%s, t.%s, t.%s, t.%s, t.%s
		FROM %s d
		LEFT JOIN %s t ON t.%s = d.%s AND t.%s IN ($1, $2)
	`,
		schema.RefDomain.ID, schema.RefDomain.CreatedAt,
		schema.RefDomainTranslation.Locale, schema.RefDomainTranslation.Label,
		schema.RefDomainTranslation.Slug, schema.RefDomainTranslation.Description,
		schema.RefDomain.Table, schema.RefDomainTranslation.Table,
		schema.RefDomainTranslation.DomainID, schema.RefDomain.ID,
		schema.RefDomainTranslation.Locale,
	)
	args := []any{locale, fallback}
	if id != "" {
		query += fmt.Sprintf(" WHERE d.%s = $3", schema.RefDomain.ID)
		args = append(args, id)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_domains")
	}
	defer rows.Close()

	order := make([]string, 0)
	entities := make(map[string]*Domain)
	translations := make(map[string]map[string]DomainTranslation)

	for rows.Next() {
		d := &Domain{}
		var rowLocale *string
		tr := DomainTranslation{}
		if err := rows.Scan(&d.ID, &d.CreatedAt, &rowLocale, &tr.Label, &tr.Slug, &tr.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_domain")
		}
		if _, known := entities[d.ID]; !known {
			entities[d.ID] = d
			translations[d.ID] = make(map[string]DomainTranslation)
			order = append(order, d.ID)
		}
		if rowLocale != nil {
			translations[d.ID][*rowLocale] = tr
		}
	}

	domains := make([]*Domain, 0, len(order))
	for _, id := range order {
		d := entities[id]
		requested, deflt := i18n.Rows(translations[id], locale, fallback)
		d.Label = i18n.Text(requested.Label, deflt.Label)
		d.Slug = i18n.Text(requested.Slug, deflt.Slug)
		d.Description = i18n.Ptr(requested.Description, deflt.Description)
		domains = append(domains, d)
	}

	return domains, nil
}

func (repository *PostgresRepository) ListTags(context context.Context, locale, fallback string) ([]*Tag, error) {
	tags, err := repository.queryTags(context, "", locale, fallback)
	if err != nil {
		return nil, err
	}

	collator := collate.New(language.Make(locale))
	sort.SliceStable(tags, func(i, j int) bool {
		return collator.CompareString(tags[i].Label, tags[j].Label) < 0
	})
	return tags, nil
}

func (repository *PostgresRepository) GetTag(context context.Context, id, locale, fallback string) (*Tag, error) {
	tags, err := repository.queryTags(context, id, locale, fallback)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, apperr.NotFound("tag")
	}
	return tags[0], nil
}

func (repository *PostgresRepository) queryTags(context context.Context, id, locale, fallback string) ([]*Tag, error) {
	query := fmt.Sprintf(`
		SELECT tg.%s, tg.%s, t.%s, t.%s
		FROM %s tg
		LEFT JOIN %s t ON t.%s = tg.%s AND t.%s IN ($1, $2)
	`,
		schema.RefTag.ID, schema.RefTag.CreatedAt,
		schema.RefTagTranslation.Locale, schema.RefTagTranslation.Label,
		schema.RefTag.Table, schema.RefTagTranslation.Table,
		schema.RefTagTranslation.TagID, schema.RefTag.ID,
		schema.RefTagTranslation.Locale,
	)
	args := []any{locale, fallback}
	if id != "" {
		query += fmt.Sprintf(" WHERE tg.%s = $3", schema.RefTag.ID)
		args = append(args, id)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	order := make([]string, 0)
	entities := make(map[string]*Tag)
	translations := make(map[string]map[string]TagTranslation)

	for rows.Next() {
		t := &Tag{}
		var rowLocale *string
		tr := TagTranslation{}
		if err := rows.Scan(&t.ID, &t.CreatedAt, &rowLocale, &tr.Label); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		if _, known := entities[t.ID]; !known {
			entities[t.ID] = t
			translations[t.ID] = make(map[string]TagTranslation)
			order = append(order, t.ID)
		}
		if rowLocale != nil {
			translations[t.ID][*rowLocale] = tr
		}
	}

	tags := make([]*Tag, 0, len(order))
	for _, id := range order {
		t := entities[id]
		requested, deflt := i18n.Rows(translations[id], locale, fallback)
		t.Label = i18n.Text(requested.Label, deflt.Label)
		tags = append(tags, t)
	}

	return tags, nil
}

func (repository *PostgresRepository) ListPathologies(context context.Context, locale, fallback string) ([]*Pathology, error) {
	pathologies, err := repository.queryPathologies(context, "", locale, fallback)
	if err != nil {
		return nil, err
	}

	collator := collate.New(language.Make(locale))
	sort.SliceStable(pathologies, func(i, j int) bool {
		return collator.CompareString(pathologies[i].Label, pathologies[j].Label) < 0
	})
	return pathologies, nil
}

func (repository *PostgresRepository) GetPathology(context context.Context, id, locale, fallback string) (*Pathology, error) {
	pathologies, err := repository.queryPathologies(context, id, locale, fallback)
	if err != nil {
		return nil, err
	}
	if len(pathologies) == 0 {
		return nil, apperr.NotFound("pathology")
	}
	return pathologies[0], nil
}

func (repository *PostgresRepository) queryPathologies(context context.Context, id, locale, fallback string) ([]*Pathology, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, t.%s, t.%s, t.%s
		FROM %s p
		LEFT JOIN %s t ON t.%s = p.%s AND t.%s IN ($1, $2)
	`,
		schema.RefPathology.ID, schema.RefPathology.Slug, schema.RefPathology.CreatedAt,
		schema.RefPathologyTranslation.Locale, schema.RefPathologyTranslation.Label,
		schema.RefPathologyTranslation.Synonyms,
		schema.RefPathology.Table, schema.RefPathologyTranslation.Table,
		schema.RefPathologyTranslation.PathologyID, schema.RefPathology.ID,
		schema.RefPathologyTranslation.Locale,
	)
	args := []any{locale, fallback}
	if id != "" {
		query += fmt.Sprintf(" WHERE p.%s = $3", schema.RefPathology.ID)
		args = append(args, id)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_pathologies")
	}
	defer rows.Close()

	order := make([]string, 0)
	entities := make(map[string]*Pathology)
	translations := make(map[string]map[string]PathologyTranslation)

	for rows.Next() {
		p := &Pathology{}
		var rowLocale *string
		tr := PathologyTranslation{}
		if err := rows.Scan(&p.ID, &p.Slug, &p.CreatedAt, &rowLocale, &tr.Label, &tr.Synonyms); err != nil {
			return nil, dberr.Wrap(err, "scan_pathology")
		}
		if _, known := entities[p.ID]; !known {
			entities[p.ID] = p
			translations[p.ID] = make(map[string]PathologyTranslation)
			order = append(order, p.ID)
		}
		if rowLocale != nil {
			translations[p.ID][*rowLocale] = tr
		}
	}

	pathologies := make([]*Pathology, 0, len(order))
	for _, id := range order {
		p := entities[id]
		requested, deflt := i18n.Rows(translations[id], locale, fallback)
		p.Label = i18n.Text(requested.Label, deflt.Label)
		p.Synonyms = i18n.Ptr(requested.Synonyms, deflt.Synonyms)
		pathologies = append(pathologies, p)
	}

	return pathologies, nil
}

/*
Delete removes a canonical entity in one transaction.

Description: Junction rows pointing at the entity are cleared first so no
content row is left referencing a dangling id, then the translation rows,
then the canonical row itself. Zero rows affected on the final delete means
the id never existed and surfaces as apperr.NotFound; everything already
removed rolls back with the transaction.
*/
func (repository *PostgresRepository) Delete(context context.Context, kind Kind, id string) error {
	tables := tablesFor(kind)

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	for _, junction := range tables.junctions {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", junction.Table, junction.TaxonomyID)
		if _, err := transaction.Exec(context, query, id); err != nil {
			return fmt.Errorf("postgres: failed to clear %s: %w", junction.Table, err)
		}
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", tables.translation, tables.translationFK)
	if _, err := transaction.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres: failed to clear %s: %w", tables.translation, err)
	}

	query = fmt.Sprintf("DELETE FROM %s WHERE %s = $1", tables.entity, tables.entityID)
	result, err := transaction.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete from %s: %w", tables.entity, err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(string(kind))
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}
	return nil
}

// Querier is the minimal read surface RefsByContent needs. Both a pgxpool
// and an open transaction satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

/*
RefsByContent resolves the taxonomy references attached to content rows
through one junction table, keyed by content id.

Description: Joins the junction against the canonical table and against the
translation rows of both the requested and the fallback locale, resolving
each label in Go. Content query services call this once per junction and
stitch the resulting map onto their projections. An empty contentID loads
the whole junction; a non-empty one scopes the query to a single row.

Parameters:
  - context: context.Context
  - db: Querier (pool or open transaction)
  - junction: schema.JunctionTable (which association to walk)
  - kind: Kind (taxonomy variant on the far side of the junction)
  - contentID: string (single-row scope, "" for all rows)
  - locale: string (requested display locale)
  - fallback: string (catalogue default locale)

Returns:
  - map[string][]Ref: Resolved references per content id, deduplicated
  - error: Database retrieval failures
*/
func RefsByContent(context context.Context, db Querier, junction schema.JunctionTable, kind Kind, contentID, locale, fallback string) (map[string][]Ref, error) {
	tables := tablesFor(kind)

	query := fmt.Sprintf(`
		SELECT j.%s, e.%s, req.%s, fb.%s
		FROM %s j
		JOIN %s e ON e.%s = j.%s
		LEFT JOIN %s req ON req.%s = e.%s AND req.%s = $1
		LEFT JOIN %s fb ON fb.%s = e.%s AND fb.%s = $2
	`,
		junction.ContentID, tables.entityID, tables.label, tables.label,
		junction.Table,
		tables.entity, tables.entityID, junction.TaxonomyID,
		tables.translation, tables.translationFK, tables.entityID, tables.locale,
		tables.translation, tables.translationFK, tables.entityID, tables.locale,
	)
	args := []any{locale, fallback}
	if contentID != "" {
		query += fmt.Sprintf(" WHERE j.%s = $3", junction.ContentID)
		args = append(args, contentID)
	}

	rows, err := db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_content_taxonomy")
	}
	defer rows.Close()

	refs := make(map[string][]Ref)
	seen := make(map[string]map[string]struct{})

	for rows.Next() {
		var ownerID, entityID string
		var requestedLabel, fallbackLabel *string
		if err := rows.Scan(&ownerID, &entityID, &requestedLabel, &fallbackLabel); err != nil {
			return nil, dberr.Wrap(err, "scan_content_taxonomy")
		}
		if seen[ownerID] == nil {
			seen[ownerID] = make(map[string]struct{})
		}
		if _, duplicate := seen[ownerID][entityID]; duplicate {
			continue
		}
		seen[ownerID][entityID] = struct{}{}
		refs[ownerID] = append(refs[ownerID], Ref{
			ID:    entityID,
			Label: i18n.Text(requestedLabel, fallbackLabel),
		})
	}

	return refs, nil
}

// # Transaction-Scoped Normalizer Store

// TxStore adapts an open pgx transaction to the NormalizerStore surface, so
// taxonomy resolution shares atomicity with the content mutation around it.
type TxStore struct {
	tx pgx.Tx
}

func NewTxStore(tx pgx.Tx) *TxStore {
	return &TxStore{tx: tx}
}

func (store *TxStore) FindIDByLabel(context context.Context, kind Kind, label, locale string) (string, error) {
	tables := tablesFor(kind)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 LIMIT 1`,
		tables.translationFK, tables.translation, tables.label, tables.locale)

	var id string
	err := store.tx.QueryRow(context, query, label, locale).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", dberr.Wrap(err, "find_taxonomy_by_label")
	}
	return id, nil
}

func (store *TxStore) CreateEntity(context context.Context, kind Kind, slug string) (string, error) {
	tables := tablesFor(kind)
	id := uuidv7.New()

	var query string
	var err error
	if kind.Slugging() == SlugEntity {
		query = fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			tables.entity, tables.entityID, tables.entitySlug)
		_, err = store.tx.Exec(context, query, id, slug)
	} else {
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1)`,
			tables.entity, tables.entityID)
		_, err = store.tx.Exec(context, query, id)
	}
	if err != nil {
		return "", dberr.Wrap(err, "create_taxonomy_entity")
	}
	return id, nil
}

func (store *TxStore) UpsertTranslation(context context.Context, kind Kind, entityID, locale, label, slug string) error {
	tables := tablesFor(kind)

	var query string
	var err error
	if kind.Slugging() == SlugTranslation {
		// A concurrent writer may own the row already; the label is refreshed
		// but the stored slug is never rewritten.
		query = fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)
			ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		`,
			tables.translation, tables.translationFK, tables.locale, tables.label, tables.slug,
			tables.translationFK, tables.locale, tables.label, tables.label)
		_, err = store.tx.Exec(context, query, entityID, locale, label, slug)
	} else {
		query = fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
			ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		`,
			tables.translation, tables.translationFK, tables.locale, tables.label,
			tables.translationFK, tables.locale, tables.label, tables.label)
		_, err = store.tx.Exec(context, query, entityID, locale, label)
	}
	if err != nil {
		return dberr.Wrap(err, "upsert_taxonomy_translation")
	}
	return nil
}

func (store *TxStore) SlugsWithPrefix(context context.Context, kind Kind, prefix string) ([]string, error) {
	tables := tablesFor(kind)

	var query string
	switch kind.Slugging() {
	case SlugEntity:
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE %s LIKE $1 || '%%'`,
			tables.entitySlug, tables.entity, tables.entitySlug)
	case SlugTranslation:
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE %s LIKE $1 || '%%'`,
			tables.slug, tables.translation, tables.slug)
	default:
		return nil, nil
	}

	rows, err := store.tx.Query(context, query, prefix)
	if err != nil {
		return nil, dberr.Wrap(err, "list_taxonomy_slugs")
	}
	defer rows.Close()

	slugs := make([]string, 0)
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, dberr.Wrap(err, "scan_taxonomy_slug")
		}
		slugs = append(slugs, slug)
	}
	return slugs, nil
}
