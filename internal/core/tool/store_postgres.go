package tool

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/ortheo/internal/core/i18n"
	"github.com/taibuivan/ortheo/internal/core/relation"
	"github.com/taibuivan/ortheo/internal/core/taxonomy"
	"github.com/taibuivan/ortheo/internal/platform/apperr"
	"github.com/taibuivan/ortheo/internal/platform/database/schema"
	"github.com/taibuivan/ortheo/internal/platform/dberr"
	"github.com/taibuivan/ortheo/internal/platform/slugger"
)

// DB is the connection surface the repository runs on. A *pgxpool.Pool
// satisfies it in production; tests substitute a transaction double.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListAll(context context.Context, locale, fallback string) ([]*Tool, error) {
	tools, err := repository.queryStructural(context, "")
	if err != nil {
		return nil, err
	}

	translations, err := repository.queryTranslations(context, "", locale, fallback)
	if err != nil {
		return nil, err
	}
	if err := repository.attachTaxonomy(context, "", locale, fallback, tools); err != nil {
		return nil, err
	}

	for _, item := range tools {
		resolve(item, translations[item.ID], locale, fallback)
	}

	collator := collate.New(language.Make(locale))
	sort.SliceStable(tools, func(i, j int) bool {
		return collator.CompareString(tools[i].Name, tools[j].Name) < 0
	})
	return tools, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id, locale, fallback string) (*Tool, error) {
	tools, err := repository.queryStructural(context, id)
	if err != nil {
		return nil, err
	}
	if len(tools) == 0 {
		return nil, apperr.NotFound("tool")
	}
	item := tools[0]

	translations, err := repository.queryTranslations(context, id, locale, fallback)
	if err != nil {
		return nil, err
	}
	if err := repository.attachTaxonomy(context, id, locale, fallback, tools); err != nil {
		return nil, err
	}

	resolve(item, translations[id], locale, fallback)
	return item, nil
}

func (repository *PostgresRepository) queryStructural(context context.Context, id string) ([]*Tool, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s`,
		schema.CatalogTool.ID, schema.CatalogTool.Slug, schema.CatalogTool.URL,
		schema.CatalogTool.CreatedAt, schema.CatalogTool.UpdatedAt,
		schema.CatalogTool.Table,
	)
	args := make([]any, 0, 1)
	if id != "" {
		query += fmt.Sprintf(" WHERE %s = $1", schema.CatalogTool.ID)
		args = append(args, id)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tools")
	}
	defer rows.Close()

	tools := make([]*Tool, 0)
	for rows.Next() {
		item := &Tool{
			Domains: make([]taxonomy.Ref, 0),
			Tags:    make([]taxonomy.Ref, 0),
		}
		if err := rows.Scan(&item.ID, &item.Slug, &item.URL, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_tool")
		}
		tools = append(tools, item)
	}
	return tools, nil
}

func (repository *PostgresRepository) queryTranslations(context context.Context, id, locale, fallback string) (map[string]map[string]Translation, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s IN ($1, $2)`,
		schema.CatalogToolTranslation.ToolID, schema.CatalogToolTranslation.Locale,
		schema.CatalogToolTranslation.Name, schema.CatalogToolTranslation.Description,
		schema.CatalogToolTranslation.Table, schema.CatalogToolTranslation.Locale,
	)
	args := []any{locale, fallback}
	if id != "" {
		query += fmt.Sprintf(" AND %s = $3", schema.CatalogToolTranslation.ToolID)
		args = append(args, id)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tool_translations")
	}
	defer rows.Close()

	translations := make(map[string]map[string]Translation)
	for rows.Next() {
		var ownerID, rowLocale string
		tr := Translation{}
		if err := rows.Scan(&ownerID, &rowLocale, &tr.Name, &tr.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_tool_translation")
		}
		if translations[ownerID] == nil {
			translations[ownerID] = make(map[string]Translation)
		}
		translations[ownerID][rowLocale] = tr
	}
	return translations, nil
}

func (repository *PostgresRepository) attachTaxonomy(context context.Context, id, locale, fallback string, tools []*Tool) error {
	domains, err := taxonomy.RefsByContent(context, repository.db, schema.ToolDomain, taxonomy.KindDomain, id, locale, fallback)
	if err != nil {
		return err
	}
	tags, err := taxonomy.RefsByContent(context, repository.db, schema.ToolTag, taxonomy.KindTag, id, locale, fallback)
	if err != nil {
		return err
	}

	for _, item := range tools {
		if refs := domains[item.ID]; refs != nil {
			item.Domains = refs
		}
		if refs := tags[item.ID]; refs != nil {
			item.Tags = refs
		}
	}
	return nil
}

func resolve(item *Tool, translations map[string]Translation, locale, fallback string) {
	requested, deflt := i18n.Rows(translations, locale, fallback)
	item.Name = i18n.Text(requested.Name, deflt.Name)
	item.Description = i18n.Ptr(requested.Description, deflt.Description)
}

func (repository *PostgresRepository) Create(context context.Context, id string, input *Input) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	generated, err := slugger.Unique(context, input.Name, slugLookup(transaction), "", slugger.NewReserved())
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.CatalogTool.Table,
		schema.CatalogTool.ID, schema.CatalogTool.Slug, schema.CatalogTool.URL,
	)
	if _, err := transaction.Exec(context, query, id, generated, input.URL); err != nil {
		return dberr.Wrap(err, "create_tool")
	}

	if err := upsertTranslation(context, transaction, id, input); err != nil {
		return err
	}
	if err := syncTaxonomy(context, transaction, id, input); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, id string, input *Input) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	generated, err := slugger.Unique(context, input.Name, slugLookup(transaction), id, slugger.NewReserved())
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = NOW() WHERE %s = $3`,
		schema.CatalogTool.Table,
		schema.CatalogTool.Slug, schema.CatalogTool.URL,
		schema.CatalogTool.UpdatedAt, schema.CatalogTool.ID,
	)
	result, err := transaction.Exec(context, query, generated, input.URL, id)
	if err != nil {
		return dberr.Wrap(err, "update_tool")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("tool")
	}

	if err := upsertTranslation(context, transaction, id, input); err != nil {
		return err
	}
	if err := syncTaxonomy(context, transaction, id, input); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	for _, junction := range []schema.JunctionTable{schema.ToolDomain, schema.ToolTag} {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", junction.Table, junction.ContentID)
		if _, err := transaction.Exec(context, query, id); err != nil {
			return fmt.Errorf("postgres: failed to clear %s: %w", junction.Table, err)
		}
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogToolTranslation.Table, schema.CatalogToolTranslation.ToolID)
	if _, err := transaction.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "delete_tool_translations")
	}

	query = fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogTool.Table, schema.CatalogTool.ID)
	result, err := transaction.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_tool")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("tool")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}
	return nil
}

func slugLookup(transaction pgx.Tx) slugger.Lookup {
	return func(context context.Context, prefix, excludeID string) ([]string, error) {
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s LIKE $1 || '%%'`,
			schema.CatalogTool.Slug, schema.CatalogTool.Table, schema.CatalogTool.Slug)
		args := []any{prefix}
		if excludeID != "" {
			query += fmt.Sprintf(" AND %s <> $2", schema.CatalogTool.ID)
			args = append(args, excludeID)
		}

		rows, err := transaction.Query(context, query, args...)
		if err != nil {
			return nil, dberr.Wrap(err, "list_tool_slugs")
		}
		defer rows.Close()

		slugs := make([]string, 0)
		for rows.Next() {
			var slug string
			if err := rows.Scan(&slug); err != nil {
				return nil, dberr.Wrap(err, "scan_tool_slug")
			}
			slugs = append(slugs, slug)
		}
		return slugs, nil
	}
}

func upsertTranslation(context context.Context, transaction pgx.Tx, id string, input *Input) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s
	`,
		schema.CatalogToolTranslation.Table,
		schema.CatalogToolTranslation.ToolID, schema.CatalogToolTranslation.Locale,
		schema.CatalogToolTranslation.Name, schema.CatalogToolTranslation.Description,
		schema.CatalogToolTranslation.ToolID, schema.CatalogToolTranslation.Locale,
		schema.CatalogToolTranslation.Name, schema.CatalogToolTranslation.Name,
		schema.CatalogToolTranslation.Description, schema.CatalogToolTranslation.Description,
	)
	if _, err := transaction.Exec(context, query, id, input.Locale, input.Name, input.Description); err != nil {
		return dberr.Wrap(err, "upsert_tool_translation")
	}
	return nil
}

func syncTaxonomy(context context.Context, transaction pgx.Tx, id string, input *Input) error {
	store := taxonomy.NewTxStore(transaction)

	domains, err := taxonomy.Normalize(context, store, taxonomy.KindDomain, input.Domains, input.Locale)
	if err != nil {
		return err
	}
	if err := relation.Sync(context, transaction, schema.ToolDomain, id, taxonomy.RefIDs(domains)); err != nil {
		return err
	}

	tags, err := taxonomy.Normalize(context, store, taxonomy.KindTag, input.Tags, input.Locale)
	if err != nil {
		return err
	}
	return relation.Sync(context, transaction, schema.ToolTag, id, taxonomy.RefIDs(tags))
}
