package resource

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

func (repository *PostgresRepository) ListAll(context context.Context, locale, fallback string) ([]*Resource, error) {
	resources, err := repository.queryStructural(context, "")
	if err != nil {
		return nil, err
	}

	translations, err := repository.queryTranslations(context, "", locale, fallback)
	if err != nil {
		return nil, err
	}
	if err := repository.attachTaxonomy(context, "", locale, fallback, resources); err != nil {
		return nil, err
	}

	for _, res := range resources {
		resolve(res, translations[res.ID], locale, fallback)
	}

	collator := collate.New(language.Make(locale))
	sort.SliceStable(resources, func(i, j int) bool {
		return collator.CompareString(resources[i].Title, resources[j].Title) < 0
	})
	return resources, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id, locale, fallback string) (*Resource, error) {
	resources, err := repository.queryStructural(context, id)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, apperr.NotFound("resource")
	}
	res := resources[0]

	translations, err := repository.queryTranslations(context, id, locale, fallback)
	if err != nil {
		return nil, err
	}
	if err := repository.attachTaxonomy(context, id, locale, fallback, resources); err != nil {
		return nil, err
	}

	resolve(res, translations[id], locale, fallback)
	return res, nil
}

func (repository *PostgresRepository) queryStructural(context context.Context, id string) ([]*Resource, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s`,
		schema.CatalogResource.ID, schema.CatalogResource.Slug,
		schema.CatalogResource.URL, schema.CatalogResource.Format,
		schema.CatalogResource.CreatedAt, schema.CatalogResource.UpdatedAt,
		schema.CatalogResource.Table,
	)
	args := make([]any, 0, 1)
	if id != "" {
		query += fmt.Sprintf(" WHERE %s = $1", schema.CatalogResource.ID)
		args = append(args, id)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_resources")
	}
	defer rows.Close()

	resources := make([]*Resource, 0)
	for rows.Next() {
		res := &Resource{
			Domains: make([]taxonomy.Ref, 0),
			Tags:    make([]taxonomy.Ref, 0),
		}
		if err := rows.Scan(&res.ID, &res.Slug, &res.URL, &res.Format, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_resource")
		}
		resources = append(resources, res)
	}
	return resources, nil
}

func (repository *PostgresRepository) queryTranslations(context context.Context, id, locale, fallback string) (map[string]map[string]Translation, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s IN ($1, $2)`,
		schema.CatalogResourceTranslation.ResourceID, schema.CatalogResourceTranslation.Locale,
		schema.CatalogResourceTranslation.Title, schema.CatalogResourceTranslation.Description,
		schema.CatalogResourceTranslation.Table, schema.CatalogResourceTranslation.Locale,
	)
	args := []any{locale, fallback}
	if id != "" {
		query += fmt.Sprintf(" AND %s = $3", schema.CatalogResourceTranslation.ResourceID)
		args = append(args, id)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_resource_translations")
	}
	defer rows.Close()

	translations := make(map[string]map[string]Translation)
	for rows.Next() {
		var ownerID, rowLocale string
		tr := Translation{}
		if err := rows.Scan(&ownerID, &rowLocale, &tr.Title, &tr.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_resource_translation")
		}
		if translations[ownerID] == nil {
			translations[ownerID] = make(map[string]Translation)
		}
		translations[ownerID][rowLocale] = tr
	}
	return translations, nil
}

func (repository *PostgresRepository) attachTaxonomy(context context.Context, id, locale, fallback string, resources []*Resource) error {
	domains, err := taxonomy.RefsByContent(context, repository.db, schema.ResourceDomain, taxonomy.KindDomain, id, locale, fallback)
	if err != nil {
		return err
	}
	tags, err := taxonomy.RefsByContent(context, repository.db, schema.ResourceTag, taxonomy.KindTag, id, locale, fallback)
	if err != nil {
		return err
	}

	for _, res := range resources {
		if refs := domains[res.ID]; refs != nil {
			res.Domains = refs
		}
		if refs := tags[res.ID]; refs != nil {
			res.Tags = refs
		}
	}
	return nil
}

func resolve(res *Resource, translations map[string]Translation, locale, fallback string) {
	requested, deflt := i18n.Rows(translations, locale, fallback)
	res.Title = i18n.Text(requested.Title, deflt.Title)
	res.Description = i18n.Ptr(requested.Description, deflt.Description)
}

func (repository *PostgresRepository) Create(context context.Context, id string, input *Input) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	generated, err := slugger.Unique(context, input.Title, slugLookup(transaction), "", slugger.NewReserved())
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.CatalogResource.Table,
		schema.CatalogResource.ID, schema.CatalogResource.Slug,
		schema.CatalogResource.URL, schema.CatalogResource.Format,
	)
	if _, err := transaction.Exec(context, query, id, generated, input.URL, input.Format); err != nil {
		return dberr.Wrap(err, "create_resource")
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

	generated, err := slugger.Unique(context, input.Title, slugLookup(transaction), id, slugger.NewReserved())
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = NOW() WHERE %s = $4`,
		schema.CatalogResource.Table,
		schema.CatalogResource.Slug, schema.CatalogResource.URL,
		schema.CatalogResource.Format, schema.CatalogResource.UpdatedAt,
		schema.CatalogResource.ID,
	)
	result, err := transaction.Exec(context, query, generated, input.URL, input.Format, id)
	if err != nil {
		return dberr.Wrap(err, "update_resource")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("resource")
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

	for _, junction := range []schema.JunctionTable{schema.ResourceDomain, schema.ResourceTag} {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", junction.Table, junction.ContentID)
		if _, err := transaction.Exec(context, query, id); err != nil {
			return fmt.Errorf("postgres: failed to clear %s: %w", junction.Table, err)
		}
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogResourceTranslation.Table, schema.CatalogResourceTranslation.ResourceID)
	if _, err := transaction.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "delete_resource_translations")
	}

	query = fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogResource.Table, schema.CatalogResource.ID)
	result, err := transaction.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_resource")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("resource")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}
	return nil
}

func slugLookup(transaction pgx.Tx) slugger.Lookup {
	return func(context context.Context, prefix, excludeID string) ([]string, error) {
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s LIKE $1 || '%%'`,
			schema.CatalogResource.Slug, schema.CatalogResource.Table, schema.CatalogResource.Slug)
		args := []any{prefix}
		if excludeID != "" {
			query += fmt.Sprintf(" AND %s <> $2", schema.CatalogResource.ID)
			args = append(args, excludeID)
		}

		rows, err := transaction.Query(context, query, args...)
		if err != nil {
			return nil, dberr.Wrap(err, "list_resource_slugs")
		}
		defer rows.Close()

		slugs := make([]string, 0)
		for rows.Next() {
			var slug string
			if err := rows.Scan(&slug); err != nil {
				return nil, dberr.Wrap(err, "scan_resource_slug")
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
		schema.CatalogResourceTranslation.Table,
		schema.CatalogResourceTranslation.ResourceID, schema.CatalogResourceTranslation.Locale,
		schema.CatalogResourceTranslation.Title, schema.CatalogResourceTranslation.Description,
		schema.CatalogResourceTranslation.ResourceID, schema.CatalogResourceTranslation.Locale,
		schema.CatalogResourceTranslation.Title, schema.CatalogResourceTranslation.Title,
		schema.CatalogResourceTranslation.Description, schema.CatalogResourceTranslation.Description,
	)
	if _, err := transaction.Exec(context, query, id, input.Locale, input.Title, input.Description); err != nil {
		return dberr.Wrap(err, "upsert_resource_translation")
	}
	return nil
}

func syncTaxonomy(context context.Context, transaction pgx.Tx, id string, input *Input) error {
	store := taxonomy.NewTxStore(transaction)

	domains, err := taxonomy.Normalize(context, store, taxonomy.KindDomain, input.Domains, input.Locale)
	if err != nil {
		return err
	}
	if err := relation.Sync(context, transaction, schema.ResourceDomain, id, taxonomy.RefIDs(domains)); err != nil {
		return err
	}

	tags, err := taxonomy.Normalize(context, store, taxonomy.KindTag, input.Tags, input.Locale)
	if err != nil {
		return err
	}
	return relation.Sync(context, transaction, schema.ResourceTag, id, taxonomy.RefIDs(tags))
}
