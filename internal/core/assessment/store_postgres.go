package assessment

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

// # Read Path

func (repository *PostgresRepository) ListAll(context context.Context, locale, fallback string) ([]*Assessment, error) {
	assessments, err := repository.queryStructural(context, "")
	if err != nil {
		return nil, err
	}

	translations, err := repository.queryTranslations(context, "", locale, fallback)
	if err != nil {
		return nil, err
	}
	if err := repository.attachTaxonomy(context, "", locale, fallback, assessments); err != nil {
		return nil, err
	}

	for _, assessment := range assessments {
		resolve(assessment, translations[assessment.ID], locale, fallback)
	}

	// Locale-aware ordering on the resolved display name.
	collator := collate.New(language.Make(locale))
	sort.SliceStable(assessments, func(i, j int) bool {
		return collator.CompareString(assessments[i].Name, assessments[j].Name) < 0
	})
	return assessments, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id, locale, fallback string) (*Assessment, error) {
	assessments, err := repository.queryStructural(context, id)
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return nil, apperr.NotFound("assessment")
	}
	assessment := assessments[0]

	translations, err := repository.queryTranslations(context, id, locale, fallback)
	if err != nil {
		return nil, err
	}
	if err := repository.attachTaxonomy(context, id, locale, fallback, assessments); err != nil {
		return nil, err
	}

	resolve(assessment, translations[id], locale, fallback)
	return assessment, nil
}

func (repository *PostgresRepository) queryStructural(context context.Context, id string) ([]*Assessment, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s`,
		schema.CatalogAssessment.ID, schema.CatalogAssessment.Slug,
		schema.CatalogAssessment.Year, schema.CatalogAssessment.AgeMin,
		schema.CatalogAssessment.AgeMax, schema.CatalogAssessment.DurationMinutes,
		schema.CatalogAssessment.IsStandardized, schema.CatalogAssessment.CreatedAt,
		schema.CatalogAssessment.UpdatedAt, schema.CatalogAssessment.Table,
	)
	args := make([]any, 0, 1)
	if id != "" {
		query += fmt.Sprintf(" WHERE %s = $1", schema.CatalogAssessment.ID)
		args = append(args, id)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_assessments")
	}
	defer rows.Close()

	assessments := make([]*Assessment, 0)
	for rows.Next() {
		a := &Assessment{
			Domains:     make([]taxonomy.Ref, 0),
			Tags:        make([]taxonomy.Ref, 0),
			Pathologies: make([]taxonomy.Ref, 0),
		}
		if err := rows.Scan(&a.ID, &a.Slug, &a.Year, &a.AgeMin, &a.AgeMax,
			&a.DurationMinutes, &a.IsStandardized, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_assessment")
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}

func (repository *PostgresRepository) queryTranslations(context context.Context, id, locale, fallback string) (map[string]map[string]Translation, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s IN ($1, $2)`,
		schema.CatalogAssessmentTranslation.AssessmentID, schema.CatalogAssessmentTranslation.Locale,
		schema.CatalogAssessmentTranslation.Name, schema.CatalogAssessmentTranslation.Description,
		schema.CatalogAssessmentTranslation.Objective, schema.CatalogAssessmentTranslation.Notes,
		schema.CatalogAssessmentTranslation.Table, schema.CatalogAssessmentTranslation.Locale,
	)
	args := []any{locale, fallback}
	if id != "" {
		query += fmt.Sprintf(" AND %s = $3", schema.CatalogAssessmentTranslation.AssessmentID)
		args = append(args, id)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_assessment_translations")
	}
	defer rows.Close()

	translations := make(map[string]map[string]Translation)
	for rows.Next() {
		var ownerID, rowLocale string
		tr := Translation{}
		if err := rows.Scan(&ownerID, &rowLocale, &tr.Name, &tr.Description, &tr.Objective, &tr.Notes); err != nil {
			return nil, dberr.Wrap(err, "scan_assessment_translation")
		}
		if translations[ownerID] == nil {
			translations[ownerID] = make(map[string]Translation)
		}
		translations[ownerID][rowLocale] = tr
	}
	return translations, nil
}

func (repository *PostgresRepository) attachTaxonomy(context context.Context, id, locale, fallback string, assessments []*Assessment) error {
	domains, err := taxonomy.RefsByContent(context, repository.db, schema.AssessmentDomain, taxonomy.KindDomain, id, locale, fallback)
	if err != nil {
		return err
	}
	tags, err := taxonomy.RefsByContent(context, repository.db, schema.AssessmentTag, taxonomy.KindTag, id, locale, fallback)
	if err != nil {
		return err
	}
	pathologies, err := taxonomy.RefsByContent(context, repository.db, schema.AssessmentPathology, taxonomy.KindPathology, id, locale, fallback)
	if err != nil {
		return err
	}

	for _, assessment := range assessments {
		if refs := domains[assessment.ID]; refs != nil {
			assessment.Domains = refs
		}
		if refs := tags[assessment.ID]; refs != nil {
			assessment.Tags = refs
		}
		if refs := pathologies[assessment.ID]; refs != nil {
			assessment.Pathologies = refs
		}
	}
	return nil
}

// resolve applies the fallback chain to one assessment's translated fields.
func resolve(assessment *Assessment, translations map[string]Translation, locale, fallback string) {
	requested, deflt := i18n.Rows(translations, locale, fallback)
	assessment.Name = i18n.Text(requested.Name, deflt.Name)
	assessment.Description = i18n.Ptr(requested.Description, deflt.Description)
	assessment.Objective = i18n.Ptr(requested.Objective, deflt.Objective)
	assessment.Notes = i18n.Ptr(requested.Notes, deflt.Notes)
}

// # Mutation Path

/*
Create persists a new assessment in a single transaction.

Description: The slug is generated against the live table inside the
transaction so the prefix scan and the insert cannot race each other
within this call. Taxonomy labels are normalized through the same
transaction handle, then associations are synchronized. Any failing step
rolls back every prior write.
*/
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

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.CatalogAssessment.Table,
		schema.CatalogAssessment.ID, schema.CatalogAssessment.Slug,
		schema.CatalogAssessment.Year, schema.CatalogAssessment.AgeMin,
		schema.CatalogAssessment.AgeMax, schema.CatalogAssessment.DurationMinutes,
		schema.CatalogAssessment.IsStandardized,
	)
	if _, err := transaction.Exec(context, query, id, generated,
		input.Year, input.AgeMin, input.AgeMax, input.DurationMinutes, input.IsStandardized); err != nil {
		return dberr.Wrap(err, "create_assessment")
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

/*
Update rewrites an existing assessment in a single transaction.

Description: The slug is regenerated deterministically from the current
name, excluding the row's own id from the uniqueness scan so an unchanged
name keeps its slug. The input locale's translation is upserted and the
taxonomy associations are fully replaced.
*/
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

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $7
	`,
		schema.CatalogAssessment.Table,
		schema.CatalogAssessment.Slug, schema.CatalogAssessment.Year,
		schema.CatalogAssessment.AgeMin, schema.CatalogAssessment.AgeMax,
		schema.CatalogAssessment.DurationMinutes, schema.CatalogAssessment.IsStandardized,
		schema.CatalogAssessment.UpdatedAt, schema.CatalogAssessment.ID,
	)
	result, err := transaction.Exec(context, query, generated,
		input.Year, input.AgeMin, input.AgeMax, input.DurationMinutes, input.IsStandardized, id)
	if err != nil {
		return dberr.Wrap(err, "update_assessment")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("assessment")
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

	junctions := []schema.JunctionTable{schema.AssessmentDomain, schema.AssessmentTag, schema.AssessmentPathology}
	for _, junction := range junctions {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", junction.Table, junction.ContentID)
		if _, err := transaction.Exec(context, query, id); err != nil {
			return fmt.Errorf("postgres: failed to clear %s: %w", junction.Table, err)
		}
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogAssessmentTranslation.Table, schema.CatalogAssessmentTranslation.AssessmentID)
	if _, err := transaction.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "delete_assessment_translations")
	}

	query = fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogAssessment.Table, schema.CatalogAssessment.ID)
	result, err := transaction.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_assessment")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("assessment")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}
	return nil
}

// slugLookup scopes slug uniqueness scans to the live table through the
// caller's transaction.
func slugLookup(transaction pgx.Tx) slugger.Lookup {
	return func(context context.Context, prefix, excludeID string) ([]string, error) {
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s LIKE $1 || '%%'`,
			schema.CatalogAssessment.Slug, schema.CatalogAssessment.Table, schema.CatalogAssessment.Slug)
		args := []any{prefix}
		if excludeID != "" {
			query += fmt.Sprintf(" AND %s <> $2", schema.CatalogAssessment.ID)
			args = append(args, excludeID)
		}

		rows, err := transaction.Query(context, query, args...)
		if err != nil {
			return nil, dberr.Wrap(err, "list_assessment_slugs")
		}
		defer rows.Close()

		slugs := make([]string, 0)
		for rows.Next() {
			var slug string
			if err := rows.Scan(&slug); err != nil {
				return nil, dberr.Wrap(err, "scan_assessment_slug")
			}
			slugs = append(slugs, slug)
		}
		return slugs, nil
	}
}

func upsertTranslation(context context.Context, transaction pgx.Tx, id string, input *Input) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
	`,
		schema.CatalogAssessmentTranslation.Table,
		schema.CatalogAssessmentTranslation.AssessmentID, schema.CatalogAssessmentTranslation.Locale,
		schema.CatalogAssessmentTranslation.Name, schema.CatalogAssessmentTranslation.Description,
		schema.CatalogAssessmentTranslation.Objective, schema.CatalogAssessmentTranslation.Notes,
		schema.CatalogAssessmentTranslation.AssessmentID, schema.CatalogAssessmentTranslation.Locale,
		schema.CatalogAssessmentTranslation.Name, schema.CatalogAssessmentTranslation.Name,
		schema.CatalogAssessmentTranslation.Description, schema.CatalogAssessmentTranslation.Description,
		schema.CatalogAssessmentTranslation.Objective, schema.CatalogAssessmentTranslation.Objective,
		schema.CatalogAssessmentTranslation.Notes, schema.CatalogAssessmentTranslation.Notes,
	)
	if _, err := transaction.Exec(context, query, id, input.Locale,
		input.Name, input.Description, input.Objective, input.Notes); err != nil {
		return dberr.Wrap(err, "upsert_assessment_translation")
	}
	return nil
}

func syncTaxonomy(context context.Context, transaction pgx.Tx, id string, input *Input) error {
	store := taxonomy.NewTxStore(transaction)

	domains, err := taxonomy.Normalize(context, store, taxonomy.KindDomain, input.Domains, input.Locale)
	if err != nil {
		return err
	}
	if err := relation.Sync(context, transaction, schema.AssessmentDomain, id, taxonomy.RefIDs(domains)); err != nil {
		return err
	}

	tags, err := taxonomy.Normalize(context, store, taxonomy.KindTag, input.Tags, input.Locale)
	if err != nil {
		return err
	}
	if err := relation.Sync(context, transaction, schema.AssessmentTag, id, taxonomy.RefIDs(tags)); err != nil {
		return err
	}

	pathologies, err := taxonomy.Normalize(context, store, taxonomy.KindPathology, input.Pathologies, input.Locale)
	if err != nil {
		return err
	}
	return relation.Sync(context, transaction, schema.AssessmentPathology, id, taxonomy.RefIDs(pathologies))
}
