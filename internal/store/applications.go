package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// PostgresStore implements ApplicationStore on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const appColumns = `id, owner_id, company, title, location, url,
	job_type, work_mode, seniority,
	salary_min, salary_max, salary_currency, salary_period,
	description_summary, key_requirements, key_responsibilities,
	stage, sort_order, notes, applied_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var (
		a        models.Application
		reqJSON  []byte
		respJSON []byte
	)
	err := row.Scan(
		&a.ID, &a.OwnerID, &a.Company, &a.Title, &a.Location, &a.URL,
		&a.JobType, &a.WorkMode, &a.Seniority,
		&a.SalaryMin, &a.SalaryMax, &a.SalaryCurrency, &a.SalaryPeriod,
		&a.DescriptionSummary, &reqJSON, &respJSON,
		&a.Stage, &a.SortOrder, &a.Notes, &a.AppliedDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reqJSON, &a.KeyRequirements); err != nil {
		return nil, fmt.Errorf("decode key_requirements: %w", err)
	}
	if err := json.Unmarshal(respJSON, &a.KeyResponsibilities); err != nil {
		return nil, fmt.Errorf("decode key_responsibilities: %w", err)
	}
	return &a, nil
}

func listJSON(list []string) []byte {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return b
}

// Create inserts a new application. Stage defaults to APPLIED and the applied
// date to now when unset.
func (s *PostgresStore) Create(ctx context.Context, app *models.Application) error {
	if app.Stage == "" {
		app.Stage = models.StageApplied
	}
	if app.AppliedDate.IsZero() {
		app.AppliedDate = time.Now().UTC()
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO applications (
			owner_id, company, title, location, url,
			job_type, work_mode, seniority,
			salary_min, salary_max, salary_currency, salary_period,
			description_summary, key_requirements, key_responsibilities,
			stage, sort_order, notes, applied_date
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		 RETURNING id, created_at, updated_at`,
		app.OwnerID, app.Company, app.Title, app.Location, app.URL,
		app.JobType, app.WorkMode, app.Seniority,
		app.SalaryMin, app.SalaryMax, app.SalaryCurrency, app.SalaryPeriod,
		app.DescriptionSummary, listJSON(app.KeyRequirements), listJSON(app.KeyResponsibilities),
		string(app.Stage), app.SortOrder, app.Notes, app.AppliedDate,
	)
	if err := row.Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// FindByURL looks up the owner's application with the given normalized URL.
func (s *PostgresStore) FindByURL(ctx context.Context, ownerID, normalizedURL string) (*models.Application, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+appColumns+` FROM applications
		 WHERE owner_id = $1 AND url = $2
		 ORDER BY created_at DESC LIMIT 1`,
		ownerID, normalizedURL,
	)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("findByURL: %w", err)
	}
	return app, nil
}

// FindByFields looks up the owner's application by company and title,
// case-insensitively, narrowing by location when one is supplied.
func (s *PostgresStore) FindByFields(ctx context.Context, ownerID, company, title string, location *string) (*models.Application, error) {
	query := `SELECT ` + appColumns + ` FROM applications
		 WHERE owner_id = $1 AND LOWER(company) = LOWER($2) AND LOWER(title) = LOWER($3)`
	args := []any{ownerID, strings.TrimSpace(company), strings.TrimSpace(title)}
	if location != nil && strings.TrimSpace(*location) != "" {
		query += ` AND LOWER(COALESCE(location, '')) = LOWER($4)`
		args = append(args, strings.TrimSpace(*location))
	}
	query += ` ORDER BY created_at DESC LIMIT 1`

	app, err := scanApplication(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("findByFields: %w", err)
	}
	return app, nil
}

// List returns the owner's applications in board order.
func (s *PostgresStore) List(ctx context.Context, ownerID string) ([]models.Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+appColumns+` FROM applications
		 WHERE owner_id = $1
		 ORDER BY stage, sort_order, created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	apps := make([]models.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// Get returns a single application by id, validating ownership.
func (s *PostgresStore) Get(ctx context.Context, ownerID, id string) (*models.Application, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+appColumns+` FROM applications WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	return app, nil
}

// Update applies the non-nil fields of patch and returns the updated record.
func (s *PostgresStore) Update(ctx context.Context, ownerID, id string, patch *models.ApplicationUpdateRequest) (*models.Application, error) {
	sets := make([]string, 0, 16)
	args := []any{id, ownerID}

	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Company != nil {
		add("company", strings.TrimSpace(*patch.Company))
	}
	if patch.Title != nil {
		add("title", strings.TrimSpace(*patch.Title))
	}
	if patch.Location != nil {
		add("location", patch.Location)
	}
	if patch.URL != nil {
		add("url", patch.URL)
	}
	if patch.JobType != nil {
		add("job_type", patch.JobType)
	}
	if patch.WorkMode != nil {
		add("work_mode", patch.WorkMode)
	}
	if patch.Seniority != nil {
		add("seniority", patch.Seniority)
	}
	if patch.SalaryMin != nil {
		add("salary_min", patch.SalaryMin)
	}
	if patch.SalaryMax != nil {
		add("salary_max", patch.SalaryMax)
	}
	if patch.SalaryCurrency != nil {
		add("salary_currency", patch.SalaryCurrency)
	}
	if patch.SalaryPeriod != nil {
		add("salary_period", patch.SalaryPeriod)
	}
	if patch.DescriptionSummary != nil {
		add("description_summary", patch.DescriptionSummary)
	}
	if patch.KeyRequirements != nil {
		add("key_requirements", listJSON(patch.KeyRequirements))
	}
	if patch.KeyResponsibilities != nil {
		add("key_responsibilities", listJSON(patch.KeyResponsibilities))
	}
	if patch.Stage != nil {
		stage, err := models.ParseStage(*patch.Stage)
		if err != nil {
			return nil, err
		}
		add("stage", string(stage))
	}
	if patch.Notes != nil {
		add("notes", patch.Notes)
	}

	if len(sets) == 0 {
		return s.Get(ctx, ownerID, id)
	}
	sets = append(sets, "updated_at = NOW()")

	query := `UPDATE applications SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 AND owner_id = $2 RETURNING ` + appColumns

	app, err := scanApplication(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	return app, nil
}

// Delete removes an application, validating ownership.
func (s *PostgresStore) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder rewrites stage and sort order for every id in columns, atomically.
// Ids that do not belong to the owner are skipped by the owner filter rather
// than failing the batch.
func (s *PostgresStore) Reorder(ctx context.Context, ownerID string, columns map[string][]string) error {
	for stageName := range columns {
		if _, err := models.ParseStage(stageName); err != nil {
			return err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("reorder begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for stageName, ids := range columns {
		for pos, id := range ids {
			if _, err := tx.Exec(ctx,
				`UPDATE applications
				 SET stage = $1, sort_order = $2, updated_at = NOW()
				 WHERE id = $3 AND owner_id = $4`,
				stageName, pos, id, ownerID,
			); err != nil {
				return fmt.Errorf("reorder update: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}
