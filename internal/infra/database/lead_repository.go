package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

const leadsSchema = `
	CREATE TABLE IF NOT EXISTS leads (
		id           INTEGER PRIMARY KEY,
		name         TEXT NOT NULL,
		phone        TEXT NOT NULL DEFAULT '',
		score        INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
		status       TEXT NOT NULL,
		last_contact TEXT NOT NULL DEFAULT '',
		interest     TEXT NOT NULL DEFAULT '',
		history      TEXT NOT NULL DEFAULT '',
		source       TEXT NOT NULL DEFAULT 'manual',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

const leadColumns = `id, name, phone, score, status, last_contact, interest, history, source, created_at`

// LeadRepository keeps the remote lead list in PostgreSQL.
type LeadRepository struct {
	DB     *sql.DB
	Logger *slog.Logger
}

func NewLeadRepository(db *sql.DB, logger *slog.Logger) *LeadRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadRepository{DB: db, Logger: logger}
}

// EnsureSchema creates the leads table when it does not exist yet.
func (r *LeadRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, leadsSchema); err != nil {
		return fmt.Errorf("erro ao criar tabela leads: %w", err)
	}
	return nil
}

// List returns every lead, newest first.
func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar leads: %w", err)
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler leads: %w", err)
	}
	return leads, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	l, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Insert stores the lead with the id the caller assigned. A primary key
// conflict is reported as entity.ErrLeadIDTaken.
func (r *LeadRepository) Insert(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		l.ID,
		l.Name,
		l.Phone,
		l.Score,
		string(l.Status),
		l.LastContact,
		l.Interest,
		l.History,
		string(l.Source),
		l.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrLeadIDTaken
		}

		r.Logger.Error("erro crítico no banco", "op", "insert_lead", "id", l.ID, "error", err)
		return err
	}
	return nil
}

// Ping is used by the health check.
func (r *LeadRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		l      entity.Lead
		status string
		source string
	)
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Phone,
		&l.Score,
		&status,
		&l.LastContact,
		&l.Interest,
		&l.History,
		&source,
		&l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("erro ao ler lead: %w", err)
	}
	l.Status = entity.Status(status)
	l.Source = entity.Source(source)
	return &l, nil
}
