package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sevenboard/board-api/internal/domain"
)

// SolicitationRepository encapsulates solicitation persistence.
type SolicitationRepository interface {
	Create(ctx context.Context, sol *domain.Solicitation) error
	Update(ctx context.Context, sol *domain.Solicitation) error
	GetByID(ctx context.Context, id string) (*domain.Solicitation, error)
	ListAll(ctx context.Context) ([]domain.Solicitation, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Solicitation, error)
}

type solicitationRepository struct {
	pool *pgxpool.Pool
}

// NewSolicitationRepository instantiates repository.
func NewSolicitationRepository(pool *pgxpool.Pool) SolicitationRepository {
	return &solicitationRepository{pool: pool}
}

const solicitationColumns = `id, departamento, email, protocolo, tipo_solicitacao, descricao,
       veiculacao, data_entrega, horario_entrega, observacoes, arquivo_url, status,
       created_at, started_at, completed_at, archived_at`

func (r *solicitationRepository) Create(ctx context.Context, sol *domain.Solicitation) error {
	const query = `
        INSERT INTO solicitacoes (departamento, email, protocolo, tipo_solicitacao, descricao,
            veiculacao, data_entrega, horario_entrega, observacoes, arquivo_url, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		sol.Department,
		nullable(sol.RequesterEmail),
		sol.ProtocolCode,
		sol.RequestType,
		sol.Description,
		sol.Channels,
		sol.DueDate,
		nullable(sol.DueTime),
		sol.Notes,
		nullable(sol.AttachmentURL),
		sol.Status,
	).Scan(&sol.ID, &sol.CreatedAt)
}

func (r *solicitationRepository) Update(ctx context.Context, sol *domain.Solicitation) error {
	const query = `
        UPDATE solicitacoes SET observacoes=$1, status=$2, started_at=$3, completed_at=$4, archived_at=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		sol.Notes,
		sol.Status,
		sol.StartedAt,
		sol.CompletedAt,
		sol.ArchivedAt,
		sol.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *solicitationRepository) GetByID(ctx context.Context, id string) (*domain.Solicitation, error) {
	query := `SELECT ` + solicitationColumns + ` FROM solicitacoes WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanSolicitation(row)
}

func (r *solicitationRepository) ListAll(ctx context.Context) ([]domain.Solicitation, error) {
	query := `SELECT ` + solicitationColumns + ` FROM solicitacoes ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSolicitations(rows)
}

func (r *solicitationRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Solicitation, error) {
	query := `SELECT ` + solicitationColumns + ` FROM solicitacoes WHERE status=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSolicitations(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSolicitation(row rowScanner) (*domain.Solicitation, error) {
	var sol domain.Solicitation
	var email, dueTime, attachment *string
	if err := row.Scan(
		&sol.ID,
		&sol.Department,
		&email,
		&sol.ProtocolCode,
		&sol.RequestType,
		&sol.Description,
		&sol.Channels,
		&sol.DueDate,
		&dueTime,
		&sol.Notes,
		&attachment,
		&sol.Status,
		&sol.CreatedAt,
		&sol.StartedAt,
		&sol.CompletedAt,
		&sol.ArchivedAt,
	); err != nil {
		return nil, err
	}
	if email != nil {
		sol.RequesterEmail = *email
	}
	if dueTime != nil {
		sol.DueTime = *dueTime
	}
	if attachment != nil {
		sol.AttachmentURL = *attachment
	}
	return &sol, nil
}

func scanSolicitations(rows pgx.Rows) ([]domain.Solicitation, error) {
	var result []domain.Solicitation
	for rows.Next() {
		sol, err := scanSolicitation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *sol)
	}
	return result, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
