package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

var _ repository.MobileSessionRepository = (*MobileSessionRepo)(nil)

const mobileSessionColumns = `id, token, organization_id, created_by_id, created_at, expires_at, is_used`

// MobileSessionRepo implementación del puerto MobileSessionRepository sobre PostgreSQL.
type MobileSessionRepo struct {
	q Querier
}

// NewMobileSessionRepository construye el adaptador de persistencia para sesiones móviles.
func NewMobileSessionRepository(q Querier) *MobileSessionRepo {
	return &MobileSessionRepo{q: q}
}

// GetByToken obtiene una sesión por token.
func (r *MobileSessionRepo) GetByToken(ctx context.Context, token string) (*entity.MobileSession, error) {
	query := `SELECT ` + mobileSessionColumns + ` FROM mobile_sessions WHERE token = $1`
	s, err := scanMobileSession(r.q.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mobile session: %w", err)
	}
	return s, nil
}

// Consume marca la sesión como usada con un UPDATE condicional; dos consumos simultáneos
// no pueden tener éxito ambos.
func (r *MobileSessionRepo) Consume(ctx context.Context, token string, now time.Time) (*entity.MobileSession, error) {
	query := `
		UPDATE mobile_sessions SET is_used = TRUE
		WHERE token = $1 AND NOT is_used AND expires_at > $2
		RETURNING ` + mobileSessionColumns
	s, err := scanMobileSession(r.q.QueryRow(ctx, query, token, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("consume mobile session: %w", err)
	}
	return s, nil
}

func scanMobileSession(row pgx.Row) (*entity.MobileSession, error) {
	var s entity.MobileSession
	var createdBy *string
	if err := row.Scan(&s.ID, &s.Token, &s.OrganizationID, &createdBy, &s.CreatedAt, &s.ExpiresAt, &s.Used); err != nil {
		return nil, err
	}
	s.CreatedByID = fromNullable(createdBy)
	return &s, nil
}
