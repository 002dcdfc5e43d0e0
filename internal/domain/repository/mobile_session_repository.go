package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-docs/internal/domain/entity"
)

// MobileSessionRepository define el puerto de persistencia para MobileSession (DIP).
type MobileSessionRepository interface {
	GetByToken(ctx context.Context, token string) (*entity.MobileSession, error)
	// Consume marca la sesión como usada si no lo estaba y no vencía en now.
	// Devuelve nil si ninguna sesión cumplía la condición.
	Consume(ctx context.Context, token string, now time.Time) (*entity.MobileSession, error)
}
