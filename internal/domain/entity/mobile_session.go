package entity

import "time"

// MobileSession credencial de un solo uso y con vencimiento para la sincronización móvil.
// La emisión vive fuera de este servicio; aquí solo se consumen IsUsed e IsExpired.
type MobileSession struct {
	ID             string
	Token          string
	OrganizationID string
	CreatedByID    string
	CreatedAt      time.Time
	ExpiresAt      time.Time
	Used           bool
}

// IsUsed indica si la sesión ya fue consumida.
func (s *MobileSession) IsUsed() bool { return s.Used }

// IsExpired indica si la sesión venció en el instante now.
func (s *MobileSession) IsExpired(now time.Time) bool { return !s.ExpiresAt.After(now) }
