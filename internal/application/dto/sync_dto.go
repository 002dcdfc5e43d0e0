package dto

import "time"

// SyncInitRequest entrada de POST /api/mobile-sync/init.
type SyncInitRequest struct {
	Token string `json:"token" validate:"required"`
}

// SyncDataRequest entrada de POST /api/mobile-sync/data.
type SyncDataRequest struct {
	Token string    `json:"token" validate:"required"`
	Since time.Time `json:"since"`
}

// SyncSnapshotDTO datos que el dispositivo móvil necesita para trabajar sin conexión.
type SyncSnapshotDTO struct {
	Organization OrganizationResponse `json:"organization"`
	Warehouses   []WarehouseResponse  `json:"warehouses"`
	Products     []ProductResponse    `json:"products"`
	Documents    []DocumentResponse   `json:"documents"`
	ServerTime   time.Time            `json:"server_time"`
}
