// Package mobilesync entrega a los lectores móviles los datos de su organización a cambio de una
// sesión de un solo uso emitida desde la web.
package mobilesync

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// catalogLimit tope de bodegas y productos enviados en un snapshot.
const catalogLimit = 10000

// DocumentLister lista documentos con sus posiciones (implementado por inventory.DocumentUseCase).
type DocumentLister interface {
	ListDocuments(ctx context.Context, organizationID string, filter repository.DocumentFilter) ([]*entity.Document, error)
}

// UseCase casos de uso de sincronización móvil.
type UseCase struct {
	sessionRepo   repository.MobileSessionRepository
	orgRepo       repository.OrganizationRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	documents     DocumentLister
	documentLimit int
	log           zerolog.Logger
	now           func() time.Time
}

// NewUseCase construye el caso de uso. documentLimit es la cantidad de documentos recientes enviados en Init.
func NewUseCase(
	sessionRepo repository.MobileSessionRepository,
	orgRepo repository.OrganizationRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	documents DocumentLister,
	documentLimit int,
	log zerolog.Logger,
) *UseCase {
	if documentLimit <= 0 {
		documentLimit = 100
	}
	return &UseCase{
		sessionRepo:   sessionRepo,
		orgRepo:       orgRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		documents:     documents,
		documentLimit: documentLimit,
		log:           log.With().Str("component", "mobile_sync").Logger(),
		now:           time.Now,
	}
}

// Init consume la sesión (no usada y vigente) de forma atómica y devuelve el snapshot inicial:
// organización, bodegas y productos activos y los últimos documentos con sus posiciones.
func (uc *UseCase) Init(ctx context.Context, token string) (*dto.SyncSnapshotDTO, error) {
	if token == "" {
		return nil, domain.NewValidationError("token es requerido")
	}
	now := uc.now()
	session, err := uc.sessionRepo.Consume(ctx, token, now)
	if err != nil {
		return nil, err
	}
	if session == nil {
		// Consume no distingue la causa; se relee para informar el motivo.
		existing, err := uc.sessionRepo.GetByToken(ctx, token)
		if err != nil {
			return nil, err
		}
		return nil, sessionError(existing, now)
	}
	uc.log.Info().Str("session_id", session.ID).Str("organization_id", session.OrganizationID).Msg("sesión móvil consumida")
	return uc.snapshot(ctx, session.OrganizationID, repository.DocumentFilter{Limit: uc.documentLimit}, now)
}

// Pull devuelve el snapshot con los documentos creados después de since.
// Exige una sesión ya inicializada y vigente.
func (uc *UseCase) Pull(ctx context.Context, token string, since time.Time) (*dto.SyncSnapshotDTO, error) {
	if token == "" {
		return nil, domain.NewValidationError("token es requerido")
	}
	now := uc.now()
	session, err := uc.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired(now) {
		return nil, sessionError(session, now)
	}
	if !session.IsUsed() {
		return nil, fmt.Errorf("%w: sesión móvil no inicializada", domain.ErrUnauthorized)
	}
	filter := repository.DocumentFilter{}
	if !since.IsZero() {
		filter.CreatedAfter = &since
	}
	return uc.snapshot(ctx, session.OrganizationID, filter, now)
}

func sessionError(s *entity.MobileSession, now time.Time) error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: sesión móvil no encontrada", domain.ErrUnauthorized)
	case s.IsExpired(now):
		return fmt.Errorf("%w: sesión móvil vencida", domain.ErrUnauthorized)
	case s.IsUsed():
		return fmt.Errorf("%w: sesión móvil ya utilizada", domain.ErrUnauthorized)
	}
	return fmt.Errorf("%w: sesión móvil inválida", domain.ErrUnauthorized)
}

// snapshot carga en paralelo catálogo y documentos de la organización.
// serverTime se toma antes de las consultas: es el since del próximo Pull, y un documento creado
// mientras se arma el snapshot queda después de él.
func (uc *UseCase) snapshot(ctx context.Context, organizationID string, filter repository.DocumentFilter, serverTime time.Time) (*dto.SyncSnapshotDTO, error) {
	org, err := uc.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.NotFound("organización", organizationID)
	}

	type warehousesResult struct {
		list []*entity.Warehouse
		err  error
	}
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type documentsResult struct {
		list []*entity.Document
		err  error
	}
	whCh := make(chan warehousesResult, 1)
	prodCh := make(chan productsResult, 1)
	docCh := make(chan documentsResult, 1)

	go func() {
		list, err := uc.warehouseRepo.ListByOrganization(ctx, organizationID, true, catalogLimit, 0)
		whCh <- warehousesResult{list, err}
	}()
	go func() {
		list, err := uc.productRepo.ListByOrganization(ctx, organizationID, true, catalogLimit, 0)
		prodCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.documents.ListDocuments(ctx, organizationID, filter)
		docCh <- documentsResult{list, err}
	}()

	whs := <-whCh
	prods := <-prodCh
	docs := <-docCh
	for _, err := range []error{whs.err, prods.err, docs.err} {
		if err != nil {
			return nil, fmt.Errorf("sincronización móvil: %w", err)
		}
	}

	out := &dto.SyncSnapshotDTO{
		Organization: dto.NewOrganizationResponse(org),
		Warehouses:   make([]dto.WarehouseResponse, 0, len(whs.list)),
		Products:     make([]dto.ProductResponse, 0, len(prods.list)),
		Documents:    make([]dto.DocumentResponse, 0, len(docs.list)),
		ServerTime:   serverTime,
	}
	for _, w := range whs.list {
		out.Warehouses = append(out.Warehouses, dto.NewWarehouseResponse(w))
	}
	for _, p := range prods.list {
		out.Products = append(out.Products, dto.NewProductResponse(p))
	}
	for _, d := range docs.list {
		out.Documents = append(out.Documents, dto.NewDocumentResponse(d))
	}
	return out, nil
}
