package dto

import "github.com/jhoicas/inventario-docs/internal/domain/entity"

// NewOrganizationResponse mapea la entidad a su DTO de salida.
func NewOrganizationResponse(o *entity.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		TaxID:     o.TaxID,
		Address:   o.Address,
		Phone:     o.Phone,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// NewWarehouseResponse mapea la entidad a su DTO de salida.
func NewWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:             w.ID,
		OrganizationID: w.OrganizationID,
		Name:           w.Name,
		Address:        w.Address,
		IsActive:       w.IsActive,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

// NewProductResponse mapea la entidad a su DTO de salida.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Barcode:        p.Barcode,
		Description:    p.Description,
		Unit:           p.Unit,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// NewDocumentItemResponse mapea la posición a su DTO de salida.
func NewDocumentItemResponse(it *entity.DocumentItem) DocumentItemResponse {
	return DocumentItemResponse{
		ID:               it.ID,
		DocumentID:       it.DocumentID,
		ProductID:        it.ProductID,
		QuantityExpected: it.QuantityExpected,
		QuantityActual:   it.QuantityActual,
		CreatedAt:        it.CreatedAt,
	}
}

// NewDocumentResponse mapea el documento y sus posiciones a su DTO de salida.
func NewDocumentResponse(d *entity.Document) DocumentResponse {
	out := DocumentResponse{
		ID:                     d.ID,
		OrganizationID:         d.OrganizationID,
		Type:                   string(d.Type),
		Number:                 d.Number,
		Status:                 d.Status,
		DocumentDate:           d.DocumentDate,
		Comment:                d.Comment,
		CreatedByUserID:        d.CreatedByUserID,
		WarehouseID:            d.WarehouseID,
		SourceWarehouseID:      d.SourceWarehouseID,
		DestinationWarehouseID: d.DestinationWarehouseID,
		CreatedAt:              d.CreatedAt,
		Items:                  make([]DocumentItemResponse, 0, len(d.Items)),
	}
	for i := range d.Items {
		out.Items = append(out.Items, NewDocumentItemResponse(&d.Items[i]))
	}
	return out
}

// NewDocumentListResponse mapea una lista de documentos.
func NewDocumentListResponse(docs []*entity.Document) DocumentListResponse {
	out := DocumentListResponse{Items: make([]DocumentResponse, 0, len(docs)), Total: len(docs)}
	for _, d := range docs {
		out.Items = append(out.Items, NewDocumentResponse(d))
	}
	return out
}
