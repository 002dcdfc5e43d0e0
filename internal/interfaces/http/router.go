package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-docs/internal/application/analytics"
	"github.com/jhoicas/inventario-docs/internal/application/inventory"
	"github.com/jhoicas/inventario-docs/internal/application/mobilesync"
	"github.com/jhoicas/inventario-docs/internal/application/usecase"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrganizationUC *usecase.OrganizationUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	ProductUC      *usecase.ProductUseCase
	DocumentUC     *inventory.DocumentUseCase
	ReportUC       *analytics.ReportUseCase
	SyncUC         *mobilesync.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sincronización móvil (token de sesión en el cuerpo, sin JWT)
	syncHandler := NewSyncHandler(deps.SyncUC)
	mobile := api.Group("/mobile-sync")
	mobile.Post("/init", syncHandler.Init)
	mobile.Post("/data", syncHandler.Data)

	// Rutas protegidas (requieren Bearer Token)
	orgs := api.Group("/organizations", AuthMiddleware(deps.JWTSecret))
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	orgs.Post("/", orgHandler.Create)
	orgs.Get("/", orgHandler.List)

	// Todo lo que cuelga de una organización exige membresía.
	org := orgs.Group("/:orgId", uuidParams("orgId"), RequireOrganizationAccess(deps.OrganizationUC))
	org.Get("/", orgHandler.GetByID)
	org.Put("/", RequireRole(entity.RoleOwner, entity.RoleAdmin), orgHandler.Update)

	warehouses := org.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", uuidParams("id"), warehouseHandler.GetByID)
	warehouses.Put("/:id", uuidParams("id"), warehouseHandler.Update)
	warehouses.Delete("/:id", uuidParams("id"), RequireRole(entity.RoleOwner, entity.RoleAdmin), warehouseHandler.Delete)

	products := org.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", uuidParams("id"), productHandler.GetByID)
	products.Put("/:id", uuidParams("id"), productHandler.Update)
	products.Delete("/:id", uuidParams("id"), RequireRole(entity.RoleOwner, entity.RoleAdmin), productHandler.Delete)

	documents := org.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	documents.Post("/", documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", uuidParams("id"), documentHandler.GetByID)
	documents.Delete("/:id", uuidParams("id"), RequireRole(entity.RoleOwner, entity.RoleAdmin), documentHandler.Delete)
	documents.Post("/:id/items", uuidParams("id"), documentHandler.AddItem)
	documents.Post("/:id/items/scan", uuidParams("id"), documentHandler.Scan)
	documents.Put("/:id/items/:itemId", uuidParams("id", "itemId"), documentHandler.UpdateItem)
	documents.Delete("/:id/items/:itemId", uuidParams("id", "itemId"), documentHandler.DeleteItem)
	documents.Post("/:id/complete", uuidParams("id"), documentHandler.Complete)
	documents.Post("/:id/cancel", uuidParams("id"), documentHandler.Cancel)

	reports := org.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventory/discrepancies", reportHandler.Discrepancies)
	reports.Get("/inventory/discrepancies/export", reportHandler.ExportDiscrepancies)
	reports.Get("/inventory/statistics", reportHandler.Statistics)
	reports.Get("/products/most-scanned", reportHandler.MostScanned)
	reports.Get("/documents/summary", reportHandler.DocumentSummary)
}
