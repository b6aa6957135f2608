package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/assembly"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *catalog.ProductUseCase
	CategoryUC *catalog.CategoryUseCase
	LedgerUC   *ledger.UseCase
	AssemblyUC *assembly.UseCase
	ReportUC   *reports.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Delete("/:name", categoryHandler.Delete)

	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)

	assemblies := api.Group("/assemblies")
	assemblyHandler := NewAssemblyHandler(deps.AssemblyUC)
	assemblies.Post("/", assemblyHandler.Create)
	assemblies.Get("/", assemblyHandler.List)
	assemblies.Get("/:id", assemblyHandler.GetByID)
	assemblies.Delete("/:id", assemblyHandler.Delete)
	assemblies.Post("/:id/produce", assemblyHandler.Produce)

	reportsGroup := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
	reportsGroup.Get("/inventory-value", reportHandler.InventoryValue)
}
