package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pos/internal/application/auth"
	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/application/reports"
	"github.com/tu-usuario/farmacia-pos/internal/application/sales"
	"github.com/tu-usuario/farmacia-pos/internal/application/usecase"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	DrugUC         *usecase.DrugUseCase
	PatientUC      *usecase.PatientUseCase
	ApplyMovement  *inventory.ApplyMovementUseCase
	ListMovements  *inventory.ListMovementsUseCase
	CreateSale     *sales.CreateSaleUseCase
	SaleQuery      *sales.SaleQueryUseCase
	CreatePurchase *sales.CreatePurchaseUseCase
	QuotationUC    *sales.QuotationUseCase
	LowStockUC     *reports.LowStockUseCase
	ExpiryUC       *reports.ExpiryUseCase
	DashboardUC    *reports.DashboardUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Drugs (protegido)
	drugs := protected.Group("/drugs")
	drugHandler := NewDrugHandler(deps.DrugUC)
	drugs.Post("/", drugHandler.Create)
	drugs.Get("/", drugHandler.List)
	drugs.Get("/:id", drugHandler.GetByID)
	drugs.Put("/:id", drugHandler.Update)
	drugs.Delete("/:id", RequireRole(entity.RoleAdmin), drugHandler.Delete)

	// Historial de movimientos por medicamento (protegido)
	inventoryHandler := NewInventoryHandler(deps.ApplyMovement, deps.ListMovements)
	drugs.Get("/:id/movements", inventoryHandler.ListMovements)

	// Inventory movements (protegido)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.ApplyMovement)

	// Patients (protegido)
	patients := protected.Group("/patients")
	patientHandler := NewPatientHandler(deps.PatientUC)
	patients.Post("/", patientHandler.Create)
	patients.Get("/", patientHandler.List)
	patients.Get("/:id", patientHandler.GetByID)
	patients.Put("/:id", patientHandler.Update)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Purchases (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.CreatePurchase)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Quotations (protegido)
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Post("/:id/convert", quotationHandler.Convert)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.LowStockUC, deps.ExpiryUC, deps.DashboardUC)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
	reportsGroup.Get("/expiry", reportHandler.Expiry)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
}
