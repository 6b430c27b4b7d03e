package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-retail/internal/application/auth"
	"github.com/tu-usuario/pos-retail/internal/application/billing"
	"github.com/tu-usuario/pos-retail/internal/application/inventory"
	"github.com/tu-usuario/pos-retail/internal/application/usecase"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *billing.CustomerUseCase
	ProcessSale   *billing.ProcessSaleUseCase
	ProcessReturn *billing.ProcessReturnUseCase
	Ledger        *inventory.LedgerUseCase
	BulkImport    *inventory.BulkImportUseCase
	Purchases     *inventory.RecordPurchaseUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
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
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products (protegido; altas y bajas solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/search", productHandler.Search)
	products.Get("/low-stock", productHandler.LowStock)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Deactivate)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Billing: ventas y devoluciones (protegido)
	billingGroup := protected.Group("/billing")
	billingHandler := NewBillingHandler(deps.ProcessSale, deps.ProcessReturn)
	billingGroup.Post("/sales", billingHandler.CreateSale)
	billingGroup.Get("/sales", billingHandler.ListSales)
	billingGroup.Get("/sales/:id", billingHandler.GetSale)
	billingGroup.Post("/sales/:id/return", billingHandler.CreateReturn)
	billingGroup.Get("/returns", billingHandler.ListReturns)
	billingGroup.Get("/returns/:id", billingHandler.GetReturn)

	// Inventory: ajustes, importación masiva y compras (protegido; escritura solo admin)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.BulkImport, deps.Purchases)
	invGroup.Post("/adjustments", adminOnly, inventoryHandler.AdjustStock)
	invGroup.Get("/adjustments", inventoryHandler.ListAdjustments)
	invGroup.Post("/stock/bulk-upload", adminOnly, inventoryHandler.BulkUpload)
	invGroup.Post("/purchases", adminOnly, inventoryHandler.CreatePurchase)
	invGroup.Get("/purchases", inventoryHandler.ListPurchases)
	invGroup.Get("/purchases/:id", inventoryHandler.GetPurchase)
}
