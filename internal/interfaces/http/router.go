package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Deme-api/internal/application/auth"
	"github.com/jhoicas/Deme-api/internal/application/catalog"
	"github.com/jhoicas/Deme-api/internal/application/notes"
	"github.com/jhoicas/Deme-api/internal/application/partners"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ProductsUC     *catalog.ProductsUseCase
	LocationsUC    *catalog.StockLocationsUseCase
	AccountsUC     *catalog.CashAccountsUseCase
	StockQueriesUC *catalog.StockQueriesUseCase
	CustomersUC    *partners.CustomersUseCase
	SuppliersUC    *partners.SuppliersUseCase
	PurchasesUC    *notes.PurchaseNotesUseCase
	SalesUC        *notes.SalesNotesUseCase
	DepositsUC     *notes.StockDepositNotesUseCase
	TransfersUC    *notes.CashTransferNotesUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; register y me requieren token (register solo ADMIN)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductsUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock locations + consultas de celdas
	locations := protected.Group("/stock-locations")
	locationHandler := NewStockLocationHandler(deps.LocationsUC, deps.StockQueriesUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)
	locations.Get("/:id/stock", locationHandler.ListStock)
	locations.Get("/:id/stock/:productId", locationHandler.GetCell)

	// Cash accounts
	accounts := protected.Group("/cash-accounts")
	accountHandler := NewCashAccountHandler(deps.AccountsUC)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Put("/:id", accountHandler.Update)
	accounts.Delete("/:id", accountHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomersUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SuppliersUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Purchase notes
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchasesUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id", purchaseHandler.Update)
	purchases.Delete("/:id", purchaseHandler.Delete)
	purchases.Get("/:id/lines", purchaseHandler.ListLines)
	purchases.Post("/:id/lines", purchaseHandler.AddLine)
	purchases.Put("/:id/lines/:lineId", purchaseHandler.UpdateLine)
	purchases.Delete("/:id/lines/:lineId", purchaseHandler.DeleteLine)
	purchases.Post("/:id/confirm", purchaseHandler.Confirm)

	// Sales notes
	sales := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	sales.Post("/", salesHandler.Create)
	sales.Get("/", salesHandler.List)
	sales.Get("/:id", salesHandler.GetByID)
	sales.Put("/:id", salesHandler.Update)
	sales.Delete("/:id", salesHandler.Delete)
	sales.Get("/:id/lines", salesHandler.ListLines)
	sales.Post("/:id/lines", salesHandler.AddLine)
	sales.Put("/:id/lines/:lineId", salesHandler.UpdateLine)
	sales.Delete("/:id/lines/:lineId", salesHandler.DeleteLine)
	sales.Post("/:id/confirm", salesHandler.Confirm)

	// Stock deposit notes
	deposits := protected.Group("/stock-deposits")
	depositHandler := NewDepositHandler(deps.DepositsUC)
	deposits.Post("/", depositHandler.Create)
	deposits.Get("/", depositHandler.List)
	deposits.Get("/:id", depositHandler.GetByID)
	deposits.Put("/:id", depositHandler.Update)
	deposits.Delete("/:id", depositHandler.Delete)
	deposits.Post("/:id/confirm", depositHandler.Confirm)

	// Cash transfer notes
	transfers := protected.Group("/cash-transfers")
	transferHandler := NewTransferHandler(deps.TransfersUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Put("/:id", transferHandler.Update)
	transfers.Delete("/:id", transferHandler.Delete)
	transfers.Post("/:id/confirm", transferHandler.Confirm)
}
