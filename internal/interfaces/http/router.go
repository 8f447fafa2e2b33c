package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/auth"
	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	StoreUC       *usecase.StoreUseCase
	LedgerUC      *inventory.LedgerUseCase
	QueryUC       *inventory.QueryUseCase
	ImportUC      *inventory.ImportUseCase
	ReservationUC *inventory.ReservationUseCase
	TransferUC    *inventory.TransferUseCase
	AlertUC       *inventory.AlertUseCase
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

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Stores (protegido)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)

	// Inventory (protegido). Import queda restringido a admin/manager.
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.QueryUC, deps.ImportUC)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Post("/import", RequireRole(entity.RoleAdmin, entity.RoleManager), inventoryHandler.Import)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/:id", inventoryHandler.GetByID)
	invGroup.Get("/:id/history", inventoryHandler.GetHistory)

	// Reservations (protegido)
	reservations := protected.Group("/reservations")
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	reservations.Post("/", reservationHandler.Create)
	reservations.Post("/:id/confirm", reservationHandler.Confirm)
	reservations.Post("/:id/cancel", reservationHandler.Cancel)

	// Transfers (protegido). Aprobar/rechazar requiere admin o manager.
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Transfer)
	transfers.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleManager), transferHandler.Approve)
	transfers.Post("/:id/reject", RequireRole(entity.RoleAdmin, entity.RoleManager), transferHandler.Reject)

	// Alerts (protegido)
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
}
