package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin/internal/application/analytics"
	"github.com/jhoicas/tienda-admin/internal/application/auth"
	"github.com/jhoicas/tienda-admin/internal/application/usecase"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CatalogUC   *usecase.CatalogUseCase
	ShippingUC  *usecase.ShippingUseCase
	AdminUC     *usecase.AdminUseCase
	ProductUC   *usecase.ProductUseCase
	AdminLogUC  *usecase.AdminLogUseCase
	DashboardUC *analytics.DashboardUseCase
	Images      ImageUploader
	JWTSecret   string
}

// Router registra las rutas de la API.
// Catálogo, envíos, administradores y registro: solo superadmin. Productos y tablero: cualquier administrador.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	categoryHandler := NewCategoryHandler(deps.CatalogUC)
	// Lookup público para los selectores de la tienda
	api.Get("/subcategories/by-category/:name", categoryHandler.SubcategoriesByCategoryName)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyAdmin := RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin)
	superOnly := RequireRole(entity.RoleSuperAdmin)

	// Categorías
	categories := protected.Group("/categories", superOnly)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Delete("/:id/subcategories", categoryHandler.Delete) // ruta heredada del panel anterior

	// Subcategorías
	subcategories := protected.Group("/subcategories", superOnly)
	subcategories.Get("/", categoryHandler.ListSubcategories)
	subcategories.Post("/", categoryHandler.CreateSubcategory)
	subcategories.Put("/:id", categoryHandler.RenameSubcategory)
	subcategories.Delete("/:id", categoryHandler.DeleteSubcategory)

	protected.Get("/icons", superOnly, categoryHandler.ListIcons)

	// Opciones de envío
	shipping := protected.Group("/shipping", superOnly)
	shippingHandler := NewShippingHandler(deps.ShippingUC)
	shipping.Get("/", shippingHandler.List)
	shipping.Post("/", shippingHandler.Create)
	shipping.Put("/:id", shippingHandler.Update)
	shipping.Delete("/:id", shippingHandler.Delete)

	// Administradores
	admins := protected.Group("/admins", superOnly)
	adminHandler := NewAdminHandler(deps.AdminUC)
	admins.Get("/", adminHandler.List)
	admins.Post("/", adminHandler.Create)
	admins.Get("/:id", adminHandler.GetByID)
	admins.Put("/:id", adminHandler.Update)
	admins.Delete("/:id", adminHandler.Delete)

	// Productos
	products := protected.Group("/products", anyAdmin)
	productHandler := NewProductHandler(deps.ProductUC, deps.Images)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/deactivate", productHandler.Deactivate)
	products.Post("/:id/reactivate", productHandler.Reactivate)

	// Registro de acciones
	logs := protected.Group("/admin-logs", superOnly)
	logHandler := NewAdminLogHandler(deps.AdminLogUC)
	logs.Get("/", logHandler.List)
	logs.Get("/report.pdf", logHandler.Report)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", anyAdmin, dashboardHandler.GetSummary)
}
