package routes

import (
	"net/http"

	"github.com/pethive/pethive/app/controllers"
	appgraphql "github.com/pethive/pethive/app/graphql"
	"github.com/pethive/pethive/app/services"
	"github.com/pethive/pethive/pkg/logger"
	"github.com/pethive/pethive/pkg/middleware"
	"github.com/pethive/pethive/pkg/rbac"
	"github.com/pethive/pethive/pkg/response"
	"github.com/pethive/pethive/pkg/router"
)

// RegisterAPI mounts the whole REST surface. Public catalog reads need no
// session; customer routes need an identity; the /api/admin group sits
// behind the admin role gate.
func RegisterAPI(r *router.Router) {
	authService := services.NewAuthService()
	catalogService := services.NewCatalogService()
	orderService := services.NewOrderService()
	statsService := services.NewStatsService()
	chatService := services.NewChatService()

	authController := controllers.NewAuthController(authService)
	catalogController := controllers.NewCatalogController(catalogService)
	orderController := controllers.NewOrderController(orderService)
	chatController := controllers.NewChatController(chatService)
	adminController := controllers.NewAdminController(statsService, catalogService, chatService)

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok", "service": "pethive-api"})
	})
	r.Get("/", "index", index)

	api := r.Group("/api")

	// Auth
	api.Post("/auth/register", "auth.register", authController.Register)
	api.Post("/auth/login", "auth.login", authController.Login)
	api.Post("/auth/mock-login", "auth.mock_login", authController.MockLogin)
	api.Post("/auth/google", "auth.google", authController.GoogleLogin)
	api.Get("/auth/me", "auth.me", authController.Me)
	api.Post("/auth/logout", "auth.logout", authController.Logout)

	// Public catalog
	api.Get("/categories", "catalog.categories", catalogController.ListCategories)
	api.Get("/products", "catalog.products", catalogController.ListProducts)
	api.Get("/products/{id}", "catalog.product", catalogController.GetProduct)
	api.Post("/graphql", "catalog.graphql", graphqlHandler(catalogService))

	// Customer routes behind a session identity
	authed := api.Group("", middleware.Auth(authService.Resolver()))
	authed.Post("/orders", "orders.create", orderController.Create)
	authed.Get("/orders", "orders.mine", orderController.ListMine)
	authed.Post("/cart", "cart.sync", orderController.SyncCart)
	authed.Get("/cart", "cart.get", orderController.GetCart)
	authed.Get("/messages", "chat.mine", chatController.ListMine)
	authed.Post("/messages", "chat.post", chatController.Post)
	authed.Put("/messages/{id}", "chat.edit", chatController.Edit)
	authed.Delete("/messages/{id}", "chat.delete", chatController.Delete)
	authed.Delete("/messages", "chat.clear", chatController.ClearMine)

	// Admin surface: 401 without identity, 403 without the admin role
	admin := api.Group("/admin", middleware.Auth(authService.Resolver()), rbac.HasRole("admin"))
	admin.Get("/stats", "admin.stats", adminController.Stats)
	admin.Post("/reset-stats", "admin.reset_stats", adminController.ResetStats)
	admin.Post("/products", "admin.products.create", adminController.CreateProduct)
	admin.Put("/products/{id}", "admin.products.update", adminController.UpdateProduct)
	admin.Delete("/products/{id}", "admin.products.delete", adminController.DeleteProduct)
	admin.Post("/categories", "admin.categories.create", adminController.CreateCategory)
	admin.Put("/categories/{id}", "admin.categories.update", adminController.UpdateCategory)
	admin.Delete("/categories/{id}", "admin.categories.delete", adminController.DeleteCategory)
	admin.Get("/messages", "admin.messages", adminController.ListMessages)
	admin.Post("/messages", "admin.messages.post", adminController.PostMessage)
	admin.Delete("/messages/{id}", "admin.messages.delete", adminController.DeleteMessage)
	admin.Delete("/messages", "admin.messages.clear", adminController.ClearMessages)
	admin.Post("/uploads", "admin.uploads", adminController.Upload)

	// Order status transitions live under /api/orders but are admin-only.
	api.Put("/orders/{id}/status", "orders.status",
		orderController.UpdateStatus,
		middleware.Auth(authService.Resolver()), rbac.HasRole("admin"))
}

func graphqlHandler(catalog *services.CatalogService) http.HandlerFunc {
	h, err := appgraphql.Handler(catalog)
	if err != nil {
		logger.Error("routes: graphql schema build failed", "error", err)
		return func(w http.ResponseWriter, _ *http.Request) {
			response.Error(w, http.StatusInternalServerError, "GraphQL unavailable")
		}
	}
	return h
}

func index(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]interface{}{
		"name":    "PetHive API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":     "/health",
			"auth":       "/api/auth",
			"categories": "/api/categories",
			"products":   "/api/products",
			"orders":     "/api/orders",
			"cart":       "/api/cart",
			"messages":   "/api/messages",
			"admin":      "/api/admin",
			"graphql":    "/api/graphql",
			"metrics":    "/metrics",
		},
	})
}
