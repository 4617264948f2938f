package api

import (
	"littlelemon/internal/auth"       // Authorization policy resources
	"littlelemon/internal/domain"     // Group name constants
	"littlelemon/internal/middleware" // Token auth and policy middleware
	"net/http"                        // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// RootHandler lists the API surface
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"menu-categories":      "/api/menu-categories",
		"menu-category-detail": "/api/menu-categories/1",
		"menu-items":           "/api/menu-items",
		"menu-items-detail":    "/api/menu-items/1",
		"groups":               "/api/groups",
		"groups-detail":        "/api/groups/1",
		"managers":             "/api/groups/managers/users",
		"delivery-crew":        "/api/groups/delivery-crew/users",
		"cart-menu-items":      "/api/cart/menu-items",
		"orders":               "/api/orders",
		"manage-single-order":  "/api/orders/1",
	})
}

// SetupRouter builds the gin engine with every route and its middleware
// chain. Menu reads are public; everything else resolves the bearer token
// once and consults the policy table for the resource it touches.
func SetupRouter(db *gorm.DB, rdb *redis.Client, jwtSecret string) *gin.Engine {
	r := gin.Default() // Gin router instance

	root := r.Group("/api")
	root.GET("", RootHandler) // The root API view

	// Registration and token issuance
	root.POST("/users", RegisterHandler(db))
	root.POST("/token/login", LoginHandler(db, jwtSecret))

	// Menu reads are open to anyone, authenticated or not
	root.GET("/menu-categories", ListCategoriesHandler(db, rdb))
	root.GET("/menu-categories/:id", GetCategoryHandler(db))
	root.GET("/menu-items", ListMenuItemsHandler(db, rdb))
	root.GET("/menu-items/:id", GetMenuItemHandler(db))

	// Menu writes are Manager only
	menuWrite := root.Group("", middleware.TokenAuthMiddleware(db, jwtSecret), middleware.Authorize(auth.ResourceMenu))
	menuWrite.POST("/menu-categories", CreateCategoryHandler(db, rdb))
	menuWrite.PUT("/menu-categories/:id", UpdateCategoryHandler(db, rdb))
	menuWrite.PATCH("/menu-categories/:id", UpdateCategoryHandler(db, rdb))
	menuWrite.DELETE("/menu-categories/:id", DeleteCategoryHandler(db, rdb))
	menuWrite.POST("/menu-items", CreateMenuItemHandler(db, rdb))
	menuWrite.PUT("/menu-items/:id", UpdateMenuItemHandler(db, rdb))
	menuWrite.PATCH("/menu-items/:id", UpdateMenuItemHandler(db, rdb))
	menuWrite.DELETE("/menu-items/:id", DeleteMenuItemHandler(db, rdb))

	// Group records and role rosters are Manager only
	groups := root.Group("/groups", middleware.TokenAuthMiddleware(db, jwtSecret), middleware.Authorize(auth.ResourceGroups))
	groups.GET("", ListGroupsHandler(db))
	groups.POST("", CreateGroupHandler(db))
	groups.GET("/:id", GetGroupHandler(db))
	groups.PUT("/:id", UpdateGroupHandler(db))
	groups.PATCH("/:id", UpdateGroupHandler(db))
	groups.DELETE("/:id", DeleteGroupHandler(db))
	groups.GET("/managers/users", ListRosterHandler(db, domain.GroupManager))
	groups.POST("/managers/users", AddToRosterHandler(db, domain.GroupManager))
	groups.GET("/managers/users/:id", GetRosterMemberHandler(db, domain.GroupManager))
	groups.POST("/managers/users/:id", AddRosterMemberHandler(db, domain.GroupManager))
	groups.DELETE("/managers/users/:id", RemoveRosterMemberHandler(db, domain.GroupManager))
	groups.GET("/delivery-crew/users", ListRosterHandler(db, domain.GroupDeliveryCrew))
	groups.POST("/delivery-crew/users", AddToRosterHandler(db, domain.GroupDeliveryCrew))
	groups.GET("/delivery-crew/users/:id", GetRosterMemberHandler(db, domain.GroupDeliveryCrew))
	groups.POST("/delivery-crew/users/:id", AddRosterMemberHandler(db, domain.GroupDeliveryCrew))
	groups.DELETE("/delivery-crew/users/:id", RemoveRosterMemberHandler(db, domain.GroupDeliveryCrew))

	// The cart belongs to authenticated customers only
	cart := root.Group("/cart", middleware.TokenAuthMiddleware(db, jwtSecret), middleware.Authorize(auth.ResourceCart))
	cart.GET("/menu-items", ViewCartHandler(db))
	cart.POST("/menu-items", AddToCartHandler(db))
	cart.DELETE("/menu-items", ClearCartHandler(db))

	// Order lifecycle: reads for every role, create for customers,
	// updates for staff, deletes for managers (see the policy table)
	orders := root.Group("/orders", middleware.TokenAuthMiddleware(db, jwtSecret), middleware.Authorize(auth.ResourceOrders))
	orders.GET("", ListOrdersHandler(db))
	orders.POST("", CreateOrderHandler(db))
	orders.GET("/:id", GetOrderHandler(db))
	orders.PUT("/:id", UpdateOrderHandler(db))
	orders.PATCH("/:id", UpdateOrderHandler(db))
	orders.DELETE("/:id", DeleteOrderHandler(db))

	return r
}
