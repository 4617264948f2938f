package api

import (
	"context"                     // Context for Redis operations
	"littlelemon/internal/domain" // Importing domain models
	"littlelemon/internal/utils"  // Utility functions
	"net/http"                    // HTTP status codes
	"strings"                     // String manipulation
	"time"                        // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Cache key prefixes for the public menu listings
const (
	categoryCachePrefix = "menu:categories" // Category list cache
	menuItemCachePrefix = "menu:items"      // Menu item list cache
)

// Request struct for creating/updating a category
type CategoryRequest struct {
	Slug  string `json:"slug" binding:"required"`  // URL-safe identifier
	Title string `json:"title" binding:"required"` // Display title
}

// Partial update struct for a category
type CategoryPatchRequest struct {
	Slug  *string `json:"slug"`  // Optional new slug
	Title *string `json:"title"` // Optional new title
}

// Request struct for creating a menu item
type MenuItemRequest struct {
	Title    string  `json:"title" binding:"required"`      // Item title
	Price    float64 `json:"price" binding:"required,gt=0"` // Positive price
	Featured bool    `json:"featured"`                      // Featured flag
	Category uint    `json:"category" binding:"required"`   // Category reference
}

// Partial update struct for a menu item
type MenuItemPatchRequest struct {
	Title    *string  `json:"title"`    // Optional new title
	Price    *float64 `json:"price"`    // Optional new price
	Featured *bool    `json:"featured"` // Optional new featured flag
	Category *uint    `json:"category"` // Optional new category reference
}

// MenuItemResponse mirrors the menu item with its category title flattened in
type MenuItemResponse struct {
	ID           uint    `json:"id"`            // Item ID
	Title        string  `json:"title"`         // Item title
	Price        float64 `json:"price"`         // Current price
	Featured     bool    `json:"featured"`      // Featured flag
	CategoryName string  `json:"category_name"` // Title of the category
}

// toMenuItemResponse flattens a menu item and its preloaded category
func toMenuItemResponse(item domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:           item.ID,
		Title:        item.Title,
		Price:        item.Price,
		Featured:     item.Featured,
		CategoryName: item.Category.Title,
	}
}

// invalidateMenuCache drops every cached menu listing after a menu write
func invalidateMenuCache(rdb *redis.Client) {
	ctx := context.Background()
	_ = utils.DeleteCacheByPrefix(ctx, rdb, categoryCachePrefix) // Drop category listings
	_ = utils.DeleteCacheByPrefix(ctx, rdb, menuItemCachePrefix) // Drop menu item listings
}

// ListCategoriesHandler returns all categories, filtered by ?search on title
func ListCategoriesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")                             // Optional title filter
		cacheKey := categoryCachePrefix + ":search=" + search   // Cache key per filter
		ctx := context.Background()                             // Context for Redis operations
		var categories []domain.Category                        // Slice to hold categories
		found, err := utils.GetCache(ctx, rdb, cacheKey, &categories) // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, categories) // Return cached listing
			return
		}
		query := db.Model(&domain.Category{}) // Start building the query
		if search != "" {
			query = query.Where("title LIKE ?", "%"+search+"%") // Filter by title substring
		}
		if err := query.Find(&categories).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch categories"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, categories, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, categories)                                  // Return the listing
	}
}

// CreateCategoryHandler creates a new category (Manager only, gated upstream)
func CreateCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		category := domain.Category{Slug: req.Slug, Title: req.Title}
		if err := db.Create(&category).Error; err != nil {
			// Creation fails on a duplicate slug
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category already exists"})
			return
		}
		invalidateMenuCache(rdb)               // Listings are stale now
		c.JSON(http.StatusCreated, category)   // Return the created category
	}
}

// GetCategoryHandler returns a single category
func GetCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category domain.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// UpdateCategoryHandler updates a category's supplied fields
func UpdateCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category domain.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		var req CategoryPatchRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Apply only the supplied fields
		if req.Slug != nil {
			category.Slug = *req.Slug
		}
		if req.Title != nil {
			category.Title = *req.Title
		}
		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update category"})
			return
		}
		invalidateMenuCache(rdb)        // Listings are stale now
		c.JSON(http.StatusOK, category) // Return the updated category
	}
}

// DeleteCategoryHandler removes a category
func DeleteCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category domain.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if err := db.Delete(&category).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to delete category"})
			return
		}
		invalidateMenuCache(rdb) // Listings are stale now
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}

// orderingColumn whitelists the ?ordering values for menu item listings
func orderingColumn(ordering string) (string, bool) {
	column := strings.TrimPrefix(ordering, "-") // Leading dash means descending
	switch column {
	case "title", "price", "featured":
		if strings.HasPrefix(ordering, "-") {
			return column + " desc", true
		}
		return column, true
	}
	return "", false // Unknown columns are ignored
}

// ListMenuItemsHandler returns all menu items with their category names,
// filtered by ?search on title and sorted by ?ordering
func ListMenuItemsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")     // Optional title filter
		ordering := c.Query("ordering") // Optional sort column
		// Cache key per filter combination
		cacheKey := menuItemCachePrefix + ":search=" + search + ":ordering=" + ordering
		ctx := context.Background()                             // Context for Redis operations
		var cached []MenuItemResponse                           // Cached response shape
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached) // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached listing
			return
		}
		query := db.Preload("Category").Model(&domain.MenuItem{}) // Preload for category_name
		if search != "" {
			query = query.Where("title LIKE ?", "%"+search+"%") // Filter by title substring
		}
		if order, ok := orderingColumn(ordering); ok {
			query = query.Order(order) // Apply whitelisted ordering
		}
		var items []domain.MenuItem
		if err := query.Find(&items).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch menu items"})
			return
		}
		resp := make([]MenuItemResponse, len(items)) // Map items to response format
		for i, item := range items {
			resp[i] = toMenuItemResponse(item)
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, resp)                                  // Return the listing
	}
}

// CreateMenuItemHandler creates a new menu item (Manager only, gated upstream)
func CreateMenuItemHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MenuItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var category domain.Category // The referenced category must exist
		if err := db.First(&category, req.Category).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		item := domain.MenuItem{Title: req.Title, Price: req.Price, Featured: req.Featured, CategoryID: category.ID, Category: category}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create menu item"})
			return
		}
		invalidateMenuCache(rdb)                            // Listings are stale now
		c.JSON(http.StatusCreated, toMenuItemResponse(item)) // Return the created item
	}
}

// GetMenuItemHandler returns a single menu item
func GetMenuItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item domain.MenuItem
		if err := db.Preload("Category").First(&item, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusOK, toMenuItemResponse(item))
	}
}

// UpdateMenuItemHandler updates a menu item's supplied fields. Price edits
// never touch already-placed orders, which carry their own snapshots.
func UpdateMenuItemHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item domain.MenuItem
		if err := db.Preload("Category").First(&item, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		var req MenuItemPatchRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Apply only the supplied fields
		if req.Title != nil {
			item.Title = *req.Title
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a positive number"})
				return
			}
			item.Price = *req.Price
		}
		if req.Featured != nil {
			item.Featured = *req.Featured
		}
		if req.Category != nil {
			var category domain.Category // The new category must exist
			if err := db.First(&category, *req.Category).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			item.CategoryID = category.ID
			item.Category = category
		}
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update menu item"})
			return
		}
		invalidateMenuCache(rdb)                        // Listings are stale now
		c.JSON(http.StatusOK, toMenuItemResponse(item)) // Return the updated item
	}
}

// DeleteMenuItemHandler removes a menu item and confirms with an explicit
// message body rather than an empty response
func DeleteMenuItemHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item domain.MenuItem
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		if err := db.Delete(&item).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to delete menu item"})
			return
		}
		invalidateMenuCache(rdb) // Listings are stale now
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
	}
}
