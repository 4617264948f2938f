package api

import (
	"littlelemon/internal/domain"     // Importing domain models
	"littlelemon/internal/middleware" // Authenticated user access
	"net/http"                        // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Request struct for adding an item to the cart. Pointers distinguish a
// missing field from a zero value so validation errors can name the field.
type CartAddRequest struct {
	MenuItem *uint `json:"menuitem"` // Menu item reference
	Quantity *int  `json:"quantity"` // Requested quantity
}

// ViewCartHandler returns the authenticated customer's cart lines. An empty
// cart is a normal response, not an error.
func ViewCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Authenticated customer
		var cart []domain.Cart
		if err := db.Where("user_id = ?", user.ID).Find(&cart).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch cart"})
			return
		}
		// Report the empty cart explicitly
		if len(cart) == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "Cart empty"})
			return
		}
		c.JSON(http.StatusOK, cart) // Return the cart lines
	}
}

// AddToCartHandler puts a menu item in the cart. A repeat add of the same
// item replaces the stored quantity with the supplied one and recomputes the
// line price from the line's snapshotted unit price; the snapshot itself is
// never refreshed from the live menu.
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Authenticated customer
		var req CartAddRequest            // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a valid integer"})
			return
		}
		// Name each missing field, matching the original validation shape
		errors := gin.H{}
		if req.Quantity == nil {
			errors["quantity"] = "quantity is required"
		}
		if req.MenuItem == nil {
			errors["menuitem"] = "menuitem is required"
		}
		if len(errors) > 0 {
			c.JSON(http.StatusBadRequest, errors)
			return
		}
		// Quantity must be strictly positive
		if *req.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive number greater than zero"})
			return
		}
		var menuItem domain.MenuItem // The referenced menu item must exist
		if err := db.First(&menuItem, *req.MenuItem).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not exists"})
			return
		}
		var line domain.Cart
		// One line per (user, menu item): a repeat add replaces the quantity
		err := db.Where("user_id = ? AND menu_item_id = ?", user.ID, menuItem.ID).First(&line).Error
		if err == nil {
			line.Quantity = *req.Quantity                       // Replace, not sum
			line.Price = float64(line.Quantity) * line.UnitPrice // Recompute from the snapshot
			if err := db.Save(&line).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update cart"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": "Item quantity change updated successfully in cart"})
			return
		}
		// First add of this item: snapshot the current menu price
		line = domain.Cart{
			UserID:     user.ID,
			MenuItemID: menuItem.ID,
			Quantity:   *req.Quantity,
			UnitPrice:  menuItem.Price,
			Price:      float64(*req.Quantity) * menuItem.Price,
		}
		if err := db.Create(&line).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": "Item added successfully to cart"})
	}
}

// ClearCartHandler empties the authenticated customer's cart. Clearing an
// already-empty cart succeeds and says so.
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Authenticated customer
		result := db.Where("user_id = ?", user.ID).Delete(&domain.Cart{})
		if result.Error != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to empty cart"})
			return
		}
		// Nothing was there to delete
		if result.RowsAffected == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "User's cart is already empty"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": "Emptied the cart for the user"})
	}
}
