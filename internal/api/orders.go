package api

import (
	"littlelemon/internal/auth"       // Role enum
	"littlelemon/internal/domain"     // Importing domain models
	"littlelemon/internal/middleware" // Authenticated user access
	"net/http"                        // HTTP status codes
	"time"                            // Order placement date

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for updating an order. Pointers distinguish a missing field
// from a zero value: status 0 (pending) is a legal explicit update.
type OrderUpdateRequest struct {
	Status       *int  `json:"status"`        // New status value, passed through unvalidated
	DeliveryCrew *uint `json:"delivery_crew"` // New assignee; Delivery Crew callers cannot set this
}

// ListOrdersHandler lists orders for the requester's role: customers see
// their own, delivery crew see their assignments, managers see everything.
// An empty result is reported as a not-found error on every branch.
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Authenticated requester
		role := middleware.CurrentRole(c) // Role resolved by the middleware
		var orders []domain.Order
		query := db.Order("id") // Stable listing order
		switch role {
		case auth.RoleCustomer:
			query = query.Where("user_id = ?", user.ID) // Own orders only
		case auth.RoleDeliveryCrew:
			query = query.Where("delivery_crew_id = ?", user.ID) // Assigned orders only
		default:
			// Manager: unrestricted
		}
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch orders"})
			return
		}
		// No matching orders is an error on this endpoint, with a body per role
		if len(orders) == 0 {
			switch role {
			case auth.RoleCustomer:
				c.JSON(http.StatusNotFound, gin.H{"empty": "You have no orders"})
			case auth.RoleDeliveryCrew:
				c.JSON(http.StatusNotFound, gin.H{"empty": "No orders were found for this Delivery Crew user"})
			default:
				c.JSON(http.StatusNotFound, gin.H{"empty": "No orders were yet placed"})
			}
			return
		}
		c.JSON(http.StatusOK, orders) // Return the matching orders
	}
}

// CreateOrderHandler turns the customer's cart into an order. The order row,
// its items and the cart wipe happen in one transaction: a failure anywhere
// rolls everything back and the cart is left untouched. Prices and the total
// are frozen from the cart snapshots, never from the live menu.
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Authenticated customer
		// Orders need someone to deliver them
		var crew domain.User
		err := db.Joins("JOIN user_groups ON user_groups.user_id = users.id").
			Joins("JOIN `groups` ON `groups`.id = user_groups.group_id").
			Where("`groups`.name = ?", domain.GroupDeliveryCrew).
			First(&crew).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No Delivery Crew user was found. Add one"})
			return
		}
		var cart []domain.Cart // The customer's pending selections
		if err := db.Where("user_id = ?", user.ID).Find(&cart).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch cart"})
			return
		}
		// An empty cart cannot become an order
		if len(cart) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"empty": "No cart items were found for the user"})
			return
		}
		var order domain.Order
		// All-or-nothing: order + items + cart wipe commit together
		err = db.Transaction(func(tx *gorm.DB) error {
			var total float64 // The immutable order total
			for _, line := range cart {
				total += line.Price
			}
			order = domain.Order{
				UserID: user.ID,
				Total:  total,
				Status: domain.StatusPending,
				Date:   time.Now(),
			}
			// Save the order first to generate its primary key
			if err := tx.Create(&order).Error; err != nil {
				return err // Return error to rollback
			}
			// Freeze every cart line into an order item
			items := make([]domain.OrderItem, len(cart))
			for i, line := range cart {
				items[i] = domain.OrderItem{
					OrderID:    order.ID,
					MenuItemID: line.MenuItemID,
					Quantity:   line.Quantity,
					UnitPrice:  line.UnitPrice,
					Price:      line.Price,
				}
			}
			// Bulk create the order items
			if err := tx.Create(&items).Error; err != nil {
				return err // Return error to rollback
			}
			// Clear the user's cart
			if err := tx.Where("user_id = ?", user.ID).Delete(&domain.Cart{}).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // Customer user ID
				"error":   err.Error(), // Error message
			}).Error("Order placement failed") // Log placement failure
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Log the placed order
		logrus.WithFields(logrus.Fields{
			"user_id":   user.ID,                         // Customer user ID
			"order_id":  order.ID,                        // New order ID
			"total":     order.Total,                     // Frozen total
			"items":     len(cart),                       // Number of order items
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Order placed") // Log placement success
		c.JSON(http.StatusOK, order) // Return the order details
	}
}

// GetOrderHandler retrieves a single order: customers get their own,
// delivery crew get their assignments. There is no manager branch on this
// endpoint; managers land on the unauthorized response.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Authenticated requester
		role := middleware.CurrentRole(c) // Role resolved by the middleware
		var order domain.Order
		switch role {
		case auth.RoleCustomer:
			if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&order).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "No orders were found for this customer"})
				return
			}
		case auth.RoleDeliveryCrew:
			if err := db.Where("id = ? AND delivery_crew_id = ?", c.Param("id"), user.ID).First(&order).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "No order with this specific id was found for this Delivery Crew"})
				return
			}
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, order) // Return the order
	}
}

// UpdateOrderHandler updates an order's status and/or assignee. Delivery
// crew callers can only move the status; any delivery_crew field they send
// is dropped before validation. Order items are never touched here.
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := middleware.CurrentRole(c) // Role resolved by the middleware
		var order domain.Order            // The order must exist
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No orders were found"})
			return
		}
		var req OrderUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Delivery crew cannot reassign orders
		if role == auth.RoleDeliveryCrew {
			req.DeliveryCrew = nil
		}
		// At least one updatable field must remain
		if req.Status == nil && req.DeliveryCrew == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update. Missing either status or delivery_crew"})
			return
		}
		// Validate the new assignee
		if req.DeliveryCrew != nil {
			var assignee domain.User // The assignee must exist
			if err := db.Preload("Groups").First(&assignee, *req.DeliveryCrew).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			// And must actually hold the Delivery Crew role
			if !assignee.InGroup(domain.GroupDeliveryCrew) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "User is not in Delivery Crew group"})
				return
			}
			order.DeliveryCrewID = &assignee.ID
		}
		// Status is an open scalar; values other than delivered pass through
		if req.Status != nil {
			order.Status = *req.Status
		}
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
	}
}

// DeleteOrderHandler removes an order and its items (Manager only, gated
// upstream)
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order domain.Order // The order must exist
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No orders were found"})
			return
		}
		// Delete the order and cascade to its items atomically
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&domain.OrderItem{}).Error; err != nil {
				return err // Return error to rollback
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
