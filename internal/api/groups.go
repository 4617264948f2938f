package api

import (
	"fmt"                         // Response message formatting
	"littlelemon/internal/domain" // Importing domain models
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Request struct for adding a user to a roster
type RosterAddRequest struct {
	ID uint `json:"id"` // Target user ID; checked by hand to keep the original error body
}

// Request struct for adding a roster member to a named group
type GroupNameRequest struct {
	GroupName string `json:"group_name"` // Defaults to the roster's own group
}

// Request struct for creating/renaming a group
type GroupRequest struct {
	Name string `json:"name" binding:"required"` // Unique group name
}

// ListGroupsHandler returns all role groups
func ListGroupsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var groups []domain.Group
		if err := db.Find(&groups).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch groups"})
			return
		}
		c.JSON(http.StatusOK, groups)
	}
}

// CreateGroupHandler creates a new role group
func CreateGroupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GroupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		group := domain.Group{Name: req.Name}
		if err := db.Create(&group).Error; err != nil {
			// Creation fails on a duplicate name
			c.JSON(http.StatusBadRequest, gin.H{"error": "Group already exists"})
			return
		}
		c.JSON(http.StatusCreated, group)
	}
}

// GetGroupHandler returns a single group
func GetGroupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var group domain.Group
		if err := db.First(&group, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusOK, group)
	}
}

// UpdateGroupHandler renames a group
func UpdateGroupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var group domain.Group
		if err := db.First(&group, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		var req GroupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		group.Name = req.Name
		if err := db.Save(&group).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update group"})
			return
		}
		c.JSON(http.StatusOK, group)
	}
}

// DeleteGroupHandler removes a group
func DeleteGroupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var group domain.Group
		if err := db.First(&group, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		if err := db.Delete(&group).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to delete group"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully"})
	}
}

// groupMembers returns every user belonging to the named group
func groupMembers(db *gorm.DB, groupName string) ([]domain.User, error) {
	var users []domain.User
	err := db.Preload("Groups").
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN `groups` ON `groups`.id = user_groups.group_id").
		Where("`groups`.name = ?", groupName).
		Find(&users).Error
	return users, err
}

// rosterLabel is the short role name used in roster response bodies
func rosterLabel(groupName string) string {
	if groupName == domain.GroupDeliveryCrew {
		return "delivery crew"
	}
	return "manager"
}

// ListRosterHandler lists the members of a role group (Manager or Delivery Crew)
func ListRosterHandler(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := groupMembers(db, groupName)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// AddToRosterHandler adds a user to a role group, rejecting duplicates with a
// conflict so a user never holds the same membership twice
func AddToRosterHandler(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RosterAddRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No id was sent"})
			return
		}
		var user domain.User // The target user must exist
		if err := db.Preload("Groups").First(&user, req.ID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("User with id %d was not found", req.ID)})
			return
		}
		// Reject a duplicate membership
		if user.InGroup(groupName) {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("User is already a %s", rosterLabel(groupName))})
			return
		}
		var group domain.Group // The role group must exist
		if err := db.Where("name = ?", groupName).First(&group).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s group does not exist", groupName)})
			return
		}
		// Record the membership
		if err := db.Model(&user).Association("Groups").Append(&group); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to add user to group"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %d added to %s's group.", req.ID, groupName)})
	}
}

// GetRosterMemberHandler lists a single user if they belong to the role group
func GetRosterMemberHandler(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User
		if err := db.Preload("Groups").First(&user, c.Param("id")).Error; err != nil || !user.InGroup(groupName) {
			// Members-only listing: a user outside the group yields an empty list
			c.JSON(http.StatusOK, []domain.User{})
			return
		}
		c.JSON(http.StatusOK, []domain.User{user})
	}
}

// AddRosterMemberHandler adds the user in the path to a named group,
// defaulting to the roster's own group
func AddRosterMemberHandler(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GroupNameRequest // Bind JSON request to struct; body is optional
		_ = c.ShouldBindJSON(&req)
		if req.GroupName == "" {
			req.GroupName = groupName // Default to the roster's group
		}
		var user domain.User // The target user must exist
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var group domain.Group // The named group must exist
		if err := db.Where("name = ?", req.GroupName).First(&group).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		// Record the membership
		if err := db.Model(&user).Association("Groups").Append(&group); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to add user to group"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("User %s added to group %s.", user.Username, group.Name)})
	}
}

// RemoveRosterMemberHandler removes the user in the path from the role group
func RemoveRosterMemberHandler(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User // The target user must exist
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var group domain.Group // The role group must exist
		if err := db.Where("name = ?", groupName).First(&group).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		// Drop the membership; removing a non-member is a no-op
		if err := db.Model(&user).Association("Groups").Delete(&group); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to remove user from group"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s removed from group %s.", user.Username, group.Name)})
	}
}
