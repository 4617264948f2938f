package domain

// Group names recognized by the role logic
const (
	GroupManager      = "Manager"       // Administrative group
	GroupDeliveryCrew = "Delivery Crew" // Fulfillment group
)

// User Model
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`                 // Primary key
	Username string  `gorm:"unique;not null" json:"username"`      // Unique username
	Email    string  `gorm:"not null" json:"email"`                // Contact email
	Password string  `gorm:"not null" json:"-"`                    // Hashed password, never serialized
	Groups   []Group `gorm:"many2many:user_groups;" json:"groups"` // Role-group memberships
}

// InGroup reports whether the user belongs to the named group
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true // Found the membership
		}
	}
	return false // Not a member
}

// Group Model (role-group, e.g. Manager or Delivery Crew)
type Group struct {
	ID   uint   `gorm:"primaryKey" json:"id"`        // Primary key
	Name string `gorm:"unique;not null" json:"name"` // Unique group name
}

// AuthToken Model: an issued bearer token, resolvable and revocable by row
type AuthToken struct {
	Key       string `gorm:"primaryKey;size:512" json:"key"`         // The token string itself
	UserID    uint   `gorm:"index;not null" json:"user_id"`          // Foreign key to User
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of issuance in milliseconds
}
