package domain

// Category Model
type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`        // Primary key
	Slug  string `gorm:"unique;not null" json:"slug"` // URL-safe identifier
	Title string `gorm:"not null" json:"title"`       // Display title
}

// MenuItem Model
type MenuItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`           // Primary key
	Title      string   `gorm:"not null" json:"title"`          // Item title
	Price      float64  `gorm:"not null" json:"price"`          // Current price; order items snapshot it
	Featured   bool     `gorm:"default:false" json:"featured"`  // Featured flag
	CategoryID uint     `gorm:"index" json:"category_id"`       // Foreign key to Category
	Category   Category `json:"-"`                              // Category relation, preloaded for responses
}
