package domain

// Cart Model: one row per (user, menu item) pending selection.
// price is always quantity × unit_price, with unit_price snapshotted
// from MenuItem.Price when the row is first created.
type Cart struct {
	ID         uint     `gorm:"primaryKey" json:"id"`                                // Primary key
	UserID     uint     `gorm:"uniqueIndex:idx_cart_user_item;not null" json:"user_id"` // Owning customer
	MenuItemID uint     `gorm:"uniqueIndex:idx_cart_user_item;not null" json:"menuitem_id"` // Selected menu item
	MenuItem   MenuItem `json:"-"`                                                   // MenuItem relation
	Quantity   int      `gorm:"not null" json:"quantity"`                            // Positive quantity
	UnitPrice  float64  `gorm:"not null" json:"unit_price"`                          // Price snapshot at insertion
	Price      float64  `gorm:"not null" json:"price"`                               // Quantity × UnitPrice
}
