package shop

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
}

func (User) TableName() string { return "users" }

// Category rows form a forest: ParentID is nil for roots and must reference
// an existing category otherwise.
type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
}

func (Category) TableName() string { return "categories" }

type Size struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:20;uniqueIndex;not null" json:"name"`
}

func (Size) TableName() string { return "sizes" }

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Image       string  `gorm:"size:100" json:"image"`
	Price       float64 `gorm:"not null" json:"price"`

	SizeID uint  `gorm:"index" json:"size_id"`
	Size   *Size `gorm:"foreignKey:SizeID" json:"size,omitempty"`

	Categories []Category `gorm:"many2many:product_category" json:"categories,omitempty"`
}

func (Product) TableName() string { return "products" }

// Cart is the mutable per-owner aggregate root. Exactly one cart exists per
// owner; it is created lazily with zero totals.
type Cart struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OwnerID       uint    `gorm:"uniqueIndex;not null" json:"owner_id"`
	TotalPrice    float64 `gorm:"not null;default:0" json:"total_price"`
	TotalQuantity int     `gorm:"not null;default:0" json:"total_quantity"`
}

func (Cart) TableName() string { return "carts" }

// CartLine holds one product entry of a cart. PriceSnapshot is the line
// value (unit price times quantity) computed at last write, not the unit
// price alone. A line with quantity 0 never exists; it is deleted instead.
type CartLine struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	CartID        uint    `gorm:"index;not null" json:"cart_id"`
	ProductID     uint    `gorm:"index;not null" json:"product_id"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	PriceSnapshot float64 `gorm:"not null" json:"price"`
}

func (CartLine) TableName() string { return "cart_lines" }

// Order is immutable after creation.
type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OwnerID       uint      `gorm:"index;not null" json:"owner_id"`
	TotalPrice    float64   `gorm:"not null" json:"total_price"`
	TotalQuantity int       `gorm:"not null" json:"total_quantity"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Order) TableName() string { return "orders" }

type OrderLine struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       uint    `gorm:"index;not null" json:"order_id"`
	ProductID     uint    `gorm:"index;not null" json:"product_id"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	PriceSnapshot float64 `gorm:"not null" json:"price"`
}

func (OrderLine) TableName() string { return "order_lines" }
