package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name         string    `gorm:"size:100;not null"          json:"name"`
	Slug         string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description  string    `json:"description"`
	DisplayOrder int       `gorm:"default:0"                  json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name          string          `gorm:"size:200;not null"             json:"name"`
	Slug          string          `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"   json:"price"`
	CategoryID    *uint           `gorm:"index"                         json:"category_id"`
	Materials     StringList      `gorm:"type:text"                     json:"materials"`
	Colors        StringList      `gorm:"type:text"                     json:"colors"`
	Images        StringList      `gorm:"type:text;not null"            json:"images"`
	StockQuantity int             `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	IsAvailable   bool            `gorm:"not null;default:true"         json:"is_available"`
	IsFeatured    bool            `gorm:"not null;default:false"        json:"is_featured"`
	CreatedBy     string          `gorm:"size:50"                       json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderNumber     string          `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	CustomerName    string          `gorm:"size:200;not null"            json:"customer_name"`
	CustomerEmail   string          `gorm:"size:320;not null"            json:"customer_email"`
	CustomerPhone   string          `gorm:"size:50"                      json:"customer_phone"`
	ShippingStreet  string          `gorm:"size:200"                     json:"shipping_street"`
	ShippingCity    string          `gorm:"size:100"                     json:"shipping_city"`
	ShippingState   string          `gorm:"size:100"                     json:"shipping_state"`
	ShippingZipCode string          `gorm:"size:20"                      json:"shipping_zip_code"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"total_amount"`
	Status          OrderStatus     `gorm:"size:20;not null;default:pending" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"size:20;not null;default:pending" json:"payment_status"`
	PaymentSession  string          `gorm:"size:255"                     json:"payment_session,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem denormalizes product name and unit price at time of purchase so
// the line survives later product edits or deletion.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID      uint            `gorm:"index;not null"              json:"order_id"`
	ProductID    *uint           `gorm:"index"                       json:"product_id"`
	ProductName  string          `gorm:"size:200;not null"           json:"product_name"`
	ProductPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"product_price"`
	Quantity     int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}

type CustomRequest struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName  string           `gorm:"size:200;not null"        json:"customer_name"`
	CustomerEmail string           `gorm:"size:320;not null"        json:"customer_email"`
	CustomerPhone string           `gorm:"size:50"                  json:"customer_phone"`
	ItemType      string           `gorm:"size:100"                 json:"item_type"`
	Description   string           `gorm:"not null"                 json:"description"`
	Colors        StringList       `gorm:"type:text"                json:"colors"`
	Budget        *decimal.Decimal `gorm:"type:decimal(10,2)"       json:"budget,omitempty"`
	Status        RequestStatus    `gorm:"size:20;not null;default:pending" json:"status"`
	AdminNotes    string           `json:"admin_notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type Testimonial struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName  string    `gorm:"size:200;not null"        json:"customer_name"`
	CustomerEmail string    `gorm:"size:320"                 json:"customer_email,omitempty"`
	Rating        int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment       string    `gorm:"not null"                 json:"comment"`
	ProductID     *uint     `gorm:"index"                    json:"product_id,omitempty"`
	OrderID       *uint     `gorm:"index"                    json:"order_id,omitempty"`
	IsApproved    bool      `gorm:"not null;default:false"   json:"is_approved"`
	IsPublished   bool      `gorm:"not null;default:false"   json:"is_published"`
	CreatedAt     time.Time `json:"created_at"`
}

type NewsletterSubscriber struct {
	ID             uint       `gorm:"primaryKey;autoIncrement"      json:"id"`
	Email          string     `gorm:"size:320;uniqueIndex;not null" json:"email"`
	Name           string     `gorm:"size:200"                      json:"name,omitempty"`
	IsActive       bool       `gorm:"not null;default:true"         json:"is_active"`
	SubscribedAt   time.Time  `gorm:"autoCreateTime"                json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

type GalleryImage struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"size:200"                 json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `gorm:"size:500;not null"        json:"image_url"`
	Category     string    `gorm:"size:100"                 json:"category,omitempty"`
	DisplayOrder int       `gorm:"default:0"                json:"display_order"`
	IsPublished  bool      `gorm:"not null;default:true"    json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
}

// WebhookEvent is the processed-events ledger. The unique constraint on the
// external event id is what makes webhook redelivery a no-op.
type WebhookEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	EventID   string    `gorm:"size:255;uniqueIndex;not null" json:"event_id"`
	EventType string    `gorm:"size:100;not null"             json:"event_type"`
	OrderID   *uint     `gorm:"index"                         json:"order_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
