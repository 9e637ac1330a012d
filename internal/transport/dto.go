package transport

import "github.com/shopspring/decimal"

type CreateCategoryRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

type CreateProductRequest struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	CategoryID    *uint    `json:"category_id"`
	Materials     []string `json:"materials"`
	Colors        []string `json:"colors"`
	Images        []string `json:"images"`
	StockQuantity int      `json:"stock_quantity"`
	IsAvailable   *bool    `json:"is_available"`
	IsFeatured    *bool    `json:"is_featured"`
	CreatedBy     string   `json:"created_by"`
}

type PatchProductRequest struct {
	Name          *string   `json:"name"`
	Slug          *string   `json:"slug"`
	Description   *string   `json:"description"`
	Price         *string   `json:"price"`
	CategoryID    *uint     `json:"category_id"`
	Materials     *[]string `json:"materials"`
	Colors        *[]string `json:"colors"`
	Images        *[]string `json:"images"`
	StockQuantity *int      `json:"stock_quantity"`
	IsAvailable   *bool     `json:"is_available"`
	IsFeatured    *bool     `json:"is_featured"`
	CreatedBy     *string   `json:"created_by"`
}

type CreateOrderItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CreateOrderRequest deliberately carries no prices: unit prices and the
// total are always recomputed from stored product rows.
type CreateOrderRequest struct {
	CustomerFirstName string            `json:"customer_first_name"`
	CustomerLastName  string            `json:"customer_last_name"`
	CustomerEmail     string            `json:"customer_email"`
	CustomerPhone     string            `json:"customer_phone"`
	ShippingStreet    string            `json:"shipping_street"`
	ShippingCity      string            `json:"shipping_city"`
	ShippingState     string            `json:"shipping_state"`
	ShippingZipCode   string            `json:"shipping_zip_code"`
	Items             []CreateOrderItem `json:"items"`
}

type CreateOrderResponse struct {
	OrderID     uint            `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type UpdateOrderStatusRequest struct {
	Status        string  `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}

type CreateSessionRequest struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

type CreateSessionResponse struct {
	SessionURL string `json:"session_url"`
}

type CreateCustomRequestRequest struct {
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	CustomerPhone string   `json:"customer_phone"`
	ItemType      string   `json:"item_type"`
	Description   string   `json:"description"`
	Colors        []string `json:"colors"`
	Budget        *string  `json:"budget"`
}

type UpdateRequestStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

type CreateTestimonialRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	ProductID     *uint  `json:"product_id"`
	OrderID       *uint  `json:"order_id"`
}

type UpdateTestimonialStatusRequest struct {
	IsApproved  bool `json:"is_approved"`
	IsPublished bool `json:"is_published"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type CreateGalleryImageRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"display_order"`
	IsPublished  *bool  `json:"is_published"`
}
