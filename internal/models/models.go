package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Article struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url,omitempty"`
	IsFeatured    bool            `json:"is_featured"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Order struct {
	ID         int64           `json:"id"`
	UserID     string          `json:"user_id"`
	OrderDate  time.Time       `json:"order_date"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ArticleID int64           `json:"article_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderDetail is the read-side projection of an order joined with its
// customer and the catalog data needed for display.
type OrderDetail struct {
	ID         int64             `json:"id"`
	UserID     string            `json:"user_id"`
	FullName   string            `json:"full_name"`
	Address    string            `json:"address,omitempty"`
	OrderDate  time.Time         `json:"order_date"`
	Status     string            `json:"status"`
	TotalPrice decimal.Decimal   `json:"total_price"`
	Items      []OrderItemDetail `json:"items"`
}

type OrderItemDetail struct {
	ArticleID   int64           `json:"article_id"`
	ArticleName string          `json:"article_name"`
	ImageURL    string          `json:"image_url,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// OrderSummary is one row of an order listing (user history, back office).
type OrderSummary struct {
	ID         int64           `json:"id"`
	UserID     string          `json:"user_id"`
	FullName   string          `json:"full_name"`
	OrderDate  time.Time       `json:"order_date"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Order lifecycle states. The values are persisted as-is, so they must
// never change for existing rows.
const (
	OrderStatusPending = "Pendente"
	OrderStatusShipped = "Enviada"
)
