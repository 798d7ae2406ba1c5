package domain

import "github.com/dwikikusuma/shoping-storefront/pkg/money"

type Product struct {
	ID           int64       `json:"id_key"`
	Name         string      `json:"name"`
	Price        money.Money `json:"price"`
	Stock        int         `json:"stock"`
	CategoryID   int64       `json:"category_id"`
	CategoryName string      `json:"category_name,omitempty"`
}

func (p Product) InStock() bool { return p.Stock > 0 }

type Category struct {
	ID   int64  `json:"id_key"`
	Name string `json:"name"`
}

type Review struct {
	ID        int64   `json:"id_key"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	ProductID int64   `json:"product_id"`
}

type ProductDetail struct {
	Product
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
}

// Page is one slice of a product listing. NextCursor is empty on the last page.
type Page struct {
	Products   []Product `json:"products"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
