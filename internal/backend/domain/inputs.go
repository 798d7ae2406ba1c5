package domain

import "github.com/dwikikusuma/shoping-storefront/pkg/money"

// Request bodies for create and update calls. Plain fields are required by
// the backend; pointer fields are optional and left out when nil.

type CategoryInput struct {
	Name string `json:"name"`
}

type ProductInput struct {
	Name       string      `json:"name"`
	Price      money.Money `json:"price"`
	Stock      int         `json:"stock"`
	CategoryID ID          `json:"category_id"`
}

type ClientInput struct {
	Name      string `json:"name"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

type AddressInput struct {
	Street   string `json:"street"`
	Number   string `json:"number"`
	City     string `json:"city"`
	ClientID ID     `json:"client_id"`
}

type BillInput struct {
	BillNumber  string       `json:"bill_number"`
	Date        string       `json:"date"`
	Total       money.Money  `json:"total"`
	PaymentType PaymentType  `json:"payment_type"`
	ClientID    ID           `json:"client_id"`
	Discount    *money.Money `json:"discount,omitempty"`
}

type OrderInput struct {
	Date           string         `json:"date"`
	Total          money.Money    `json:"total"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	Status         OrderStatus    `json:"status"`
	ClientID       ID             `json:"client_id"`
	BillID         ID             `json:"bill_id"`
}

type OrderLineInput struct {
	Quantity  int         `json:"quantity"`
	Price     money.Money `json:"price"`
	OrderID   ID          `json:"order_id"`
	ProductID ID          `json:"product_id"`
}

type ReviewInput struct {
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	ProductID ID      `json:"product_id"`
}
