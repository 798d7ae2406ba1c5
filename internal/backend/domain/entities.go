// Package domain holds the backend's entity shapes as they travel on the wire.
// Every primary key is named id_key; that name is part of the backend contract.
package domain

import "github.com/dwikikusuma/shoping-storefront/pkg/money"

type ID = int64

type Category struct {
	ID   ID     `json:"id_key"`
	Name string `json:"name"`
}

type Product struct {
	ID         ID          `json:"id_key"`
	Name       string      `json:"name"`
	Price      money.Money `json:"price"`
	Stock      int         `json:"stock"`
	CategoryID ID          `json:"category_id"`
}

type Client struct {
	ID        ID        `json:"id_key"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Telephone string    `json:"telephone"`
	Addresses []Address `json:"addresses,omitempty"`
}

type Address struct {
	ID       ID     `json:"id_key"`
	Street   string `json:"street"`
	Number   string `json:"number"`
	City     string `json:"city"`
	ClientID ID     `json:"client_id"`
}

type Bill struct {
	ID          ID           `json:"id_key"`
	BillNumber  string       `json:"bill_number"`
	Date        string       `json:"date"`
	Total       money.Money  `json:"total"`
	PaymentType PaymentType  `json:"payment_type"`
	ClientID    ID           `json:"client_id"`
	Discount    *money.Money `json:"discount,omitempty"`
}

type Order struct {
	ID             ID             `json:"id_key"`
	Date           string         `json:"date"`
	Total          money.Money    `json:"total"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	Status         OrderStatus    `json:"status"`
	ClientID       ID             `json:"client_id"`
	BillID         ID             `json:"bill_id"`
}

// OrderLine is stored by the backend under /order_details.
type OrderLine struct {
	ID        ID           `json:"id_key"`
	Quantity  int          `json:"quantity"`
	Price     *money.Money `json:"price,omitempty"`
	OrderID   ID           `json:"order_id"`
	ProductID ID           `json:"product_id"`
}

type Review struct {
	ID        ID      `json:"id_key"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	ProductID ID      `json:"product_id"`
}
