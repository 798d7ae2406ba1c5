package domain

import "github.com/dwikikusuma/shoping-storefront/pkg/money"

// Order is an order as shown in the buyer's history. Status, DeliveryMethod
// and PaymentType carry the enumeration names, not the wire numbers.
type Order struct {
	ID             int64       `json:"id_key"`
	Date           string      `json:"date"`
	Total          money.Money `json:"total"`
	Status         string      `json:"status"`
	DeliveryMethod string      `json:"delivery_method"`
	ClientID       int64       `json:"client_id"`
	BillID         int64       `json:"bill_id"`
}

type OrderItem struct {
	ID        int64       `json:"id_key"`
	OrderID   int64       `json:"order_id"`
	ProductID int64       `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Money `json:"unit_price"`
	LineTotal money.Money `json:"line_total"`
}

type Bill struct {
	ID          int64       `json:"id_key"`
	Number      string      `json:"bill_number"`
	Date        string      `json:"date"`
	Total       money.Money `json:"total"`
	PaymentType string      `json:"payment_type"`
	ClientID    int64       `json:"client_id"`
}

type OrderDetail struct {
	Order
	Items      []OrderItem `json:"items"`
	ItemsTotal money.Money `json:"items_total"`
	Bill       *Bill       `json:"bill,omitempty"`
}
