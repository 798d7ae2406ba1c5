package domain

import (
	backend "github.com/dwikikusuma/shoping-storefront/internal/backend/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/pricing"
	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

// Stage names one remote step of a checkout. It is what a failure reports.
type Stage string

const (
	StageStock     Stage = "stock"
	StageClient    Stage = "client"
	StageAddress   Stage = "address"
	StageBill      Stage = "bill"
	StageOrder     Stage = "order"
	StageLineItems Stage = "line-items"
)

type QuoteLine struct {
	ProductID int64       `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Money `json:"unit_price"`
	LineTotal money.Money `json:"line_total"`
}

// Quote is the price breakdown of a cart. Problems lists lines that would
// fail the stock check if the cart were submitted now.
type Quote struct {
	Lines    []QuoteLine    `json:"lines"`
	Totals   pricing.Totals `json:"totals"`
	Problems []Problem      `json:"problems,omitempty"`
}

type NewClient struct {
	Name      string `json:"name"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone,omitempty"`
}

type NewAddress struct {
	Street  string `json:"street"`
	Number  string `json:"number,omitempty"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code,omitempty"`
}

// Card details are checked locally and never leave the service.
type Card struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// Draft is what the buyer submits. Exactly one of ClientID and Client is set,
// and exactly one of AddressID and Address.
type Draft struct {
	ClientID       int64
	Client         *NewClient
	AddressID      int64
	Address        *NewAddress
	PaymentType    backend.PaymentType
	DeliveryMethod backend.DeliveryMethod
	Card           *Card
}

type Result struct {
	OrderID    int64          `json:"order_id"`
	BillID     int64          `json:"bill_id"`
	BillNumber string         `json:"bill_number"`
	ClientID   int64          `json:"client_id"`
	AddressID  int64          `json:"address_id"`
	LineIDs    []int64        `json:"line_ids"`
	Totals     pricing.Totals `json:"totals"`
}
