package domain

import (
	"fmt"
	"strings"
)

// PaymentType is sent to the backend as a small integer; the values are fixed by the backend.
type PaymentType int

const (
	PaymentCash         PaymentType = 1
	PaymentCard         PaymentType = 2
	PaymentDebit        PaymentType = 3
	PaymentCredit       PaymentType = 4
	PaymentBankTransfer PaymentType = 5
)

var paymentNames = map[PaymentType]string{
	PaymentCash:         "CASH",
	PaymentCard:         "CARD",
	PaymentDebit:        "DEBIT",
	PaymentCredit:       "CREDIT",
	PaymentBankTransfer: "BANK_TRANSFER",
}

func (p PaymentType) Valid() bool {
	_, ok := paymentNames[p]
	return ok
}

// IsCard reports whether the payment needs card details at checkout.
func (p PaymentType) IsCard() bool {
	return p == PaymentCard || p == PaymentDebit || p == PaymentCredit
}

func (p PaymentType) String() string {
	if s, ok := paymentNames[p]; ok {
		return s
	}
	return fmt.Sprintf("PaymentType(%d)", int(p))
}

func ParsePaymentType(s string) (PaymentType, error) {
	for k, v := range paymentNames {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown payment type %q", s)
}

type DeliveryMethod int

const (
	DeliveryDriveThru    DeliveryMethod = 1
	DeliveryOnHand       DeliveryMethod = 2
	DeliveryHomeDelivery DeliveryMethod = 3
)

var deliveryNames = map[DeliveryMethod]string{
	DeliveryDriveThru:    "DRIVE_THRU",
	DeliveryOnHand:       "ON_HAND",
	DeliveryHomeDelivery: "HOME_DELIVERY",
}

func (d DeliveryMethod) Valid() bool {
	_, ok := deliveryNames[d]
	return ok
}

func (d DeliveryMethod) String() string {
	if s, ok := deliveryNames[d]; ok {
		return s
	}
	return fmt.Sprintf("DeliveryMethod(%d)", int(d))
}

func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	for k, v := range deliveryNames {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown delivery method %q", s)
}

type OrderStatus int

const (
	StatusPending    OrderStatus = 1
	StatusInProgress OrderStatus = 2
	StatusDelivered  OrderStatus = 3
	StatusCanceled   OrderStatus = 4
)

var statusNames = map[OrderStatus]string{
	StatusPending:    "PENDING",
	StatusInProgress: "IN_PROGRESS",
	StatusDelivered:  "DELIVERED",
	StatusCanceled:   "CANCELED",
}

func (s OrderStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s OrderStatus) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for k, v := range statusNames {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown order status %q", s)
}
