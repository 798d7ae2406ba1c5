package domain

import orderdomain "github.com/dwikikusuma/shoping-storefront/internal/order/domain"

type Client struct {
	ID        int64  `json:"id_key"`
	Name      string `json:"name"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

type Address struct {
	ID       int64  `json:"id_key"`
	Street   string `json:"street"`
	Number   string `json:"number"`
	City     string `json:"city"`
	ClientID int64  `json:"client_id"`
}

// Profile is everything the store knows about one client.
type Profile struct {
	Client    Client              `json:"client"`
	Addresses []Address           `json:"addresses"`
	Orders    []orderdomain.Order `json:"orders"`
	Bills     []orderdomain.Bill  `json:"bills"`
}

// ClientPatch changes only the fields that are set.
type ClientPatch struct {
	Name      *string `json:"name,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
	Email     *string `json:"email,omitempty"`
	Telephone *string `json:"telephone,omitempty"`
}

type AddressPatch struct {
	Street *string `json:"street,omitempty"`
	Number *string `json:"number,omitempty"`
	City   *string `json:"city,omitempty"`
}
