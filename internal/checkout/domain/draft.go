package domain

import (
	"net/mail"
	"strconv"
	"strings"
	"time"
)

// Validate checks everything that can be checked without the backend.
// It returns a *ValidationError listing every problem, or nil.
func (d Draft) Validate(now time.Time) error {
	var problems []Problem
	add := func(field, msg string) {
		problems = append(problems, Problem{Field: field, Message: msg})
	}

	switch {
	case d.ClientID > 0 && d.Client != nil:
		add("client", "choose an existing client or enter a new one, not both")
	case d.ClientID < 0:
		add("client_id", "must be positive")
	case d.ClientID == 0 && d.Client == nil:
		add("client", "is required")
	case d.Client != nil:
		if strings.TrimSpace(d.Client.Name) == "" {
			add("client.name", "is required")
		}
		if strings.TrimSpace(d.Client.Lastname) == "" {
			add("client.lastname", "is required")
		}
		if strings.TrimSpace(d.Client.Email) == "" {
			add("client.email", "is required")
		} else if _, err := mail.ParseAddress(d.Client.Email); err != nil {
			add("client.email", "is not a valid email address")
		}
	}

	switch {
	case d.AddressID > 0 && d.Address != nil:
		add("address", "choose an existing address or enter a new one, not both")
	case d.AddressID < 0:
		add("address_id", "must be positive")
	case d.AddressID == 0 && d.Address == nil:
		add("address", "is required")
	case d.AddressID > 0 && d.ClientID == 0:
		add("address_id", "an existing address needs an existing client")
	case d.Address != nil:
		if strings.TrimSpace(d.Address.Street) == "" {
			add("address.street", "is required")
		}
		if strings.TrimSpace(d.Address.City) == "" {
			add("address.city", "is required")
		}
	}

	if !d.PaymentType.Valid() {
		add("payment_type", "is not a known payment type")
	} else if d.PaymentType.IsCard() {
		problems = append(problems, validateCard(d.Card, now)...)
	}

	if d.DeliveryMethod != 0 && !d.DeliveryMethod.Valid() {
		add("delivery_method", "is not a known delivery method")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func validateCard(c *Card, now time.Time) []Problem {
	if c == nil {
		return []Problem{{Field: "card", Message: "is required for card payments"}}
	}
	var problems []Problem

	number := strings.NewReplacer(" ", "", "-", "").Replace(c.Number)
	if len(number) < 13 || len(number) > 19 || !digits(number) {
		problems = append(problems, Problem{Field: "card.number", Message: "must be 13 to 19 digits"})
	}

	if expiry, ok := parseExpiry(c.Expiry); !ok {
		problems = append(problems, Problem{Field: "card.expiry", Message: "must be MM/YY"})
	} else if !now.Before(expiry) {
		problems = append(problems, Problem{Field: "card.expiry", Message: "card has expired"})
	}

	if (len(c.CVV) != 3 && len(c.CVV) != 4) || !digits(c.CVV) {
		problems = append(problems, Problem{Field: "card.cvv", Message: "must be 3 or 4 digits"})
	}
	return problems
}

// parseExpiry returns the first instant after the card's last valid month.
func parseExpiry(s string) (time.Time, bool) {
	mm, yy, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || len(mm) != 2 || len(yy) != 2 || !digits(mm) || !digits(yy) {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(mm)
	year, _ := strconv.Atoi(yy)
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	return time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC), true
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
