package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("a checkout for this cart is already in progress")
	ErrIllegalTransition  = errors.New("illegal checkout state transition")
)

// Problem is one reason a checkout was refused before anything was created.
type Problem struct {
	Field     string `json:"field,omitempty"`
	ProductID int64  `json:"product_id,omitempty"`
	Message   string `json:"message"`
}

// ValidationError is returned when the draft or the cart cannot be submitted.
// No remote record exists when it is returned.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Field != "" {
			msgs = append(msgs, p.Field+": "+p.Message)
		} else {
			msgs = append(msgs, p.Message)
		}
	}
	return "checkout validation failed: " + strings.Join(msgs, "; ")
}

// StageError reports the step at which a submitted checkout stopped. Records
// created by earlier steps are left in place.
type StageError struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("checkout failed at %s: %s", e.Stage, e.Message)
}

func (e *StageError) Unwrap() error { return e.Err }
