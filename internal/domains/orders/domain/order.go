package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const minAddressLength = 5

// UnavailableProductName is the display placeholder used when an item's
// product can no longer be resolved. The frozen unit price and subtotal are
// unaffected.
const UnavailableProductName = "(product unavailable)"

var (
	ErrMissingCustomer = errors.New("customer id is required")
	ErrShortAddress    = errors.New("addresses must be at least 5 characters")
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be greater than zero")
)

// InvalidTransitionError reports an illegal status change.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}

// Order is the ledger aggregate. Status is the only field mutated after
// creation; items and monetary amounts are frozen.
type Order struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	OrderDate       time.Time
	Status          Status
	TotalAmount     decimal.Decimal
	ShippingAddress string
	BillingAddress  string
	Notes           string
	Items           []Item
}

// Item is one line of an order. UnitPrice is the price snapshot captured at
// creation time; Subtotal is computed once and never re-derived. ProductName
// is a display projection resolved at read time, not persisted state.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Line is the priced input for one order item.
type Line struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// NewOrder validates and constructs an order in the Pending state, snapshotting
// prices and computing subtotals and the total.
func NewOrder(customerID uuid.UUID, shippingAddress, billingAddress, notes string, lines []Line) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, ErrMissingCustomer
	}
	shippingAddress = strings.TrimSpace(shippingAddress)
	billingAddress = strings.TrimSpace(billingAddress)
	if len(shippingAddress) < minAddressLength || len(billingAddress) < minAddressLength {
		return nil, ErrShortAddress
	}
	if len(lines) == 0 {
		return nil, ErrNoItems
	}

	order := &Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		OrderDate:       time.Now().UTC(),
		Status:          StatusPending,
		ShippingAddress: shippingAddress,
		BillingAddress:  billingAddress,
		Notes:           notes,
		Items:           make([]Item, 0, len(lines)),
	}
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		order.Items = append(order.Items, Item{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.Round(2),
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}
	order.TotalAmount = total.Round(2)
	return order, nil
}

// TransitionTo moves the order along the status graph, rejecting any edge not
// in the allowed set.
func (o *Order) TransitionTo(next Status) error {
	if _, err := ParseStatus(string(next)); err != nil {
		return err
	}
	if !CanTransition(o.Status, next) {
		return &InvalidTransitionError{From: o.Status, To: next}
	}
	o.Status = next
	return nil
}
