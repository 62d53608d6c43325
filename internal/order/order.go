package order

import (
	"strings"

	apperrors "github.com/agbru/ordercalc/internal/errors"
)

// shippedStatus is the status literal that classifies an order as fulfilled.
// The comparison is case-insensitive.
const shippedStatus = "shipped"

// Order is a validated customer order: an identifier, a customer name, a
// non-empty item list, and a free-form status. The order total is derived
// once at construction from the order's own copy of the item slice, so it
// cannot drift from the items afterwards. Orders are immutable after
// construction.
type Order struct {
	orderID  string
	customer string
	items    []Item
	status   string
	total    float64
}

// NewOrder constructs a validated Order.
//
// Validation rules:
//   - orderID, customer and status must not be empty or all-whitespace;
//   - items must contain at least one Item.
//
// The item slice is copied; the caller keeps ownership of the original.
//
// Returns:
//   - *Order: The constructed order.
//   - error: An apperrors.ValidationError describing the first violation.
func NewOrder(orderID, customer string, items []Item, status string) (*Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperrors.NewValidationError("orderId", "order ID cannot be empty")
	}
	if strings.TrimSpace(customer) == "" {
		return nil, apperrors.NewValidationError("customer", "customer cannot be empty")
	}
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("items", "items list cannot be empty")
	}
	if strings.TrimSpace(status) == "" {
		return nil, apperrors.NewValidationError("status", "status cannot be empty")
	}

	owned := make([]Item, len(items))
	copy(owned, items)

	o := &Order{
		orderID:  orderID,
		customer: customer,
		items:    owned,
		status:   status,
	}
	for _, it := range o.items {
		o.total += it.LineTotal()
	}
	return o, nil
}

// OrderID returns the order identifier.
func (o *Order) OrderID() string { return o.orderID }

// Customer returns the customer name.
func (o *Order) Customer() string { return o.customer }

// Status returns the raw order status as supplied in the input.
func (o *Order) Status() string { return o.status }

// Items returns a copy of the order's item list. Mutating the returned slice
// does not affect the order, which keeps the stored total consistent.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order total, computed at construction as the sum of
// price times quantity over all items.
func (o *Order) Total() float64 { return o.total }

// Fulfilled reports whether the order counts toward revenue. It is computed
// on read as a case-insensitive comparison of the status with "shipped".
func (o *Order) Fulfilled() bool {
	return strings.EqualFold(o.status, shippedStatus)
}
