// Package order defines the validated order entities consumed by the
// aggregation engine, along with the JSON document binding that constructs
// them. Every Item and Order reachable by the engine has passed constructor
// validation; partially constructed entities never escape this package.
package order

import (
	"strings"

	apperrors "github.com/agbru/ordercalc/internal/errors"
)

// Item is a validated product line within an order: a product name, a
// positive quantity, and a non-negative unit price. The zero value is not
// valid; use NewItem.
type Item struct {
	product  string
	quantity int
	price    float64
}

// NewItem constructs a validated Item.
//
// Validation rules:
//   - product must not be empty or all-whitespace (it is stored trimmed);
//   - quantity must be strictly positive;
//   - price must not be negative.
//
// Returns:
//   - Item: The constructed item.
//   - error: An apperrors.ValidationError describing the first violation.
func NewItem(product string, quantity int, price float64) (Item, error) {
	trimmed := strings.TrimSpace(product)
	if trimmed == "" {
		return Item{}, apperrors.NewValidationError("product", "product name cannot be empty")
	}
	if quantity <= 0 {
		return Item{}, apperrors.NewValidationError("quantity", "quantity must be positive, got %d", quantity)
	}
	if price < 0 {
		return Item{}, apperrors.NewValidationError("price", "price cannot be negative, got %v", price)
	}
	return Item{product: trimmed, quantity: quantity, price: price}, nil
}

// Product returns the product name.
func (i Item) Product() string { return i.product }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// Price returns the unit price.
func (i Item) Price() float64 { return i.price }

// LineTotal returns price multiplied by quantity.
func (i Item) LineTotal() float64 { return i.price * float64(i.quantity) }

// SetProduct updates the product name after re-validation. On rejection the
// item is left unchanged.
func (i *Item) SetProduct(product string) error {
	trimmed := strings.TrimSpace(product)
	if trimmed == "" {
		return apperrors.NewValidationError("product", "product name cannot be empty")
	}
	i.product = trimmed
	return nil
}

// SetQuantity updates the quantity after re-validation. On rejection the
// item is left unchanged.
func (i *Item) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidationError("quantity", "quantity must be positive, got %d", quantity)
	}
	i.quantity = quantity
	return nil
}

// SetPrice updates the unit price after re-validation. On rejection the
// item is left unchanged.
func (i *Item) SetPrice(price float64) error {
	if price < 0 {
		return apperrors.NewValidationError("price", "price cannot be negative, got %v", price)
	}
	i.price = price
	return nil
}
