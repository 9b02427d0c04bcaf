// Package composer maintains the one in-progress draft order of a waiter
// session: line items, quantity aggregation, the running total, and the
// single atomic submission to the backend.
package composer

import (
	"context"
	"fmt"

	"github.com/comanda-io/comanda/client"
	"github.com/comanda-io/comanda/core"
)

// State is the draft lifecycle position.
type State string

const (
	StateEmpty      State = "empty"
	StateBuilding   State = "building"
	StateSubmitting State = "submitting"
)

// LineItem is one product entry of the draft, client-local until submission.
type LineItem struct {
	ProductID   string
	Quantity    int
	UnitPrice   float64
	DisplayName string
}

// OrderCreator is the slice of the gateway client the composer needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req client.OrderRequest) (map[string]interface{}, error)
}

// Outcome reports a successful submission.
type Outcome struct {
	OrderID string
	Message string
}

// Composer holds one draft order. Not safe for concurrent use; the dashboard
// drives it from a single interactive loop.
type Composer struct {
	items   []LineItem
	total   float64
	state   State
	gateway OrderCreator
	logger  core.Logger
}

// New creates an empty composer submitting through gateway.
func New(gateway OrderCreator, logger core.Logger) *Composer {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Composer{state: StateEmpty, gateway: gateway, logger: logger}
}

// AddItem merges a product into the draft: an existing line gains one unit,
// otherwise a new line is appended with quantity 1. The total is updated
// incrementally by the unit price.
func (c *Composer) AddItem(productID string, unitPrice float64, displayName string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity++
			c.total += unitPrice
			return
		}
	}
	c.items = append(c.items, LineItem{
		ProductID:   productID,
		Quantity:    1,
		UnitPrice:   unitPrice,
		DisplayName: displayName,
	})
	c.total += unitPrice
	c.state = StateBuilding
}

// RemoveItem takes one unit off a line, dropping the line entirely when its
// quantity would fall below 1. Removing a product that is not in the draft
// is a no-op.
func (c *Composer) RemoveItem(productID string, unitPrice float64) {
	for i := range c.items {
		if c.items[i].ProductID != productID {
			continue
		}
		if c.items[i].Quantity > 1 {
			c.items[i].Quantity--
		} else {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		c.total -= unitPrice
		if len(c.items) == 0 && c.state == StateBuilding {
			c.state = StateEmpty
		}
		return
	}
}

// Items returns a copy of the current line items in insertion order.
func (c *Composer) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the incrementally tracked draft total.
func (c *Composer) Total() float64 {
	return c.total
}

// RecomputedTotal sums quantity × unit price over the current lines. It must
// always equal Total(); the invariant is asserted in tests to catch drift in
// the incremental bookkeeping.
func (c *Composer) RecomputedTotal() float64 {
	var sum float64
	for _, it := range c.items {
		sum += float64(it.Quantity) * it.UnitPrice
	}
	return sum
}

// State returns the draft lifecycle position.
func (c *Composer) State() State {
	return c.state
}

// Submit sends the draft as one atomic order for the given table.
//
// It rejects locally, with no network call, when the table number is unset
// or the draft is empty, and when a submission is already in flight. On an
// interpreted success the draft resets to empty; on any failure the draft is
// preserved untouched for retry — nothing was committed, so nothing is
// rolled back.
func (c *Composer) Submit(ctx context.Context, tableNumber int) (Outcome, error) {
	if c.state == StateSubmitting {
		return Outcome{}, core.ErrSubmitInFlight
	}
	if tableNumber < 1 {
		return Outcome{}, core.ErrNoTable
	}
	if len(c.items) == 0 {
		return Outcome{}, core.ErrEmptyDraft
	}

	req := client.OrderRequest{
		Table: tableNumber,
		Items: make([]client.OrderItemRequest, 0, len(c.items)),
		Total: c.total,
	}
	for _, it := range c.items {
		req.Items = append(req.Items, client.OrderItemRequest{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	c.state = StateSubmitting
	c.logger.Info("Submitting order", map[string]interface{}{
		"operation": "order_submit",
		"table":     tableNumber,
		"lines":     len(c.items),
		"total":     c.total,
	})

	payload, err := c.gateway.CreateOrder(ctx, req)
	if err != nil {
		c.state = StateBuilding
		return Outcome{}, err
	}

	switch result := client.InterpretCreateResponse(payload).(type) {
	case client.Created:
		c.items = nil
		c.total = 0
		c.state = StateEmpty
		message := result.Message
		if message == "" {
			message = "Pedido creado correctamente"
		}
		c.logger.Info("Order confirmed", map[string]interface{}{
			"operation": "order_submit",
			"order_id":  result.OrderID,
		})
		return Outcome{OrderID: result.OrderID, Message: message}, nil
	case client.Rejected:
		c.state = StateBuilding
		c.logger.Warn("Order not confirmed by server", map[string]interface{}{
			"operation": "order_submit",
			"reason":    result.Reason,
		})
		return Outcome{}, fmt.Errorf("%w: %s", core.ErrOrderRejected, result.Reason)
	default:
		c.state = StateBuilding
		return Outcome{}, core.ErrOrderRejected
	}
}
