package client

import (
	"context"
	"encoding/json"
)

// Read operations degrade gracefully: on any failure they log and return an
// empty collection so a dashboard always renders, just with nothing in it.

// ListProducts fetches the product catalog.
func (c *Client) ListProducts(ctx context.Context) []Product {
	body, err := c.get(ctx, "/productos")
	if err != nil {
		c.readFailed("list_products", err)
		return []Product{}
	}
	var wire []wireProduct
	if err := json.Unmarshal(body, &wire); err != nil {
		c.readFailed("list_products", err)
		return []Product{}
	}
	products := make([]Product, 0, len(wire))
	for _, w := range wire {
		products = append(products, w.normalize())
	}
	return products
}

// ListUsers fetches the staff accounts.
func (c *Client) ListUsers(ctx context.Context) []User {
	body, err := c.get(ctx, "/usuarios")
	if err != nil {
		c.readFailed("list_users", err)
		return []User{}
	}
	var wire []wireUser
	if err := json.Unmarshal(body, &wire); err != nil {
		c.readFailed("list_users", err)
		return []User{}
	}
	users := make([]User, 0, len(wire))
	for _, w := range wire {
		users = append(users, w.normalize())
	}
	return users
}

// ListOrders fetches the confirmed orders.
func (c *Client) ListOrders(ctx context.Context) []Order {
	body, err := c.get(ctx, "/pedidos")
	if err != nil {
		c.readFailed("list_orders", err)
		return []Order{}
	}
	var wire []wireOrder
	if err := json.Unmarshal(body, &wire); err != nil {
		c.readFailed("list_orders", err)
		return []Order{}
	}
	orders := make([]Order, 0, len(wire))
	for _, w := range wire {
		orders = append(orders, w.normalize())
	}
	return orders
}

// SalesSummary fetches the backend-computed sales rows.
func (c *Client) SalesSummary(ctx context.Context) []SalesRow {
	body, err := c.get(ctx, "/ventas/resumen")
	if err != nil {
		c.readFailed("sales_summary", err)
		return []SalesRow{}
	}
	var wire []wireSalesRow
	if err := json.Unmarshal(body, &wire); err != nil {
		c.readFailed("sales_summary", err)
		return []SalesRow{}
	}
	rows := make([]SalesRow, 0, len(wire))
	for _, w := range wire {
		rows = append(rows, w.normalize())
	}
	return rows
}

func (c *Client) readFailed(op string, err error) {
	c.logger.Warn("Read degraded to empty collection", map[string]interface{}{
		"operation": op,
		"error":     err.Error(),
	})
}
