package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/comanda-io/comanda/core"
)

// CreateOrder posts a draft order. It fails fast without touching the
// network when no token is present. On success it returns the raw payload
// without validating its shape; run it through InterpretCreateResponse to
// get a tagged result. Invoked at most once per user action — never retried.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (map[string]interface{}, error) {
	const op = "client.CreateOrder"
	if err := c.requireToken(ctx, op); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, op, http.MethodPost, "/pedidos", req)
	if err != nil {
		return nil, err
	}

	var payload map[string]interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			c.logger.Warn("Create order response is not a JSON object", map[string]interface{}{
				"operation": "create_order",
				"error":     err.Error(),
			})
			return nil, nil
		}
	}
	return payload, nil
}

// UpdateOrderStatus moves an order to a new status. Same failure discipline
// as CreateOrder.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status Status) (map[string]interface{}, error) {
	const op = "client.UpdateOrderStatus"
	if err := c.requireToken(ctx, op); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, op, http.MethodPut, "/pedidos/"+orderID+"/estado", map[string]string{
		"estado": string(status),
	})
	if err != nil {
		return nil, err
	}

	var payload map[string]interface{}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &payload)
	}
	return payload, nil
}

// Administrative mutations. The admin view re-fetches the full list after
// each of these regardless of outcome, so failures are logged and returned
// but nothing is raised past the initiating action.

// UpdateUser applies a validated patch to a user.
func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch) error {
	const op = "client.UpdateUser"
	if err := patch.Validate(); err != nil {
		return core.NewClientError(op, "validation", err)
	}
	_, err := c.send(ctx, op, http.MethodPut, "/usuarios/"+id, patch.payload())
	return err
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.send(ctx, "client.DeleteUser", http.MethodDelete, "/usuarios/"+id, nil)
	return err
}

// UpdateProduct applies a validated patch to a product.
func (c *Client) UpdateProduct(ctx context.Context, id string, patch ProductPatch) error {
	const op = "client.UpdateProduct"
	if err := patch.Validate(); err != nil {
		return core.NewClientError(op, "validation", err)
	}
	_, err := c.send(ctx, op, http.MethodPut, "/productos/"+id, patch.payload())
	return err
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.send(ctx, "client.DeleteProduct", http.MethodDelete, "/productos/"+id, nil)
	return err
}
