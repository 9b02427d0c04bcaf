package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comanda-io/comanda/client"
	"github.com/comanda-io/comanda/core"
)

// scriptedPrompter replays canned answers.
type scriptedPrompter struct {
	answers  []string
	confirms []bool
}

func (p *scriptedPrompter) Ask(prompt string) (string, error) {
	if len(p.answers) == 0 {
		return "", nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Confirm(prompt string) (bool, error) {
	if len(p.confirms) == 0 {
		return false, nil
	}
	c := p.confirms[0]
	p.confirms = p.confirms[1:]
	return c, nil
}

type fakeKitchenGateway struct {
	orders       [][]client.Order
	products     []client.Product
	listCalls    int
	updateCalls  []string
	updateErr    error
	updateResult map[string]interface{}
}

func (f *fakeKitchenGateway) ListOrders(ctx context.Context) []client.Order {
	f.listCalls++
	if len(f.orders) == 0 {
		return []client.Order{}
	}
	batch := f.orders[0]
	if len(f.orders) > 1 {
		f.orders = f.orders[1:]
	}
	return batch
}

func (f *fakeKitchenGateway) ListProducts(ctx context.Context) []client.Product {
	return f.products
}

func (f *fakeKitchenGateway) UpdateOrderStatus(ctx context.Context, orderID string, status client.Status) (map[string]interface{}, error) {
	f.updateCalls = append(f.updateCalls, orderID+":"+string(status))
	return f.updateResult, f.updateErr
}

func someOrders() []client.Order {
	return []client.Order{
		{ID: "o1", Table: 1, Status: client.StatusPending},
		{ID: "o2", Table: 2, Status: client.StatusReady},
		{ID: "o3", Table: 3, Status: client.StatusInPreparation},
	}
}

func TestDerivedFiltersArePure(t *testing.T) {
	orders := someOrders()

	pending := PendingOrders(orders)
	ready := ReadyOrders(orders)

	require.Len(t, pending, 2)
	require.Len(t, ready, 1)
	assert.Equal(t, "o2", ready[0].ID)
	// Filtering never mutates the authoritative list.
	assert.Len(t, orders, 3)
}

func TestMarkReadyDeclinedMakesNoCall(t *testing.T) {
	gw := &fakeKitchenGateway{orders: [][]client.Order{someOrders()}}
	v := NewKitchenView(gw, &scriptedPrompter{confirms: []bool{false}}, nil, &bytes.Buffer{})
	v.Refresh(context.Background())

	require.NoError(t, v.MarkReady(context.Background(), "o1"))

	assert.Empty(t, gw.updateCalls)
}

func TestMarkReadyConfirmedRefreshesFromBackend(t *testing.T) {
	after := []client.Order{
		{ID: "o1", Table: 1, Status: client.StatusReady},
	}
	gw := &fakeKitchenGateway{
		orders:       [][]client.Order{someOrders(), after},
		updateResult: map[string]interface{}{"mensaje": "actualizado"},
	}
	v := NewKitchenView(gw, &scriptedPrompter{confirms: []bool{true}}, nil, &bytes.Buffer{})
	v.Refresh(context.Background())

	require.NoError(t, v.MarkReady(context.Background(), "o1"))

	require.Equal(t, []string{"o1:listo"}, gw.updateCalls)
	// The view shows a fresh read, not an optimistic local mutation.
	assert.Equal(t, after, v.orders)
}

func TestMarkReadyFailureKeepsPriorList(t *testing.T) {
	gw := &fakeKitchenGateway{
		orders:    [][]client.Order{someOrders()},
		updateErr: &core.ClientError{Op: "client.UpdateOrderStatus", Message: "estado inválido", Err: core.ErrRequestFailed},
	}
	out := &bytes.Buffer{}
	v := NewKitchenView(gw, &scriptedPrompter{confirms: []bool{true}}, nil, out)
	v.Refresh(context.Background())
	before := v.orders

	err := v.MarkReady(context.Background(), "o1")

	require.Error(t, err)
	assert.Equal(t, before, v.orders, "failed write leaves the displayed list unchanged")
	assert.Contains(t, out.String(), "estado inválido", "raw error message surfaces to the user")
}

func TestRenderResolvesProductNames(t *testing.T) {
	gw := &fakeKitchenGateway{
		orders: [][]client.Order{{
			{ID: "o1", Table: 1, Status: client.StatusPending, Items: []client.OrderItem{
				{ProductID: "p1", Quantity: 2},
				{ProductID: "missing", Quantity: 1},
			}},
		}},
		products: []client.Product{{ID: "p1", Name: "Tacos", Price: 9}},
	}
	out := &bytes.Buffer{}
	v := NewKitchenView(gw, &scriptedPrompter{}, nil, out)
	v.Refresh(context.Background())

	v.Render()

	assert.Contains(t, out.String(), "2x Tacos")
	assert.Contains(t, out.String(), "Producto desconocido")
}
