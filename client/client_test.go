package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comanda-io/comanda/core"
)

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, StaticToken(token), nil)
}

func TestAuthenticateSuccess(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login must not send an auth header")
		w.Write([]byte(`{"token":"tok-1","rol":"mesero"}`))
	}), "")

	token, role, err := c.Authenticate(context.Background(), Credentials{Password: "x", Role: "mesero"})

	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, core.RoleWaiter, role)
}

func TestAuthenticateRejectionReturnsEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}), "")

	token, role, err := c.Authenticate(context.Background(), Credentials{Password: "bad", Role: "mesero"})

	require.NoError(t, err, "invalid credentials are not an error, just an empty result")
	assert.Empty(t, token)
	assert.Empty(t, string(role))
}

func TestReadsAttachBearerToken(t *testing.T) {
	var got string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}), "tok-9")

	c.ListProducts(context.Background())

	assert.Equal(t, "Bearer tok-9", got)
}

func TestReadsDegradeToEmptyOnServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}), "tok")

	assert.Empty(t, c.ListProducts(context.Background()))
	assert.Empty(t, c.ListUsers(context.Background()))
	assert.Empty(t, c.ListOrders(context.Background()))
	assert.Empty(t, c.SalesSummary(context.Background()))
}

func TestReadsDegradeToEmptyOnGarbageBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}), "tok")

	assert.Empty(t, c.ListOrders(context.Background()))
}

func TestListProductsNormalizes(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"p1","nombre":"Tacos","precio":9.5},{"id":"p2","nombre":"Agua","precio":1.5}]`))
	}), "tok")

	products := c.ListProducts(context.Background())

	require.Len(t, products, 2)
	assert.Equal(t, Product{ID: "p1", Name: "Tacos", Price: 9.5}, products[0])
	assert.Equal(t, Product{ID: "p2", Name: "Agua", Price: 1.5}, products[1])
}

func TestSalesSummaryToleratesQuantityTypo(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"nombreMesero":"Ana","nombreProducto":"Tacos","cantidadVendidad":7,"totalRecaudado":66.5},
			{"nombreMesero":"Luis","nombreProducto":"Agua","cantidadVendida":3,"totalRecaudado":4.5}
		]`))
	}), "tok")

	rows := c.SalesSummary(context.Background())

	require.Len(t, rows, 2)
	assert.Equal(t, 7.0, rows[0].QuantitySold, "misspelled field must still resolve")
	assert.Equal(t, 3.0, rows[1].QuantitySold)
}

func TestCreateOrderRequiresToken(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}), "")

	_, err := c.CreateOrder(context.Background(), OrderRequest{Table: 1})

	require.ErrorIs(t, err, core.ErrNotAuthenticated)
	assert.False(t, called, "no token means no network call")
}

func TestCreateOrderSendsWirePayload(t *testing.T) {
	var body []byte
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/pedidos", r.URL.Path)
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"mensaje":"Pedido creado"}`))
	}), "tok")

	payload, err := c.CreateOrder(context.Background(), OrderRequest{
		Table: 4,
		Items: []OrderItemRequest{{ProductID: "p1", Quantity: 2}},
		Total: 19,
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"mesa":4,"productos":[{"productoId":"p1","cantidad":2}],"total":19}`, string(body))
	assert.Equal(t, "Pedido creado", payload["mensaje"])
}

func TestCreateOrderErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		contentType string
		wantMessage string
	}{
		{"json mensaje", 400, `{"mensaje":"Mesa ocupada"}`, "application/json", "Mesa ocupada"},
		{"json without mensaje", 400, `{"detalle":"algo"}`, "application/json", `{"detalle":"algo"}`},
		{"plain text", 500, "base de datos caída", "text/plain", "base de datos caída"},
		{"empty body", 502, "", "", "Status 502 Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}), "tok")

			_, err := c.CreateOrder(context.Background(), OrderRequest{Table: 1})

			require.Error(t, err)
			var clientErr *core.ClientError
			require.ErrorAs(t, err, &clientErr)
			assert.Equal(t, tt.wantMessage, clientErr.Message)
			assert.ErrorIs(t, err, core.ErrRequestFailed)
		})
	}
}

func TestUpdateOrderStatusSendsEstado(t *testing.T) {
	var path string
	var body []byte
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"mensaje":"actualizado"}`))
	}), "tok")

	_, err := c.UpdateOrderStatus(context.Background(), "o42", StatusReady)

	require.NoError(t, err)
	assert.Equal(t, "/pedidos/o42/estado", path)
	assert.JSONEq(t, `{"estado":"listo"}`, string(body))
}

func TestUpdateUserValidatesBeforeDispatch(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}), "tok")

	err := c.UpdateUser(context.Background(), "u1", UserPatch{Role: "superuser"})

	require.Error(t, err)
	assert.False(t, called, "invalid patch must never reach the network")
}

func TestUpdateProductPatchPayload(t *testing.T) {
	var body []byte
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/productos/p1", r.URL.Path)
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}), "tok")

	err := c.UpdateProduct(context.Background(), "p1", ProductPatch{Name: "Tacos al pastor", Price: 11})

	require.NoError(t, err)
	assert.JSONEq(t, `{"nombre":"Tacos al pastor","precio":11}`, string(body))
}

func TestDeleteUserFailureIsReturnedNotPanicked(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"mensaje":"no existe"}`, http.StatusNotFound)
	}), "tok")

	err := c.DeleteUser(context.Background(), "u9")

	require.Error(t, err)
	var clientErr *core.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, "no existe", clientErr.Message)
}
