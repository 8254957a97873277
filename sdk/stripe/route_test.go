package stripe

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 30)

	seen := make(map[string]bool)
	for _, req := range catalog {
		route := req.Route()
		assert.Contains(t, []string{http.MethodGet, http.MethodPost, http.MethodDelete}, route.Method, route.String())
		assert.False(t, seen[route.String()], "duplicate route %s", route)
		seen[route.String()] = true
	}
}

func TestRouteVerbs(t *testing.T) {
	tests := []struct {
		req  Routable
		want string
	}{
		{CreateCharge{}, "POST /charges"},
		{GetCharge{}, "GET /charges/{charge_id}"},
		{RefundCharge{}, "POST /charges/{charge_id}/refund"},
		{ListCharges{}, "GET /charges"},
		{DeleteCustomer{}, "DELETE /customers/{id}"},
		{GetCard{}, "GET /customers/{customer_id}/cards/{card_id}"},
		{CancelSubscription{}, "DELETE /customers/{customer_id}/subscription"},
		{DeleteDiscount{}, "DELETE /customers/{customer_id}/discount"},
		{PayInvoice{}, "POST /invoices/{id}/pay"},
		{GetUpcomingInvoice{}, "GET /invoices/upcoming"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Route().String())
		})
	}
}

func TestResolvePath(t *testing.T) {
	t.Run("single parameter", func(t *testing.T) {
		path, err := resolvePath("/charges/{charge_id}/refund", RefundCharge{ChargeID: "ch_1"})
		require.NoError(t, err)
		assert.Equal(t, "/charges/ch_1/refund", path)
	})

	t.Run("two parameters", func(t *testing.T) {
		path, err := resolvePath(GetCard{}.Route().Path, &GetCard{CustomerID: "cus_1", CardID: "card_2"})
		require.NoError(t, err)
		assert.Equal(t, "/customers/cus_1/cards/card_2", path)
	})

	t.Run("values are escaped", func(t *testing.T) {
		path, err := resolvePath("/plans/{id}", GetPlan{ID: "gold/annual plan"})
		require.NoError(t, err)
		assert.Equal(t, "/plans/gold%2Fannual%20plan", path)
	})

	t.Run("no parameters", func(t *testing.T) {
		path, err := resolvePath("/invoices/upcoming", GetUpcomingInvoice{Customer: "cus_1"})
		require.NoError(t, err)
		assert.Equal(t, "/invoices/upcoming", path)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := resolvePath("/charges/{charge_id}", GetCharge{})
		assert.ErrorIs(t, err, ErrMissingPathParam)
	})

	t.Run("malformed template", func(t *testing.T) {
		_, err := resolvePath("/charges/{charge_id", GetCharge{ChargeID: "ch_1"})
		assert.ErrorContains(t, err, "malformed route")
	})
}

func TestSendsBody(t *testing.T) {
	assert.True(t, sendsBody(http.MethodPost))
	assert.True(t, sendsBody(http.MethodPut))
	assert.False(t, sendsBody(http.MethodGet))
	assert.False(t, sendsBody(http.MethodDelete))
}
