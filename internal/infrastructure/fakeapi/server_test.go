package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/stripegate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/stripegate/internal/shared/logger"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

const testKey = "sk_test_fake"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return New(testKey, logger.NewLogger(), WithStore(NewStore(func() time.Time { return clock })))
}

func do(t *testing.T, s *Server, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if method == http.MethodPost {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		if len(form) > 0 {
			path += "?" + form.Encode()
		}
		req = httptest.NewRequest(method, path, nil)
	}
	req.SetBasicAuth(testKey, "")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) stripe.Error {
	t.Helper()
	var envelope struct {
		Error stripe.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	return envelope.Error
}

func TestAuthenticate(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		setAuth func(*http.Request)
		message string
	}{
		{
			name:    "missing key",
			setAuth: func(*http.Request) {},
			message: "You did not provide an API key",
		},
		{
			name:    "wrong key",
			setAuth: func(r *http.Request) { r.SetBasicAuth("sk_test_wrongkey1234", "") },
			message: "Invalid API Key provided: sk_test_***1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/charges", nil)
			tt.setAuth(req)
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			apiErr := decodeError(t, w)
			assert.Equal(t, stripe.ErrorTypeInvalidRequest, apiErr.Type)
			assert.Contains(t, apiErr.Message, tt.message)
		})
	}
}

func TestCharges(t *testing.T) {
	s := newTestServer(t)

	t.Run("create", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/v1/charges", url.Values{
			"amount":          {"1000"},
			"currency":        {"usd"},
			"card":            {"tok_visa"},
			"metadata[order]": {"42"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		charge := decode[stripe.Charge](t, w)
		assert.True(t, strings.HasPrefix(charge.ID, "ch_"))
		assert.Equal(t, int64(1000), charge.Amount)
		assert.True(t, charge.Paid)
		assert.True(t, charge.Captured)
		assert.Equal(t, map[string]string{"order": "42"}, charge.Metadata)
		assert.Equal(t, int64(1709294400), charge.Created.Unix())
		assert.Equal(t, int64(59), charge.Fee)
		require.Len(t, charge.FeeDetails, 1)
		assert.Equal(t, "stripe_fee", charge.FeeDetails[0].Type)
		assert.Equal(t, charge.Fee, charge.FeeDetails[0].Amount)
	})

	t.Run("missing amount", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/v1/charges", url.Values{"currency": {"usd"}, "card": {"tok_visa"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, "amount", apiErr.Param)
	})

	t.Run("declined card", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/v1/charges", url.Values{
			"amount":   {"1000"},
			"currency": {"usd"},
			"card":     {DeclinedCardToken},
		})
		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, stripe.ErrorTypeCard, apiErr.Type)
		assert.Equal(t, stripe.ErrorCodeCardDeclined, apiErr.Code)
	})

	t.Run("unknown charge", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/v1/charges/ch_missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, stripe.ErrorCodeResourceMissing, apiErr.Code)
		assert.Equal(t, "No such charge: ch_missing", apiErr.Message)
	})

	t.Run("capture and refund", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/v1/charges", url.Values{
			"amount":   {"500"},
			"currency": {"usd"},
			"card":     {"tok_visa"},
			"capture":  {"false"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		charge := decode[stripe.Charge](t, w)
		assert.False(t, charge.Captured)

		w = do(t, s, http.MethodPost, "/v1/charges/"+charge.ID+"/capture", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[stripe.Charge](t, w).Captured)

		w = do(t, s, http.MethodPost, "/v1/charges/"+charge.ID+"/capture", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(t, s, http.MethodPost, "/v1/charges/"+charge.ID+"/refund", url.Values{"amount": {"200"}})
		require.Equal(t, http.StatusOK, w.Code)
		refunded := decode[stripe.Charge](t, w)
		assert.Equal(t, int64(200), refunded.AmountRefunded)
		assert.False(t, refunded.Refunded)
		require.Len(t, refunded.Refunds, 1)

		w = do(t, s, http.MethodPost, "/v1/charges/"+charge.ID+"/refund", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[stripe.Charge](t, w).Refunded)
	})

	t.Run("list with count", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/v1/charges", url.Values{"count": {"1"}})
		require.Equal(t, http.StatusOK, w.Code)

		list := decode[stripe.Collection[stripe.Charge]](t, w)
		assert.Equal(t, stripe.ObjectList, list.Object)
		assert.Equal(t, 2, list.Count)
		require.Len(t, list.Data, 1)
		assert.Equal(t, int64(500), list.Data[0].Amount)
	})
}

func TestCustomerLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/plans", url.Values{
		"id":       {"gold"},
		"amount":   {"2000"},
		"currency": {"usd"},
		"interval": {"month"},
		"name":     {"Gold"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodPost, "/v1/coupons", url.Values{
		"id":          {"HALF"},
		"duration":    {"once"},
		"percent_off": {"50"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodPost, "/v1/customers", url.Values{
		"email":           {"jane@example.com"},
		"card[number]":    {"4242424242424242"},
		"card[exp_month]": {"12"},
		"card[exp_year]":  {"2030"},
		"card[cvc]":       {"123"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	customer := decode[stripe.Customer](t, w)
	assert.True(t, strings.HasPrefix(customer.ID, "cus_"))
	require.NotNil(t, customer.Cards)
	require.Len(t, customer.Cards.Data, 1)
	assert.Equal(t, "4242", customer.Cards.Data[0].Last4)
	assert.Equal(t, customer.Cards.Data[0].ID, customer.DefaultCard)

	base := "/v1/customers/" + customer.ID

	w = do(t, s, http.MethodPost, base+"/subscription", url.Values{"plan": {"gold"}, "coupon": {"HALF"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sub := decode[stripe.Subscription](t, w)
	assert.Equal(t, stripe.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "gold", sub.Plan.ID)

	w = do(t, s, http.MethodGet, "/v1/invoices/upcoming", url.Values{"customer": {customer.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	upcoming := decode[stripe.Invoice](t, w)
	assert.Empty(t, upcoming.ID)
	assert.Equal(t, int64(2000), upcoming.Subtotal)
	assert.Equal(t, int64(1000), upcoming.Total)

	w = do(t, s, http.MethodPost, "/v1/invoices", url.Values{"customer": {customer.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	invoice := decode[stripe.Invoice](t, w)
	assert.False(t, invoice.Paid)

	w = do(t, s, http.MethodPost, "/v1/invoices/"+invoice.ID+"/pay", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paid := decode[stripe.Invoice](t, w)
	assert.True(t, paid.Paid)
	assert.True(t, strings.HasPrefix(paid.Charge, "ch_"))

	w = do(t, s, http.MethodDelete, base+"/discount", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[stripe.Reference](t, w).Deleted)

	w = do(t, s, http.MethodDelete, base+"/discount", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodDelete, base+"/subscription", url.Values{"at_period_end": {"true"}})
	require.Equal(t, http.StatusOK, w.Code)
	canceled := decode[stripe.Subscription](t, w)
	require.NotNil(t, canceled.CancelAtPeriodEnd)
	assert.True(t, *canceled.CancelAtPeriodEnd)
	assert.Equal(t, stripe.SubscriptionStatusActive, canceled.Status)

	w = do(t, s, http.MethodDelete, base+"/subscription", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, stripe.SubscriptionStatusCanceled, decode[stripe.Subscription](t, w).Status)

	w = do(t, s, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCards(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	customer := decode[stripe.Customer](t, w)
	base := "/v1/customers/" + customer.ID + "/cards"

	w = do(t, s, http.MethodPost, base, url.Values{
		"card[number]":    {"4242"},
		"card[exp_month]": {"12"},
		"card[exp_year]":  {"2030"},
	})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, stripe.ErrorCodeInvalidNumber, decodeError(t, w).Code)

	var ids []string
	for _, number := range []string{"4242424242424242", "5555555555554444"} {
		w = do(t, s, http.MethodPost, base, url.Values{
			"card[number]":    {number},
			"card[exp_month]": {"1"},
			"card[exp_year]":  {"2031"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		ids = append(ids, decode[stripe.Card](t, w).ID)
	}

	w = do(t, s, http.MethodGet, base+"/"+ids[1], nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MasterCard", decode[stripe.Card](t, w).Type)

	w = do(t, s, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[stripe.Collection[stripe.Card]](t, w)
	require.Len(t, list.Data, 2)
	assert.Equal(t, ids[1], list.Data[0].ID)

	w = do(t, s, http.MethodDelete, base+"/"+ids[0], nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, "/v1/customers/"+customer.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ids[1], decode[stripe.Customer](t, w).DefaultCard)
}

func TestCoupons(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		form      url.Values
		wantParam string
	}{
		{name: "no duration", form: url.Values{"percent_off": {"10"}}, wantParam: "duration"},
		{name: "repeating without months", form: url.Values{"duration": {"repeating"}, "percent_off": {"10"}}, wantParam: "duration_in_months"},
		{name: "no discount", form: url.Values{"duration": {"once"}}, wantParam: "percent_off"},
		{name: "amount without currency", form: url.Values{"duration": {"once"}, "amount_off": {"100"}}, wantParam: "currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/v1/coupons", tt.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantParam, decodeError(t, w).Param)
		})
	}

	w := do(t, s, http.MethodPost, "/v1/coupons", url.Values{"duration": {"forever"}, "amount_off": {"100"}, "currency": {"usd"}})
	require.Equal(t, http.StatusOK, w.Code)
	coupon := decode[stripe.Coupon](t, w)
	assert.Len(t, coupon.ID, 8)

	w = do(t, s, http.MethodDelete, "/v1/coupons/"+coupon.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, "/v1/coupons/"+coupon.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/v1/transfers", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeError(t, w).Message, "Unrecognized request URL")
}

func TestProcessingFee(t *testing.T) {
	tests := []struct {
		amount int64
		want   int64
	}{
		{amount: 50, want: 31},
		{amount: 1000, want: 59},
		{amount: 1017, want: 59},
		{amount: 100000, want: 2930},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, processingFee(tt.amount), "amount %d", tt.amount)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryRateLimiter(ratelimit.Config{Limit: 2, Window: time.Minute})
	s := New(testKey, logger.NewLogger(), WithRateLimiter(limiter))

	for i := 0; i < 2; i++ {
		w := do(t, s, http.MethodGet, "/v1/charges", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	assert.Equal(t, "0", do(t, s, http.MethodGet, "/v1/plans", nil).Header().Get("X-RateLimit-Remaining"))

	w := do(t, s, http.MethodGet, "/v1/customers", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	apiErr := decodeError(t, w)
	assert.Equal(t, stripe.ErrorTypeRateLimit, apiErr.Type)
	assert.Equal(t, stripe.ErrorCodeRateLimit, apiErr.Code)
}

func TestConcurrentReadsAndUpdates(t *testing.T) {
	s := newTestServer(t)

	charge := decode[stripe.Charge](t, do(t, s, http.MethodPost, "/v1/charges", url.Values{
		"amount": {"1000"}, "currency": {"usd"}, "card": {"tok_visa"}, "metadata[order]": {"42"},
	}))
	customer := decode[stripe.Customer](t, do(t, s, http.MethodPost, "/v1/customers", url.Values{
		"email": {"a@example.com"}, "metadata[tier]": {"gold"},
	}))
	plan := decode[stripe.Plan](t, do(t, s, http.MethodPost, "/v1/plans", url.Values{
		"id": {"gold"}, "amount": {"2000"}, "currency": {"usd"}, "interval": {"month"}, "name": {"Gold"},
	}))

	targets := []string{
		"/v1/charges/" + charge.ID,
		"/v1/customers/" + customer.ID,
		"/v1/plans/" + plan.ID,
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, path := range targets {
			wg.Add(2)
			go func(path string, i int) {
				defer wg.Done()
				w := do(t, s, http.MethodPost, path, url.Values{fmt.Sprintf("metadata[k%d]", i): {"v"}})
				assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
			}(path, i)
			go func(path string) {
				defer wg.Done()
				w := do(t, s, http.MethodGet, path, nil)
				assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
			}(path)
		}
	}
	wg.Wait()

	got := decode[stripe.Charge](t, do(t, s, http.MethodGet, "/v1/charges/"+charge.ID, nil))
	assert.Len(t, got.Metadata, 51)
	assert.Equal(t, "42", got.Metadata["order"])
}

func TestStore_ReturnedCopiesAreDetached(t *testing.T) {
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(func() time.Time { return clock })

	created, apiErr := store.CreateCharge(chargeInput{
		Amount:   500,
		Currency: "usd",
		Card:     "tok_visa",
		Metadata: map[string]string{"a": "1"},
	})
	require.Nil(t, apiErr)

	before, apiErr := store.GetCharge(created.ID)
	require.Nil(t, apiErr)

	_, apiErr = store.UpdateCharge(created.ID, "", map[string]string{"b": "2"})
	require.Nil(t, apiErr)

	assert.Equal(t, map[string]string{"a": "1"}, before.Metadata)
	after, _ := store.GetCharge(created.ID)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, after.Metadata)
}

func TestListOffsetPastEnd(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 3; i++ {
		w := do(t, s, http.MethodPost, "/v1/charges", url.Values{"amount": {"100"}, "currency": {"usd"}, "card": {"tok_visa"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := do(t, s, http.MethodGet, "/v1/charges", url.Values{"offset": {"9223372036854775807"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode[stripe.Collection[stripe.Charge]](t, w)
	assert.Equal(t, 3, list.Count)
	assert.Empty(t, list.Data)
}
