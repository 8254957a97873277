package stripe

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeQuery(t *testing.T, e Encoding, req any) url.Values {
	t.Helper()
	encoded, err := e.Encode(req)
	require.NoError(t, err)
	values, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	return values
}

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Amount", "amount"},
		{"ApplicationFee", "application_fee"},
		{"CustomerID", "customer_id"},
		{"ID", "id"},
		{"AddressLine1", "address_line1"},
		{"AddressLine1Check", "address_line1_check"},
		{"CVCCheck", "cvc_check"},
		{"CVC", "cvc"},
		{"Last4", "last4"},
		{"DurationInMonths", "duration_in_months"},
		{"ApplicationFeePercent", "application_fee_percent"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.in))
		})
	}
}

func TestEncoding_Values(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  any
		want url.Values
	}{
		{
			name: "scalars and metadata",
			req: CreateCharge{
				Amount:   1000,
				Currency: "usd",
				Card:     "tok_visa",
				Metadata: map[string]string{"order": "42", "cart": "7"},
			},
			want: url.Values{
				"amount":          {"1000"},
				"currency":        {"usd"},
				"card":            {"tok_visa"},
				"metadata[cart]":  {"7"},
				"metadata[order]": {"42"},
			},
		},
		{
			name: "explicit false and zero pointers are sent",
			req:  CreateCharge{Amount: 500, Capture: boolPtr(false), ApplicationFee: int64Ptr(0)},
			want: url.Values{
				"amount":          {"500"},
				"capture":         {"false"},
				"application_fee": {"0"},
			},
		},
		{
			name: "path fields are not encoded",
			req:  GetCharge{ChargeID: "ch_123"},
			want: url.Values{},
		},
		{
			name: "nested card",
			req: CreateCustomer{
				Email: "jane@example.com",
				Card:  &CardParams{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, AddressLine1: "1 Main St"},
			},
			want: url.Values{
				"email":               {"jane@example.com"},
				"card[number]":        {"4242424242424242"},
				"card[exp_month]":     {"12"},
				"card[exp_year]":      {"2030"},
				"card[address_line1]": {"1 Main St"},
			},
		},
		{
			name: "embedded list params and date range",
			req: ListCharges{
				ListParams: ListParams{Count: intPtr(3), Offset: intPtr(0)},
				Created:    &DateRange{Gt: &created},
				Customer:   "cus_1",
			},
			want: url.Values{
				"count":       {"3"},
				"offset":      {"0"},
				"created[gt]": {"1709294400"},
				"customer":    {"cus_1"},
			},
		},
		{
			name: "false bool is omitted",
			req:  CancelSubscription{CustomerID: "cus_1"},
			want: url.Values{},
		},
		{
			name: "true bool is sent",
			req:  CancelSubscription{CustomerID: "cus_1", AtPeriodEnd: true},
			want: url.Values{"at_period_end": {"true"}},
		},
		{
			name: "timestamp pointer",
			req:  CreateCoupon{Duration: CouponDurationOnce, PercentOff: intPtr(25), RedeemBy: &created},
			want: url.Values{
				"duration":    {"once"},
				"percent_off": {"25"},
				"redeem_by":   {"1709294400"},
			},
		},
		{
			name: "form tags and slices",
			req: struct {
				Renamed string `form:"custom"`
				Skipped string `form:"-"`
				Items   []string
				Stamp   Timestamp
			}{Renamed: "a", Skipped: "b", Items: []string{"x", "y"}, Stamp: Unix(60)},
			want: url.Values{
				"custom":   {"a"},
				"items[0]": {"x"},
				"items[1]": {"y"},
				"stamp":    {"60"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodeQuery(t, DefaultEncoding(), tt.req))
		})
	}
}

func TestEncoding_MapKeysSorted(t *testing.T) {
	encoded, err := DefaultEncoding().Encode(UpdateCharge{
		ChargeID: "ch_1",
		Metadata: map[string]string{"zeta": "1", "alpha": "2", "mid": "3"},
	})
	require.NoError(t, err)

	alpha := strings.Index(encoded, "alpha")
	mid := strings.Index(encoded, "mid")
	zeta := strings.Index(encoded, "zeta")
	assert.True(t, alpha < mid && mid < zeta, encoded)
}

func TestEncoding_Custom(t *testing.T) {
	e := Encoding{
		FieldName:  strings.ToUpper,
		FormatTime: func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	}
	trial := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	got := encodeQuery(t, e, SubscribeCustomer{CustomerID: "cus_1", Plan: "gold", TrialEnd: &trial})
	assert.Equal(t, url.Values{
		"PLAN":     {"gold"},
		"TRIALEND": {"2024-03-01T12:00:00Z"},
	}, got)

	// The zero Encoding falls back to the defaults.
	got = encodeQuery(t, Encoding{}, SubscribeCustomer{CustomerID: "cus_1", Plan: "gold", TrialEnd: &trial})
	assert.Equal(t, url.Values{
		"plan":      {"gold"},
		"trial_end": {"1709294400"},
	}, got)
}

func TestEncoding_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  any
	}{
		{name: "not a struct", req: "amount=1"},
		{name: "channel field", req: struct{ Events chan int }{Events: make(chan int)}},
		{name: "non-string map key", req: struct{ Meta map[int]string }{Meta: map[int]string{1: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultEncoding().Encode(tt.req)
			assert.ErrorIs(t, err, ErrUnsupportedField)
		})
	}
}

func TestEncoding_NilPointerRequest(t *testing.T) {
	var req *CreateCharge
	encoded, err := DefaultEncoding().Encode(req)
	require.NoError(t, err)
	assert.Empty(t, encoded)
}
