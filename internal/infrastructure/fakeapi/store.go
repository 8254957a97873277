package fakeapi

import (
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/orris-inc/stripegate/internal/shared/id"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

// table keeps objects by ID and remembers insertion order.
type table[T any] struct {
	items map[string]*T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{items: make(map[string]*T)}
}

func (t *table[T]) get(id string) (*T, bool) {
	v, ok := t.items[id]
	return v, ok
}

func (t *table[T]) put(id string, v *T) {
	if _, ok := t.items[id]; !ok {
		t.order = append(t.order, id)
	}
	t.items[id] = v
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.items[id]; !ok {
		return false
	}
	delete(t.items, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// newest returns copies of the objects accepted by keep, most recent first.
func (t *table[T]) newest(keep func(*T) bool) []T {
	out := make([]T, 0, len(t.order))
	for i := len(t.order) - 1; i >= 0; i-- {
		v := t.items[t.order[i]]
		if keep == nil || keep(v) {
			out = append(out, *v)
		}
	}
	return out
}

// customerRecord is a customer plus the objects hanging off it.
type customerRecord struct {
	customer stripe.Customer
	cards    *table[stripe.Card]
}

// Store is the in-memory state of the fake API. All methods are safe for
// concurrent use.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	charges   *table[stripe.Charge]
	customers *table[customerRecord]
	plans     *table[stripe.Plan]
	coupons   *table[stripe.Coupon]
	invoices  *table[stripe.Invoice]
}

// NewStore creates an empty store using now as its clock.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:       now,
		charges:   newTable[stripe.Charge](),
		customers: newTable[customerRecord](),
		plans:     newTable[stripe.Plan](),
		coupons:   newTable[stripe.Coupon](),
		invoices:  newTable[stripe.Invoice](),
	}
}

func (s *Store) timestamp() stripe.Timestamp {
	return stripe.NewTimestamp(s.now().UTC())
}

func (s *Store) timestampPtr() *stripe.Timestamp {
	ts := s.timestamp()
	return &ts
}

// view assembles the customer as the API returns it.
func (r *customerRecord) view() stripe.Customer {
	c := r.customer
	cards := r.cards.newest(nil)
	c.Cards = &stripe.Collection[stripe.Card]{
		Object: stripe.ObjectList,
		URL:    fmt.Sprintf("/v1/customers/%s/cards", c.ID),
		Count:  len(cards),
		Data:   cards,
	}
	return c
}

// cardFromParams validates p and turns it into a stored card. The number
// is reduced to its last four digits.
func cardFromParams(p map[string]string, customerID string) (*stripe.Card, *stripe.Error) {
	number := strings.ReplaceAll(p["number"], " ", "")
	if number == "" {
		return nil, missingParam("card[number]")
	}
	if len(number) < 13 || len(number) > 19 || strings.Trim(number, "0123456789") != "" {
		return nil, cardError(stripe.ErrorCodeInvalidNumber, "number", "Your card number is incorrect.")
	}
	var month, year int
	if _, err := fmt.Sscan(p["exp_month"], &month); err != nil || month < 1 || month > 12 {
		return nil, cardError(stripe.ErrorCodeInvalidExpiryMonth, "exp_month", "Your card's expiration month is invalid.")
	}
	if _, err := fmt.Sscan(p["exp_year"], &year); err != nil || year < 1970 {
		return nil, cardError(stripe.ErrorCodeInvalidExpiryYear, "exp_year", "Your card's expiration year is invalid.")
	}

	card := &stripe.Card{
		ID:             id.New(id.PrefixCard),
		Object:         stripe.ObjectCard,
		Last4:          number[len(number)-4:],
		Type:           brand(number),
		ExpMonth:       month,
		ExpYear:        year,
		Name:           p["name"],
		AddressLine1:   p["address_line1"],
		AddressLine2:   p["address_line2"],
		AddressCity:    p["address_city"],
		AddressState:   p["address_state"],
		AddressZip:     p["address_zip"],
		AddressCountry: p["address_country"],
		Customer:       customerID,
	}
	if p["cvc"] != "" {
		check := stripe.CVCCheckPass
		card.CVCCheck = &check
	}
	return card, nil
}

func brand(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "Visa"
	case strings.HasPrefix(number, "5"):
		return "MasterCard"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "American Express"
	case strings.HasPrefix(number, "6"):
		return "Discover"
	default:
		return "Unknown"
	}
}

// cardFromToken stands in for a card token such as tok_visa.
func cardFromToken(token string) *stripe.Card {
	return &stripe.Card{
		ID:          id.New(id.PrefixCard),
		Object:      stripe.ObjectCard,
		Last4:       "4242",
		Type:        "Visa",
		ExpMonth:    12,
		ExpYear:     time.Now().Year() + 1,
		Fingerprint: token,
	}
}

// periodEnd advances start by count intervals.
func periodEnd(start time.Time, interval stripe.PlanInterval, count int) time.Time {
	if count < 1 {
		count = 1
	}
	switch interval {
	case stripe.PlanIntervalDay:
		return start.AddDate(0, 0, count)
	case stripe.PlanIntervalWeek:
		return start.AddDate(0, 0, 7*count)
	case stripe.PlanIntervalYear:
		return start.AddDate(count, 0, 0)
	default:
		return start.AddDate(0, count, 0)
	}
}

// mergeMetadata returns a new map holding base overlaid with updates.
// Stored maps are replaced, never written, since responses encoded outside
// s.mu may still be reading them.
func mergeMetadata(base, updates map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(updates))
	maps.Copy(merged, base)
	maps.Copy(merged, updates)
	return merged
}
