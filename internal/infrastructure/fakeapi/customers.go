package fakeapi

import (
	"net/http"
	"time"

	"github.com/orris-inc/stripegate/internal/shared/id"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

type customerInput struct {
	AccountBalance *int64
	Card           map[string]string
	Coupon         string
	DefaultCard    string
	Description    string
	Email          string
	Plan           string
	Quantity       *int
	TrialEnd       *time.Time
	Metadata       map[string]string
}

func (s *Store) CreateCustomer(in customerInput) (*stripe.Customer, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &customerRecord{
		customer: stripe.Customer{
			ID:          id.New(id.PrefixCustomer),
			Object:      stripe.ObjectCustomer,
			Created:     s.timestampPtr(),
			Description: in.Description,
			Email:       in.Email,
			Metadata:    in.Metadata,
		},
		cards: newTable[stripe.Card](),
	}
	if in.AccountBalance != nil {
		rec.customer.AccountBalance = *in.AccountBalance
	}
	if len(in.Card) > 0 {
		card, apiErr := cardFromParams(in.Card, rec.customer.ID)
		if apiErr != nil {
			return nil, apiErr
		}
		rec.cards.put(card.ID, card)
		rec.customer.DefaultCard = card.ID
	}
	if in.Plan != "" {
		sub, apiErr := s.subscribe(rec, subscriptionInput{Plan: in.Plan, Quantity: in.Quantity, TrialEnd: in.TrialEnd})
		if apiErr != nil {
			return nil, apiErr
		}
		rec.customer.Subscription = sub
	}
	if in.Coupon != "" {
		discount, apiErr := s.discount(rec.customer.ID, in.Coupon)
		if apiErr != nil {
			return nil, apiErr
		}
		rec.customer.Discount = discount
	}

	s.customers.put(rec.customer.ID, rec)
	out := rec.view()
	return &out, nil
}

// lookupCustomer returns the record for customerID. Callers hold s.mu.
func (s *Store) lookupCustomer(customerID string) (*customerRecord, *stripe.Error) {
	rec, ok := s.customers.get(customerID)
	if !ok {
		return nil, noSuch("customer", customerID, "id")
	}
	return rec, nil
}

func (s *Store) GetCustomer(customerID string) (*stripe.Customer, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, apiErr := s.lookupCustomer(customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	out := rec.view()
	return &out, nil
}

func (s *Store) UpdateCustomer(customerID string, in customerInput) (*stripe.Customer, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, apiErr := s.lookupCustomer(customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	c := &rec.customer
	if in.AccountBalance != nil {
		c.AccountBalance = *in.AccountBalance
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.Email != "" {
		c.Email = in.Email
	}
	if len(in.Metadata) > 0 {
		c.Metadata = mergeMetadata(c.Metadata, in.Metadata)
	}
	if len(in.Card) > 0 {
		card, apiErr := cardFromParams(in.Card, c.ID)
		if apiErr != nil {
			return nil, apiErr
		}
		rec.cards.put(card.ID, card)
		c.DefaultCard = card.ID
	}
	if in.DefaultCard != "" {
		if _, ok := rec.cards.get(in.DefaultCard); !ok {
			return nil, noSuch("card", in.DefaultCard, "default_card")
		}
		c.DefaultCard = in.DefaultCard
	}
	if in.Coupon != "" {
		discount, apiErr := s.discount(c.ID, in.Coupon)
		if apiErr != nil {
			return nil, apiErr
		}
		c.Discount = discount
	}
	out := rec.view()
	return &out, nil
}

func (s *Store) DeleteCustomer(customerID string) (*stripe.Reference, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.customers.remove(customerID) {
		return nil, noSuch("customer", customerID, "id")
	}
	return &stripe.Reference{ID: customerID, Object: stripe.ObjectCustomer, Deleted: true}, nil
}

func (s *Store) ListCustomers(created createdFilter) []stripe.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.customers.newest(func(rec *customerRecord) bool {
		return rec.customer.Created == nil || created.match(*rec.customer.Created)
	})
	out := make([]stripe.Customer, len(records))
	for i := range records {
		out[i] = records[i].view()
	}
	return out
}

// Cards

func (s *Store) CreateCard(customerID string, params map[string]string) (*stripe.Card, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, apiErr := s.lookupCustomer(customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	if len(params) == 0 {
		return nil, missingParam("card")
	}
	card, apiErr := cardFromParams(params, customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	rec.cards.put(card.ID, card)
	if rec.customer.DefaultCard == "" {
		rec.customer.DefaultCard = card.ID
	}
	out := *card
	return &out, nil
}

func (s *Store) GetCard(customerID, cardID string) (*stripe.Card, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, apiErr := s.lookupCustomer(customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	card, ok := rec.cards.get(cardID)
	if !ok {
		return nil, noSuch("card", cardID, "id")
	}
	out := *card
	return &out, nil
}

// DeleteCard removes a card. When it was the default, the most recently
// added remaining card takes its place.
func (s *Store) DeleteCard(customerID, cardID string) (*stripe.Reference, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, apiErr := s.lookupCustomer(customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	if !rec.cards.remove(cardID) {
		return nil, noSuch("card", cardID, "id")
	}
	if rec.customer.DefaultCard == cardID {
		rec.customer.DefaultCard = ""
		if rest := rec.cards.newest(nil); len(rest) > 0 {
			rec.customer.DefaultCard = rest[0].ID
		}
	}
	return &stripe.Reference{ID: cardID, Object: stripe.ObjectCard, Deleted: true}, nil
}

func (s *Store) ListCards(customerID string) ([]stripe.Card, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, apiErr := s.lookupCustomer(customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	return rec.cards.newest(nil), nil
}

// Subscriptions

type subscriptionInput struct {
	Plan     string
	Coupon   string
	Prorate  *bool
	TrialEnd *time.Time
	Card     string
	Quantity *int
}

// subscribe builds a subscription for rec. Callers hold s.mu.
func (s *Store) subscribe(rec *customerRecord, in subscriptionInput) (*stripe.Subscription, *stripe.Error) {
	plan, ok := s.plans.get(in.Plan)
	if !ok {
		return nil, noSuch("plan", in.Plan, "plan")
	}

	now := s.now().UTC()
	quantity := 1
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, invalidParam("quantity", "Quantity must be at least 1")
		}
		quantity = *in.Quantity
	}

	planCopy := *plan
	sub := &stripe.Subscription{
		ID:       id.New(id.PrefixSubscription),
		Object:   stripe.ObjectSubscription,
		Status:   stripe.SubscriptionStatusActive,
		Plan:     &planCopy,
		Customer: rec.customer.ID,
		Quantity: quantity,
		Start:    s.timestampPtr(),
	}

	periodStart := now
	switch {
	case in.TrialEnd != nil:
		sub.Status = stripe.SubscriptionStatusTrialing
		sub.TrialStart = s.timestampPtr()
		trialEnd := stripe.NewTimestamp(*in.TrialEnd)
		sub.TrialEnd = &trialEnd
	case plan.TrialPeriodDays != nil && *plan.TrialPeriodDays > 0:
		sub.Status = stripe.SubscriptionStatusTrialing
		sub.TrialStart = s.timestampPtr()
		trialEnd := stripe.NewTimestamp(now.AddDate(0, 0, *plan.TrialPeriodDays))
		sub.TrialEnd = &trialEnd
	}
	if sub.TrialEnd != nil {
		periodStart = sub.TrialEnd.Time
	}
	start := stripe.NewTimestamp(periodStart)
	end := stripe.NewTimestamp(periodEnd(periodStart, plan.Interval, plan.IntervalCount))
	sub.CurrentPeriodStart = &start
	sub.CurrentPeriodEnd = &end
	return sub, nil
}

// SubscribeCustomer creates or replaces the customer's subscription.
func (s *Store) SubscribeCustomer(customerID string, in subscriptionInput) (*stripe.Subscription, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, apiErr := s.lookupCustomer(customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	if in.Card != "" {
		card := cardFromToken(in.Card)
		card.Customer = customerID
		rec.cards.put(card.ID, card)
		rec.customer.DefaultCard = card.ID
	}
	sub, apiErr := s.subscribe(rec, in)
	if apiErr != nil {
		return nil, apiErr
	}
	if in.Coupon != "" {
		discount, apiErr := s.discount(customerID, in.Coupon)
		if apiErr != nil {
			return nil, apiErr
		}
		rec.customer.Discount = discount
	}
	rec.customer.Subscription = sub
	out := *sub
	return &out, nil
}

// CancelSubscription ends the subscription now, or flags it to end with
// the current period when atPeriodEnd is set.
func (s *Store) CancelSubscription(customerID string, atPeriodEnd bool) (*stripe.Subscription, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, apiErr := s.lookupCustomer(customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	sub := rec.customer.Subscription
	if sub == nil {
		return nil, &stripe.Error{
			Type:           stripe.ErrorTypeInvalidRequest,
			Message:        "Customer " + customerID + " does not have a subscription",
			Code:           stripe.ErrorCodeResourceMissing,
			HTTPStatusCode: http.StatusNotFound,
		}
	}

	// Earlier responses may still reference the stored subscription.
	updated := *sub
	updated.CanceledAt = s.timestampPtr()
	if atPeriodEnd {
		flag := true
		updated.CancelAtPeriodEnd = &flag
		rec.customer.Subscription = &updated
	} else {
		updated.Status = stripe.SubscriptionStatusCanceled
		updated.EndedAt = s.timestampPtr()
		rec.customer.Subscription = nil
	}
	out := updated
	return &out, nil
}

// Discounts

// discount applies coupon couponID for customerID. Callers hold s.mu.
func (s *Store) discount(customerID, couponID string) (*stripe.Discount, *stripe.Error) {
	coupon, ok := s.coupons.get(couponID)
	if !ok {
		return nil, noSuch("coupon", couponID, "coupon")
	}
	if coupon.RedeemBy != nil && s.now().After(coupon.RedeemBy.Time) {
		return nil, invalidParam("coupon", "Coupon expired: %s", couponID)
	}
	if coupon.MaxRedemptions != nil && coupon.TimesRedeemed >= *coupon.MaxRedemptions {
		return nil, invalidParam("coupon", "Coupon %s has been redeemed the maximum number of times", couponID)
	}
	coupon.TimesRedeemed++

	couponCopy := *coupon
	d := &stripe.Discount{
		ID:       id.New(id.PrefixDiscount),
		Object:   stripe.ObjectDiscount,
		Customer: customerID,
		Coupon:   &couponCopy,
		Start:    s.timestampPtr(),
	}
	if coupon.Duration == stripe.CouponDurationRepeating && coupon.DurationInMonths != nil {
		end := stripe.NewTimestamp(s.now().UTC().AddDate(0, *coupon.DurationInMonths, 0))
		d.End = &end
	}
	return d, nil
}

func (s *Store) DeleteDiscount(customerID string) (*stripe.Reference, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, apiErr := s.lookupCustomer(customerID)
	if apiErr != nil {
		return nil, apiErr
	}
	d := rec.customer.Discount
	if d == nil {
		return nil, &stripe.Error{
			Type:           stripe.ErrorTypeInvalidRequest,
			Message:        "Customer " + customerID + " does not have a discount",
			Code:           stripe.ErrorCodeResourceMissing,
			HTTPStatusCode: http.StatusNotFound,
		}
	}
	rec.customer.Discount = nil
	return &stripe.Reference{ID: d.ID, Object: stripe.ObjectDiscount, Deleted: true}, nil
}
