package fakeapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/orris-inc/stripegate/internal/shared/id"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

// Plans

func (s *Store) CreatePlan(p stripe.Plan) (*stripe.Plan, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans.get(p.ID); exists {
		return nil, invalidParam("id", "Plan already exists.")
	}
	switch p.Interval {
	case stripe.PlanIntervalDay, stripe.PlanIntervalWeek, stripe.PlanIntervalMonth, stripe.PlanIntervalYear:
	default:
		return nil, invalidParam("interval", "Invalid interval: must be one of day, week, month or year")
	}
	if p.Amount < 0 {
		return nil, invalidParam("amount", "Invalid amount: must be at least 0")
	}
	if p.IntervalCount == 0 {
		p.IntervalCount = 1
	}
	p.Object = stripe.ObjectPlan
	s.plans.put(p.ID, &p)
	out := p
	return &out, nil
}

func (s *Store) GetPlan(planID string) (*stripe.Plan, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans.get(planID)
	if !ok {
		return nil, noSuch("plan", planID, "id")
	}
	out := *p
	return &out, nil
}

func (s *Store) UpdatePlan(planID, name string, metadata map[string]string) (*stripe.Plan, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans.get(planID)
	if !ok {
		return nil, noSuch("plan", planID, "id")
	}
	if name != "" {
		p.Name = name
	}
	if len(metadata) > 0 {
		p.Metadata = mergeMetadata(p.Metadata, metadata)
	}
	out := *p
	return &out, nil
}

func (s *Store) DeletePlan(planID string) (*stripe.Reference, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.plans.remove(planID) {
		return nil, noSuch("plan", planID, "id")
	}
	return &stripe.Reference{ID: planID, Object: stripe.ObjectPlan, Deleted: true}, nil
}

func (s *Store) ListPlans() []stripe.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.plans.newest(nil)
}

// Coupons

func (s *Store) CreateCoupon(c stripe.Coupon) (*stripe.Coupon, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		short, err := id.Generate(8)
		if err != nil {
			return nil, &stripe.Error{Type: stripe.ErrorTypeAPI, Message: err.Error(), HTTPStatusCode: http.StatusInternalServerError}
		}
		c.ID = short
	}
	if _, exists := s.coupons.get(c.ID); exists {
		return nil, invalidParam("id", "Coupon already exists.")
	}

	switch c.Duration {
	case stripe.CouponDurationForever, stripe.CouponDurationOnce:
	case stripe.CouponDurationRepeating:
		if c.DurationInMonths == nil || *c.DurationInMonths < 1 {
			return nil, missingParam("duration_in_months")
		}
	case "":
		return nil, missingParam("duration")
	default:
		return nil, invalidParam("duration", "Invalid duration: must be one of forever, once or repeating")
	}

	switch {
	case c.PercentOff == nil && c.AmountOff == nil:
		return nil, missingParam("percent_off")
	case c.PercentOff != nil && c.AmountOff != nil:
		return nil, invalidParam("amount_off", "Coupons may only have one of percent_off or amount_off")
	case c.PercentOff != nil && (*c.PercentOff < 1 || *c.PercentOff > 100):
		return nil, invalidParam("percent_off", "Invalid percent_off: must be between 1 and 100")
	case c.AmountOff != nil && c.Currency == "":
		return nil, missingParam("currency")
	}

	c.Object = stripe.ObjectCoupon
	s.coupons.put(c.ID, &c)
	out := c
	return &out, nil
}

func (s *Store) GetCoupon(couponID string) (*stripe.Coupon, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.coupons.get(couponID)
	if !ok {
		return nil, noSuch("coupon", couponID, "id")
	}
	out := *c
	return &out, nil
}

func (s *Store) DeleteCoupon(couponID string) (*stripe.Reference, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.coupons.remove(couponID) {
		return nil, noSuch("coupon", couponID, "id")
	}
	return &stripe.Reference{ID: couponID, Object: stripe.ObjectCoupon, Deleted: true}, nil
}

func (s *Store) ListCoupons() []stripe.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.coupons.newest(nil)
}

// Invoices

// draftInvoice bills the customer's current subscription period.
// Callers hold s.mu.
func (s *Store) draftInvoice(customerID, param string, periodOf func(*stripe.Subscription) (time.Time, time.Time)) (*stripe.Invoice, *stripe.Error) {
	rec, ok := s.customers.get(customerID)
	if !ok {
		return nil, noSuch("customer", customerID, param)
	}
	sub := rec.customer.Subscription
	if sub == nil || sub.Plan == nil {
		return nil, invalidParam("customer", "Nothing to invoice for customer")
	}

	start, end := periodOf(sub)
	amount := sub.Plan.Amount * int64(sub.Quantity)
	quantity := sub.Quantity
	line := stripe.LineItem{
		ID:          sub.ID,
		Object:      stripe.ObjectLineItem,
		Type:        "subscription",
		Amount:      amount,
		Currency:    sub.Plan.Currency,
		Period:      &stripe.Period{Start: stripe.NewTimestamp(start), End: stripe.NewTimestamp(end)},
		Quantity:    &quantity,
		Plan:        sub.Plan,
		Description: fmt.Sprintf("%d x %s", quantity, sub.Plan.Name),
	}

	inv := &stripe.Invoice{
		Object:      stripe.ObjectInvoice,
		Date:        s.timestamp(),
		PeriodStart: stripe.NewTimestamp(start),
		PeriodEnd:   stripe.NewTimestamp(end),
		Lines: &stripe.Collection[stripe.LineItem]{
			Object: stripe.ObjectList,
			Count:  1,
			Data:   []stripe.LineItem{line},
		},
		Subtotal:        amount,
		Customer:        customerID,
		Currency:        sub.Plan.Currency,
		StartingBalance: rec.customer.AccountBalance,
	}

	total := amount
	if d := rec.customer.Discount; d != nil && d.Coupon != nil {
		discountCopy := *d
		inv.Discount = &discountCopy
		switch {
		case d.Coupon.PercentOff != nil:
			total -= amount * int64(*d.Coupon.PercentOff) / 100
		case d.Coupon.AmountOff != nil:
			total -= *d.Coupon.AmountOff
		}
		if total < 0 {
			total = 0
		}
	}
	inv.Total = total
	inv.AmountDue = max(total+rec.customer.AccountBalance, 0)
	return inv, nil
}

func currentPeriod(sub *stripe.Subscription) (time.Time, time.Time) {
	return sub.CurrentPeriodStart.Time, sub.CurrentPeriodEnd.Time
}

func (s *Store) CreateInvoice(customerID string, applicationFee *int64) (*stripe.Invoice, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, apiErr := s.draftInvoice(customerID, "customer", currentPeriod)
	if apiErr != nil {
		return nil, apiErr
	}
	inv.ID = id.New(id.PrefixInvoice)
	inv.Lines.URL = "/v1/invoices/" + inv.ID + "/lines"
	inv.ApplicationFee = applicationFee
	next := stripe.NewTimestamp(s.now().UTC().Add(time.Hour))
	inv.NextPaymentAttempt = &next
	s.invoices.put(inv.ID, inv)
	out := *inv
	return &out, nil
}

func (s *Store) GetInvoice(invoiceID string) (*stripe.Invoice, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices.get(invoiceID)
	if !ok {
		return nil, noSuch("invoice", invoiceID, "id")
	}
	out := *inv
	return &out, nil
}

// PayInvoice charges the customer's default card for the amount due.
func (s *Store) PayInvoice(invoiceID string) (*stripe.Invoice, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices.get(invoiceID)
	if !ok {
		return nil, noSuch("invoice", invoiceID, "id")
	}
	if inv.Paid {
		return nil, invalidParam("", "Invoice is already paid")
	}

	inv.Attempted = true
	inv.AttemptCount++
	if inv.AmountDue > 0 {
		rec, ok := s.customers.get(inv.Customer)
		if !ok || rec.customer.DefaultCard == "" {
			return nil, cardError(stripe.ErrorCodeMissing, "", "Cannot charge a customer that has no active card")
		}
		card, _ := rec.cards.get(rec.customer.DefaultCard)
		ch := s.insertCharge(&stripe.Charge{
			Amount:   inv.AmountDue,
			Currency: inv.Currency,
			Customer: inv.Customer,
			Card:     card,
			Captured: true,
			Invoice:  inv.ID,
		})
		inv.Charge = ch.ID
	}
	inv.Paid = true
	inv.Closed = true
	inv.NextPaymentAttempt = nil
	ending := min(inv.Total+inv.StartingBalance, 0)
	inv.EndingBalance = &ending
	if rec, ok := s.customers.get(inv.Customer); ok {
		rec.customer.AccountBalance = ending
	}
	out := *inv
	return &out, nil
}

// UpcomingInvoice previews the invoice for the customer's next period.
func (s *Store) UpcomingInvoice(customerID string) (*stripe.Invoice, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.draftInvoice(customerID, "customer", func(sub *stripe.Subscription) (time.Time, time.Time) {
		start := sub.CurrentPeriodEnd.Time
		return start, periodEnd(start, sub.Plan.Interval, sub.Plan.IntervalCount)
	})
}
