package fakeapi

import (
	"github.com/orris-inc/stripegate/internal/shared/id"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

// DeclinedCardToken is a card token that is always declined.
const DeclinedCardToken = "tok_chargeDeclined"

type chargeInput struct {
	Amount      int64
	Currency    string
	Customer    string
	Card        string
	Description string
	Capture     *bool
	Metadata    map[string]string
}

func (s *Store) CreateCharge(in chargeInput) (*stripe.Charge, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Amount <= 0 {
		return nil, invalidParam("amount", "Amount must be at least 1 cent")
	}
	if in.Customer == "" && in.Card == "" {
		return nil, missingParam("card")
	}
	if in.Card == DeclinedCardToken {
		return nil, cardError(stripe.ErrorCodeCardDeclined, "", "Your card was declined.")
	}

	var card *stripe.Card
	if in.Card != "" {
		card = cardFromToken(in.Card)
	}
	if in.Customer != "" {
		rec, ok := s.customers.get(in.Customer)
		if !ok {
			return nil, noSuch("customer", in.Customer, "customer")
		}
		if card == nil {
			if rec.customer.DefaultCard == "" {
				return nil, invalidParam("customer", "Cannot charge a customer that has no active card")
			}
			card, _ = rec.cards.get(rec.customer.DefaultCard)
		}
	}

	return s.insertCharge(&stripe.Charge{
		Amount:      in.Amount,
		Currency:    in.Currency,
		Customer:    in.Customer,
		Card:        card,
		Description: in.Description,
		Captured:    in.Capture == nil || *in.Capture,
		Metadata:    in.Metadata,
	}), nil
}

// processingFee is 2.9% of amount, rounded half up, plus 30 minor units.
func processingFee(amount int64) int64 {
	return (amount*29+500)/1000 + 30
}

// insertCharge stores a paid charge. Callers hold s.mu.
func (s *Store) insertCharge(ch *stripe.Charge) *stripe.Charge {
	ch.ID = id.New(id.PrefixCharge)
	ch.Object = stripe.ObjectCharge
	ch.Created = s.timestamp()
	ch.Paid = true
	ch.BalanceTransaction = id.New(id.PrefixBalanceTxn)
	ch.Fee = processingFee(ch.Amount)
	ch.FeeDetails = []stripe.FeeDetail{{
		Type:        "stripe_fee",
		Currency:    ch.Currency,
		Description: "Stripe processing fees",
		Amount:      ch.Fee,
	}}
	s.charges.put(ch.ID, ch)
	out := *ch
	return &out
}

func (s *Store) GetCharge(chargeID string) (*stripe.Charge, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.charges.get(chargeID)
	if !ok {
		return nil, noSuch("charge", chargeID, "id")
	}
	out := *ch
	return &out, nil
}

func (s *Store) UpdateCharge(chargeID, description string, metadata map[string]string) (*stripe.Charge, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.charges.get(chargeID)
	if !ok {
		return nil, noSuch("charge", chargeID, "id")
	}
	if description != "" {
		ch.Description = description
	}
	if len(metadata) > 0 {
		ch.Metadata = mergeMetadata(ch.Metadata, metadata)
	}
	out := *ch
	return &out, nil
}

// RefundCharge refunds amount, or everything not yet refunded when amount is nil.
func (s *Store) RefundCharge(chargeID string, amount *int64) (*stripe.Charge, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.charges.get(chargeID)
	if !ok {
		return nil, noSuch("charge", chargeID, "id")
	}
	remaining := ch.Amount - ch.AmountRefunded
	if remaining == 0 {
		return nil, invalidParam("", "Charge %s has already been refunded.", chargeID)
	}
	refund := remaining
	if amount != nil {
		if *amount <= 0 || *amount > remaining {
			return nil, invalidParam("amount", "Refund amount (%d) is greater than unrefunded amount on charge (%d)", *amount, remaining)
		}
		refund = *amount
	}

	ch.AmountRefunded += refund
	ch.Refunded = ch.AmountRefunded == ch.Amount
	ch.Refunds = append(ch.Refunds, stripe.Refund{
		Object:             stripe.ObjectRefund,
		Amount:             refund,
		Created:            s.timestamp(),
		Currency:           ch.Currency,
		BalanceTransaction: id.New(id.PrefixBalanceTxn),
	})
	out := *ch
	out.Refunds = append([]stripe.Refund(nil), ch.Refunds...)
	return &out, nil
}

// CaptureCharge captures an uncaptured charge. Capturing less than the
// authorized amount releases the rest as a refund.
func (s *Store) CaptureCharge(chargeID string, amount *int64) (*stripe.Charge, *stripe.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.charges.get(chargeID)
	if !ok {
		return nil, noSuch("charge", chargeID, "id")
	}
	if ch.Captured {
		return nil, invalidParam("", "Charge %s has already been captured.", chargeID)
	}
	if amount != nil {
		if *amount <= 0 || *amount > ch.Amount {
			return nil, invalidParam("amount", "Amount to capture must be between 1 and %d", ch.Amount)
		}
		ch.AmountRefunded = ch.Amount - *amount
	}
	ch.Captured = true
	out := *ch
	return &out, nil
}

func (s *Store) ListCharges(customer string, created createdFilter) []stripe.Charge {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.charges.newest(func(ch *stripe.Charge) bool {
		return (customer == "" || ch.Customer == customer) && created.match(ch.Created)
	})
}
