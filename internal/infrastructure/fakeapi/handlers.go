package fakeapi

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/stripegate/sdk/stripe"
)

// Charges

func (s *Server) createCharge(c *gin.Context) {
	amount, apiErr := int64Param(c, "amount")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if amount == nil {
		writeError(c, missingParam("amount"))
		return
	}
	currency, apiErr := requiredString(c, "currency")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	capture, apiErr := boolParam(c, "capture")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	charge, apiErr := s.store.CreateCharge(chargeInput{
		Amount:      *amount,
		Currency:    currency,
		Customer:    stringParam(c, "customer"),
		Card:        stringParam(c, "card"),
		Description: stringParam(c, "description"),
		Capture:     capture,
		Metadata:    mapParam(c, "metadata"),
	})
	respond(c, charge, apiErr)
}

func (s *Server) getCharge(c *gin.Context) {
	charge, apiErr := s.store.GetCharge(c.Param("id"))
	respond(c, charge, apiErr)
}

func (s *Server) updateCharge(c *gin.Context) {
	charge, apiErr := s.store.UpdateCharge(c.Param("id"), stringParam(c, "description"), mapParam(c, "metadata"))
	respond(c, charge, apiErr)
}

func (s *Server) refundCharge(c *gin.Context) {
	amount, apiErr := int64Param(c, "amount")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	charge, apiErr := s.store.RefundCharge(c.Param("id"), amount)
	respond(c, charge, apiErr)
}

func (s *Server) captureCharge(c *gin.Context) {
	amount, apiErr := int64Param(c, "amount")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	charge, apiErr := s.store.CaptureCharge(c.Param("id"), amount)
	respond(c, charge, apiErr)
}

func (s *Server) listCharges(c *gin.Context) {
	created, apiErr := parseCreated(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	respondList(c, s.store.ListCharges(stringParam(c, "customer"), created))
}

// Customers

func parseCustomerInput(c *gin.Context) (customerInput, *stripe.Error) {
	in := customerInput{
		Card:        mapParam(c, "card"),
		Coupon:      stringParam(c, "coupon"),
		DefaultCard: stringParam(c, "default_card"),
		Description: stringParam(c, "description"),
		Email:       stringParam(c, "email"),
		Plan:        stringParam(c, "plan"),
		Metadata:    mapParam(c, "metadata"),
	}
	var apiErr *stripe.Error
	if in.AccountBalance, apiErr = int64Param(c, "account_balance"); apiErr != nil {
		return in, apiErr
	}
	if in.Quantity, apiErr = intParam(c, "quantity"); apiErr != nil {
		return in, apiErr
	}
	if in.TrialEnd, apiErr = timeParam(c, "trial_end"); apiErr != nil {
		return in, apiErr
	}
	return in, nil
}

func (s *Server) createCustomer(c *gin.Context) {
	in, apiErr := parseCustomerInput(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	customer, apiErr := s.store.CreateCustomer(in)
	respond(c, customer, apiErr)
}

func (s *Server) getCustomer(c *gin.Context) {
	customer, apiErr := s.store.GetCustomer(c.Param("id"))
	respond(c, customer, apiErr)
}

func (s *Server) updateCustomer(c *gin.Context) {
	in, apiErr := parseCustomerInput(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	customer, apiErr := s.store.UpdateCustomer(c.Param("id"), in)
	respond(c, customer, apiErr)
}

func (s *Server) deleteCustomer(c *gin.Context) {
	ref, apiErr := s.store.DeleteCustomer(c.Param("id"))
	respond(c, ref, apiErr)
}

func (s *Server) listCustomers(c *gin.Context) {
	created, apiErr := parseCreated(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	respondList(c, s.store.ListCustomers(created))
}

// Cards

func (s *Server) createCard(c *gin.Context) {
	card, apiErr := s.store.CreateCard(c.Param("id"), mapParam(c, "card"))
	respond(c, card, apiErr)
}

func (s *Server) getCard(c *gin.Context) {
	card, apiErr := s.store.GetCard(c.Param("id"), c.Param("card"))
	respond(c, card, apiErr)
}

func (s *Server) deleteCard(c *gin.Context) {
	ref, apiErr := s.store.DeleteCard(c.Param("id"), c.Param("card"))
	respond(c, ref, apiErr)
}

func (s *Server) listCards(c *gin.Context) {
	cards, apiErr := s.store.ListCards(c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	respondList(c, cards)
}

// Subscriptions

func (s *Server) subscribeCustomer(c *gin.Context) {
	plan, apiErr := requiredString(c, "plan")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	in := subscriptionInput{
		Plan:   plan,
		Coupon: stringParam(c, "coupon"),
		Card:   stringParam(c, "card"),
	}
	if in.Prorate, apiErr = boolParam(c, "prorate"); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if in.TrialEnd, apiErr = timeParam(c, "trial_end"); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if in.Quantity, apiErr = intParam(c, "quantity"); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	sub, apiErr := s.store.SubscribeCustomer(c.Param("id"), in)
	respond(c, sub, apiErr)
}

func (s *Server) cancelSubscription(c *gin.Context) {
	atPeriodEnd, apiErr := boolParam(c, "at_period_end")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	sub, apiErr := s.store.CancelSubscription(c.Param("id"), atPeriodEnd != nil && *atPeriodEnd)
	respond(c, sub, apiErr)
}

func (s *Server) deleteDiscount(c *gin.Context) {
	ref, apiErr := s.store.DeleteDiscount(c.Param("id"))
	respond(c, ref, apiErr)
}

// Plans

func (s *Server) createPlan(c *gin.Context) {
	var plan stripe.Plan
	var apiErr *stripe.Error
	for _, key := range []string{"id", "currency", "interval", "name"} {
		if _, apiErr = requiredString(c, key); apiErr != nil {
			writeError(c, apiErr)
			return
		}
	}
	amount, apiErr := int64Param(c, "amount")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if amount == nil {
		writeError(c, missingParam("amount"))
		return
	}
	intervalCount, apiErr := intParam(c, "interval_count")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if plan.TrialPeriodDays, apiErr = intParam(c, "trial_period_days"); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	plan.ID = stringParam(c, "id")
	plan.Amount = *amount
	plan.Currency = stringParam(c, "currency")
	plan.Interval = stripe.PlanInterval(stringParam(c, "interval"))
	plan.Name = stringParam(c, "name")
	if intervalCount != nil {
		plan.IntervalCount = *intervalCount
	}

	created, apiErr := s.store.CreatePlan(plan)
	respond(c, created, apiErr)
}

func (s *Server) getPlan(c *gin.Context) {
	plan, apiErr := s.store.GetPlan(c.Param("id"))
	respond(c, plan, apiErr)
}

func (s *Server) updatePlan(c *gin.Context) {
	plan, apiErr := s.store.UpdatePlan(c.Param("id"), stringParam(c, "name"), mapParam(c, "metadata"))
	respond(c, plan, apiErr)
}

func (s *Server) deletePlan(c *gin.Context) {
	ref, apiErr := s.store.DeletePlan(c.Param("id"))
	respond(c, ref, apiErr)
}

func (s *Server) listPlans(c *gin.Context) {
	respondList(c, s.store.ListPlans())
}

// Coupons

func (s *Server) createCoupon(c *gin.Context) {
	coupon := stripe.Coupon{
		ID:       stringParam(c, "id"),
		Duration: stripe.CouponDuration(stringParam(c, "duration")),
		Currency: stringParam(c, "currency"),
	}
	var apiErr *stripe.Error
	if coupon.AmountOff, apiErr = int64Param(c, "amount_off"); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if coupon.PercentOff, apiErr = intParam(c, "percent_off"); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if coupon.DurationInMonths, apiErr = intParam(c, "duration_in_months"); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if coupon.MaxRedemptions, apiErr = intParam(c, "max_redemptions"); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	redeemBy, apiErr := timeParam(c, "redeem_by")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if redeemBy != nil {
		ts := stripe.NewTimestamp(*redeemBy)
		coupon.RedeemBy = &ts
	}

	created, apiErr := s.store.CreateCoupon(coupon)
	respond(c, created, apiErr)
}

func (s *Server) getCoupon(c *gin.Context) {
	coupon, apiErr := s.store.GetCoupon(c.Param("id"))
	respond(c, coupon, apiErr)
}

func (s *Server) deleteCoupon(c *gin.Context) {
	ref, apiErr := s.store.DeleteCoupon(c.Param("id"))
	respond(c, ref, apiErr)
}

func (s *Server) listCoupons(c *gin.Context) {
	respondList(c, s.store.ListCoupons())
}

// Invoices

func (s *Server) createInvoice(c *gin.Context) {
	customer, apiErr := requiredString(c, "customer")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	fee, apiErr := int64Param(c, "application_fee")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	invoice, apiErr := s.store.CreateInvoice(customer, fee)
	respond(c, invoice, apiErr)
}

func (s *Server) getInvoice(c *gin.Context) {
	if c.Param("id") == "upcoming" {
		s.upcomingInvoice(c)
		return
	}
	invoice, apiErr := s.store.GetInvoice(c.Param("id"))
	respond(c, invoice, apiErr)
}

func (s *Server) upcomingInvoice(c *gin.Context) {
	customer, apiErr := requiredString(c, "customer")
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	invoice, apiErr := s.store.UpcomingInvoice(customer)
	respond(c, invoice, apiErr)
}

func (s *Server) payInvoice(c *gin.Context) {
	invoice, apiErr := s.store.PayInvoice(c.Param("id"))
	respond(c, invoice, apiErr)
}
