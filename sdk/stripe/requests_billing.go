package stripe

import (
	"net/http"
	"time"
)

// Plans

type CreatePlan struct {
	returns[Plan]

	ID              string
	Amount          int64
	Currency        string
	Interval        PlanInterval
	IntervalCount   *int
	Name            string
	TrialPeriodDays *int
}

func (CreatePlan) Route() Route { return Route{http.MethodPost, "/plans"} }

type GetPlan struct {
	returns[Plan]

	ID string `path:"id"`
}

func (GetPlan) Route() Route { return Route{http.MethodGet, "/plans/{id}"} }

// UpdatePlan can only rename a plan or change its metadata.
type UpdatePlan struct {
	returns[Plan]

	ID       string `path:"id"`
	Name     string
	Metadata map[string]string
}

func (UpdatePlan) Route() Route { return Route{http.MethodPost, "/plans/{id}"} }

type DeletePlan struct {
	returns[Reference]

	ID string `path:"id"`
}

func (DeletePlan) Route() Route { return Route{http.MethodDelete, "/plans/{id}"} }

type ListPlans struct {
	returns[Collection[Plan]]
	ListParams
}

func (ListPlans) Route() Route { return Route{http.MethodGet, "/plans"} }

// Coupons

// CreateCoupon takes either PercentOff or AmountOff with Currency.
type CreateCoupon struct {
	returns[Coupon]

	ID               string
	Duration         CouponDuration
	AmountOff        *int64
	Currency         string
	DurationInMonths *int
	MaxRedemptions   *int
	PercentOff       *int
	RedeemBy         *time.Time
}

func (CreateCoupon) Route() Route { return Route{http.MethodPost, "/coupons"} }

type GetCoupon struct {
	returns[Coupon]

	ID string `path:"id"`
}

func (GetCoupon) Route() Route { return Route{http.MethodGet, "/coupons/{id}"} }

type DeleteCoupon struct {
	returns[Reference]

	ID string `path:"id"`
}

func (DeleteCoupon) Route() Route { return Route{http.MethodDelete, "/coupons/{id}"} }

type ListCoupons struct {
	returns[Collection[Coupon]]
	ListParams
}

func (ListCoupons) Route() Route { return Route{http.MethodGet, "/coupons"} }

// Invoices

type CreateInvoice struct {
	returns[Invoice]

	Customer       string
	ApplicationFee *int64
}

func (CreateInvoice) Route() Route { return Route{http.MethodPost, "/invoices"} }

type PayInvoice struct {
	returns[Invoice]

	ID string `path:"id"`
}

func (PayInvoice) Route() Route { return Route{http.MethodPost, "/invoices/{id}/pay"} }

// GetUpcomingInvoice previews the next invoice for Customer.
type GetUpcomingInvoice struct {
	returns[Invoice]

	Customer string
}

func (GetUpcomingInvoice) Route() Route { return Route{http.MethodGet, "/invoices/upcoming"} }
