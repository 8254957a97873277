package stripe

import (
	"net/http"
	"time"
)

// ListParams pages through a list endpoint. Count and Offset are request
// side only; the response carries no cursor.
type ListParams struct {
	Count  *int
	Offset *int
}

// DateRange filters list endpoints by creation time: created[gt]=...
type DateRange struct {
	Gt  *time.Time
	Gte *time.Time
	Lt  *time.Time
	Lte *time.Time
}

// CreateCharge charges a customer or a card token.
type CreateCharge struct {
	returns[Charge]

	Amount         int64
	Currency       string
	Customer       string
	Card           string
	Description    string
	Capture        *bool
	ApplicationFee *int64
	Metadata       map[string]string
}

func (CreateCharge) Route() Route { return Route{http.MethodPost, "/charges"} }

type GetCharge struct {
	returns[Charge]

	ChargeID string `path:"charge_id"`
}

func (GetCharge) Route() Route { return Route{http.MethodGet, "/charges/{charge_id}"} }

type UpdateCharge struct {
	returns[Charge]

	ChargeID    string `path:"charge_id"`
	Description string
	Metadata    map[string]string
}

func (UpdateCharge) Route() Route { return Route{http.MethodPost, "/charges/{charge_id}"} }

// RefundCharge refunds the whole charge unless Amount is set.
type RefundCharge struct {
	returns[Charge]

	ChargeID             string `path:"charge_id"`
	Amount               *int64
	RefundApplicationFee *bool
}

func (RefundCharge) Route() Route { return Route{http.MethodPost, "/charges/{charge_id}/refund"} }

// CaptureCharge captures a charge created with Capture set to false.
type CaptureCharge struct {
	returns[Charge]

	ChargeID       string `path:"charge_id"`
	Amount         *int64
	ApplicationFee *int64
}

func (CaptureCharge) Route() Route { return Route{http.MethodPost, "/charges/{charge_id}/capture"} }

type ListCharges struct {
	returns[Collection[Charge]]
	ListParams

	Created  *DateRange
	Customer string
}

func (ListCharges) Route() Route { return Route{http.MethodGet, "/charges"} }
