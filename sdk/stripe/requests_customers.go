package stripe

import (
	"net/http"
	"time"
)

// CardParams is a card as sent to the API, encoded as card[number]=...
type CardParams struct {
	Number         string
	ExpMonth       int
	ExpYear        int
	CVC            string
	Name           string
	AddressLine1   string
	AddressLine2   string
	AddressCity    string
	AddressState   string
	AddressZip     string
	AddressCountry string
}

type CreateCustomer struct {
	returns[Customer]

	AccountBalance *int64
	Card           *CardParams
	Coupon         string
	Description    string
	Email          string
	Plan           string
	Quantity       *int
	TrialEnd       *time.Time
	Metadata       map[string]string
}

func (CreateCustomer) Route() Route { return Route{http.MethodPost, "/customers"} }

type GetCustomer struct {
	returns[Customer]

	ID string `path:"id"`
}

func (GetCustomer) Route() Route { return Route{http.MethodGet, "/customers/{id}"} }

type UpdateCustomer struct {
	returns[Customer]

	ID             string `path:"id"`
	AccountBalance *int64
	Card           *CardParams
	Coupon         string
	DefaultCard    string
	Description    string
	Email          string
	Metadata       map[string]string
}

func (UpdateCustomer) Route() Route { return Route{http.MethodPost, "/customers/{id}"} }

type DeleteCustomer struct {
	returns[Reference]

	ID string `path:"id"`
}

func (DeleteCustomer) Route() Route { return Route{http.MethodDelete, "/customers/{id}"} }

type ListCustomers struct {
	returns[Collection[Customer]]
	ListParams

	Created *DateRange
}

func (ListCustomers) Route() Route { return Route{http.MethodGet, "/customers"} }

// Cards

type CreateCard struct {
	returns[Card]

	CustomerID string `path:"customer_id"`
	Card       *CardParams
}

func (CreateCard) Route() Route { return Route{http.MethodPost, "/customers/{customer_id}/cards"} }

type GetCard struct {
	returns[Card]

	CustomerID string `path:"customer_id"`
	CardID     string `path:"card_id"`
}

func (GetCard) Route() Route {
	return Route{http.MethodGet, "/customers/{customer_id}/cards/{card_id}"}
}

type DeleteCard struct {
	returns[Reference]

	CustomerID string `path:"customer_id"`
	CardID     string `path:"card_id"`
}

func (DeleteCard) Route() Route {
	return Route{http.MethodDelete, "/customers/{customer_id}/cards/{card_id}"}
}

type ListCards struct {
	returns[Collection[Card]]
	ListParams

	CustomerID string `path:"customer_id"`
}

func (ListCards) Route() Route { return Route{http.MethodGet, "/customers/{customer_id}/cards"} }

// Subscriptions

// SubscribeCustomer creates or replaces the customer's subscription.
type SubscribeCustomer struct {
	returns[Subscription]

	CustomerID            string `path:"customer_id"`
	Plan                  string
	Coupon                string
	Prorate               *bool
	TrialEnd              *time.Time
	Card                  string
	Quantity              *int
	ApplicationFeePercent *int
}

func (SubscribeCustomer) Route() Route {
	return Route{http.MethodPost, "/customers/{customer_id}/subscription"}
}

type CancelSubscription struct {
	returns[Subscription]

	CustomerID  string `path:"customer_id"`
	AtPeriodEnd bool
}

func (CancelSubscription) Route() Route {
	return Route{http.MethodDelete, "/customers/{customer_id}/subscription"}
}

// Discounts

type DeleteDiscount struct {
	returns[Reference]

	CustomerID string `path:"customer_id"`
}

func (DeleteDiscount) Route() Route {
	return Route{http.MethodDelete, "/customers/{customer_id}/discount"}
}
