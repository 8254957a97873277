package stripe

// ObjectType is the "object" discriminator every resource carries.
type ObjectType string

const (
	ObjectAccount      ObjectType = "account"
	ObjectCard         ObjectType = "card"
	ObjectCharge       ObjectType = "charge"
	ObjectCoupon       ObjectType = "coupon"
	ObjectCustomer     ObjectType = "customer"
	ObjectDiscount     ObjectType = "discount"
	ObjectDispute      ObjectType = "dispute"
	ObjectEvent        ObjectType = "event"
	ObjectInvoice      ObjectType = "invoice"
	ObjectInvoiceItem  ObjectType = "invoiceitem"
	ObjectLineItem     ObjectType = "line_item"
	ObjectList         ObjectType = "list"
	ObjectPlan         ObjectType = "plan"
	ObjectRefund       ObjectType = "refund"
	ObjectSubscription ObjectType = "subscription"
	ObjectToken        ObjectType = "token"
	ObjectTransfer     ObjectType = "transfer"
)

type PlanInterval string

const (
	PlanIntervalDay   PlanInterval = "day"
	PlanIntervalWeek  PlanInterval = "week"
	PlanIntervalMonth PlanInterval = "month"
	PlanIntervalYear  PlanInterval = "year"
)

type CouponDuration string

const (
	CouponDurationForever   CouponDuration = "forever"
	CouponDurationOnce      CouponDuration = "once"
	CouponDurationRepeating CouponDuration = "repeating"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusUnpaid   SubscriptionStatus = "unpaid"
)

type CVCCheck string

const (
	CVCCheckPass        CVCCheck = "pass"
	CVCCheckFail        CVCCheck = "fail"
	CVCCheckUnchecked   CVCCheck = "unchecked"
	CVCCheckUnavailable CVCCheck = "unavailable"
)

type DisputeStatus string

const (
	DisputeStatusWon           DisputeStatus = "won"
	DisputeStatusLost          DisputeStatus = "lost"
	DisputeStatusNeedsResponse DisputeStatus = "needs_response"
	DisputeStatusUnderReview   DisputeStatus = "under_review"
)

type DisputeReason string

const (
	DisputeReasonDuplicate            DisputeReason = "duplicate"
	DisputeReasonFraudulent           DisputeReason = "fraudulent"
	DisputeReasonSubscriptionCanceled DisputeReason = "subscription_canceled"
	DisputeReasonProductUnacceptable  DisputeReason = "product_unacceptable"
	DisputeReasonProductNotReceived   DisputeReason = "product_not_received"
	DisputeReasonUnrecognized         DisputeReason = "unrecognized"
	DisputeReasonCreditNotProcessed   DisputeReason = "credit_not_processed"
	DisputeReasonGeneral              DisputeReason = "general"
)

// Collection is one page of a list endpoint.
type Collection[T any] struct {
	Object ObjectType `json:"object"`
	URL    string     `json:"url"`
	Count  int        `json:"count"`
	Data   []T        `json:"data"`
}

// Reference is returned by delete endpoints.
type Reference struct {
	ID      string     `json:"id"`
	Object  ObjectType `json:"object,omitempty"`
	Deleted bool       `json:"deleted"`
}

// Charge amounts are in the currency's minor unit.
type Charge struct {
	ID                 string            `json:"id"`
	Object             ObjectType        `json:"object"`
	Livemode           bool              `json:"livemode"`
	Amount             int64             `json:"amount"`
	Captured           bool              `json:"captured"`
	Card               *Card             `json:"card,omitempty"`
	Created            Timestamp         `json:"created"`
	Currency           string            `json:"currency"`
	Paid               bool              `json:"paid"`
	Refunded           bool              `json:"refunded"`
	Refunds            []Refund          `json:"refunds,omitempty"`
	AmountRefunded     int64             `json:"amount_refunded"`
	BalanceTransaction string            `json:"balance_transaction,omitempty"`
	Customer           string            `json:"customer,omitempty"`
	Description        string            `json:"description,omitempty"`
	Dispute            *Dispute          `json:"dispute,omitempty"`
	FailureCode        string            `json:"failure_code,omitempty"`
	FailureMessage     string            `json:"failure_message,omitempty"`
	Invoice            string            `json:"invoice,omitempty"`
	Fee                int64             `json:"fee"`
	FeeDetails         []FeeDetail       `json:"fee_details,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

type Refund struct {
	Object             ObjectType `json:"object"`
	Amount             int64      `json:"amount"`
	Created            Timestamp  `json:"created"`
	Currency           string     `json:"currency"`
	BalanceTransaction string     `json:"balance_transaction,omitempty"`
}

type Dispute struct {
	Object        ObjectType    `json:"object"`
	Status        DisputeStatus `json:"status"`
	Evidence      string        `json:"evidence,omitempty"`
	Charge        string        `json:"charge"`
	Created       *Timestamp    `json:"created,omitempty"`
	Currency      string        `json:"currency"`
	Amount        int64         `json:"amount"`
	Livemode      bool          `json:"livemode"`
	Reason        DisputeReason `json:"reason"`
	EvidenceDueBy *Timestamp    `json:"evidence_due_by,omitempty"`
}

type FeeDetail struct {
	Type        string `json:"type"`
	Currency    string `json:"currency"`
	Application string `json:"application,omitempty"`
	Description string `json:"description,omitempty"`
	Amount      int64  `json:"amount"`
}

type Customer struct {
	ID             string            `json:"id"`
	Object         ObjectType        `json:"object"`
	Created        *Timestamp        `json:"created,omitempty"`
	Livemode       bool              `json:"livemode"`
	Description    string            `json:"description,omitempty"`
	Email          string            `json:"email,omitempty"`
	Delinquent     *bool             `json:"delinquent,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Subscription   *Subscription     `json:"subscription,omitempty"`
	Discount       *Discount         `json:"discount,omitempty"`
	AccountBalance int64             `json:"account_balance"`
	Cards          *Collection[Card] `json:"cards,omitempty"`
	Deleted        bool              `json:"deleted,omitempty"`
	DefaultCard    string            `json:"default_card,omitempty"`
}

// Card is a stored card as returned by the API. Number and CVC are only
// ever populated on the request side; see CardParams.
type Card struct {
	ID                string     `json:"id"`
	Object            ObjectType `json:"object"`
	Last4             string     `json:"last4"`
	Type              string     `json:"type"`
	ExpMonth          int        `json:"exp_month"`
	ExpYear           int        `json:"exp_year"`
	Name              string     `json:"name,omitempty"`
	AddressLine1      string     `json:"address_line1,omitempty"`
	AddressLine2      string     `json:"address_line2,omitempty"`
	AddressCity       string     `json:"address_city,omitempty"`
	AddressState      string     `json:"address_state,omitempty"`
	AddressZip        string     `json:"address_zip,omitempty"`
	AddressCountry    string     `json:"address_country,omitempty"`
	CVCCheck          *CVCCheck  `json:"cvc_check,omitempty"`
	AddressLine1Check string     `json:"address_line1_check,omitempty"`
	AddressZipCheck   string     `json:"address_zip_check,omitempty"`
	Fingerprint       string     `json:"fingerprint,omitempty"`
	Customer          string     `json:"customer,omitempty"`
	Country           string     `json:"country,omitempty"`
}

type Subscription struct {
	ID                 string             `json:"id"`
	Object             ObjectType         `json:"object"`
	Status             SubscriptionStatus `json:"status"`
	Plan               *Plan              `json:"plan,omitempty"`
	Customer           string             `json:"customer"`
	Quantity           int                `json:"quantity"`
	Start              *Timestamp         `json:"start,omitempty"`
	CurrentPeriodStart *Timestamp         `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *Timestamp         `json:"current_period_end,omitempty"`
	TrialStart         *Timestamp         `json:"trial_start,omitempty"`
	TrialEnd           *Timestamp         `json:"trial_end,omitempty"`
	CancelAtPeriodEnd  *bool              `json:"cancel_at_period_end,omitempty"`
	CanceledAt         *Timestamp         `json:"canceled_at,omitempty"`
	EndedAt            *Timestamp         `json:"ended_at,omitempty"`
}

type Plan struct {
	ID              string            `json:"id"`
	Object          ObjectType        `json:"object"`
	Livemode        bool              `json:"livemode"`
	Amount          int64             `json:"amount"`
	Currency        string            `json:"currency"`
	Identifier      string            `json:"identifier,omitempty"`
	Interval        PlanInterval      `json:"interval"`
	IntervalCount   int               `json:"interval_count,omitempty"`
	Name            string            `json:"name"`
	TrialPeriodDays *int              `json:"trial_period_days,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

type Coupon struct {
	ID               string         `json:"id"`
	Object           ObjectType     `json:"object"`
	PercentOff       *int           `json:"percent_off,omitempty"`
	AmountOff        *int64         `json:"amount_off,omitempty"`
	Currency         string         `json:"currency,omitempty"`
	Livemode         bool           `json:"livemode"`
	Duration         CouponDuration `json:"duration"`
	RedeemBy         *Timestamp     `json:"redeem_by,omitempty"`
	MaxRedemptions   *int           `json:"max_redemptions,omitempty"`
	TimesRedeemed    int            `json:"times_redeemed"`
	DurationInMonths *int           `json:"duration_in_months,omitempty"`
}

type Discount struct {
	ID       string     `json:"id,omitempty"`
	Object   ObjectType `json:"object"`
	Customer string     `json:"customer"`
	Coupon   *Coupon    `json:"coupon,omitempty"`
	Start    *Timestamp `json:"start,omitempty"`
	End      *Timestamp `json:"end,omitempty"`
}

type Invoice struct {
	ID                 string                `json:"id,omitempty"`
	Object             ObjectType            `json:"object"`
	Date               Timestamp             `json:"date"`
	PeriodStart        Timestamp             `json:"period_start"`
	PeriodEnd          Timestamp             `json:"period_end"`
	Lines              *Collection[LineItem] `json:"lines,omitempty"`
	Subtotal           int64                 `json:"subtotal"`
	Total              int64                 `json:"total"`
	Customer           string                `json:"customer"`
	Attempted          bool                  `json:"attempted"`
	Closed             bool                  `json:"closed"`
	Paid               bool                  `json:"paid"`
	Livemode           bool                  `json:"livemode"`
	AttemptCount       int                   `json:"attempt_count"`
	AmountDue          int64                 `json:"amount_due"`
	Currency           string                `json:"currency"`
	StartingBalance    int64                 `json:"starting_balance"`
	EndingBalance      *int64                `json:"ending_balance,omitempty"`
	NextPaymentAttempt *Timestamp            `json:"next_payment_attempt,omitempty"`
	Charge             string                `json:"charge,omitempty"`
	Discount           *Discount             `json:"discount,omitempty"`
	ApplicationFee     *int64                `json:"application_fee,omitempty"`
}

type LineItem struct {
	ID          string            `json:"id"`
	Object      ObjectType        `json:"object"`
	Type        string            `json:"type"`
	Livemode    bool              `json:"livemode"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Proration   bool              `json:"proration"`
	Period      *Period           `json:"period,omitempty"`
	Quantity    *int              `json:"quantity,omitempty"`
	Plan        *Plan             `json:"plan,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type Period struct {
	Start Timestamp `json:"start"`
	End   Timestamp `json:"end"`
}
