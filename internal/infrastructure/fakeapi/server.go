// Package fakeapi serves an in-memory imitation of the payment API for
// local development and end-to-end tests of the gateway.
package fakeapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/stripegate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/stripegate/internal/shared/logger"
	"github.com/orris-inc/stripegate/internal/shared/utils"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

// Server routes /v1 requests to a Store.
type Server struct {
	apiKey  string
	store   *Store
	engine  *gin.Engine
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

// Option configures a Server.
type Option func(*Server)

// WithStore replaces the default empty store.
func WithStore(store *Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithRateLimiter answers 429 once an API key exhausts the limiter's budget.
func WithRateLimiter(limiter ratelimit.RateLimiter) Option {
	return func(s *Server) {
		s.limiter = limiter
	}
}

// New creates a Server accepting apiKey as the Basic auth username.
func New(apiKey string, log logger.Interface, opts ...Option) *Server {
	s := &Server{
		apiKey: apiKey,
		logger: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewStore(time.Now)
	}

	engine := gin.New()
	engine.Use(recovery(log), requestLogger(log))
	s.engine = engine
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	v1 := s.engine.Group("/v1", s.authenticate())
	if s.limiter != nil {
		v1.Use(rateLimit(s.limiter, s.logger))
	}

	charges := v1.Group("/charges")
	{
		charges.POST("", s.createCharge)
		charges.GET("", s.listCharges)
		charges.GET("/:id", s.getCharge)
		charges.POST("/:id", s.updateCharge)
		charges.POST("/:id/refund", s.refundCharge)
		charges.POST("/:id/capture", s.captureCharge)
	}

	customers := v1.Group("/customers")
	{
		customers.POST("", s.createCustomer)
		customers.GET("", s.listCustomers)
		customers.GET("/:id", s.getCustomer)
		customers.POST("/:id", s.updateCustomer)
		customers.DELETE("/:id", s.deleteCustomer)

		customers.POST("/:id/cards", s.createCard)
		customers.GET("/:id/cards", s.listCards)
		customers.GET("/:id/cards/:card", s.getCard)
		customers.DELETE("/:id/cards/:card", s.deleteCard)

		customers.POST("/:id/subscription", s.subscribeCustomer)
		customers.DELETE("/:id/subscription", s.cancelSubscription)

		customers.DELETE("/:id/discount", s.deleteDiscount)
	}

	plans := v1.Group("/plans")
	{
		plans.POST("", s.createPlan)
		plans.GET("", s.listPlans)
		plans.GET("/:id", s.getPlan)
		plans.POST("/:id", s.updatePlan)
		plans.DELETE("/:id", s.deletePlan)
	}

	coupons := v1.Group("/coupons")
	{
		coupons.POST("", s.createCoupon)
		coupons.GET("", s.listCoupons)
		coupons.GET("/:id", s.getCoupon)
		coupons.DELETE("/:id", s.deleteCoupon)
	}

	invoices := v1.Group("/invoices")
	{
		invoices.POST("", s.createInvoice)
		// "upcoming" shares the :id segment.
		invoices.GET("/:id", s.getInvoice)
		invoices.POST("/:id/pay", s.payInvoice)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		writeError(c, &stripe.Error{
			Type:           stripe.ErrorTypeInvalidRequest,
			Message:        "Unrecognized request URL (" + c.Request.Method + ": " + c.Request.URL.Path + ")",
			HTTPStatusCode: http.StatusNotFound,
		})
	})
}

// authenticate requires the API key as the Basic auth username.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _, ok := c.Request.BasicAuth()
		switch {
		case !ok || key == "":
			writeError(c, unauthorized("You did not provide an API key. You need to provide your API key in the Authorization header, using Basic auth."))
			return
		case key != s.apiKey:
			writeError(c, unauthorized("Invalid API Key provided: "+utils.MaskSecret(key)))
			return
		}
		c.Next()
	}
}

// respond writes v as JSON, or the error envelope when apiErr is set.
func respond[T any](c *gin.Context, v *T, apiErr *stripe.Error) {
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, v)
}

// respondList pages items by count and offset.
func respondList[T any](c *gin.Context, items []T) {
	window := utils.ParseWindow(c)
	start, end := utils.ApplyWindow(len(items), window)
	c.JSON(http.StatusOK, stripe.Collection[T]{
		Object: stripe.ObjectList,
		URL:    c.Request.URL.Path,
		Count:  len(items),
		Data:   items[start:end],
	})
}
