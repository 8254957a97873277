// Package stripe is a typed client for the Stripe v1 REST API.
//
// Every remote operation is a request struct (CreateCharge, GetCustomer, ...)
// that declares its Route and, through an embedded marker, the type its
// success body decodes into. A Gateway turns such a value into exactly one
// HTTP call:
//
//	gw := stripe.New("sk_test_xxx")
//	charge, err := stripe.Send[stripe.Charge](ctx, gw, stripe.CreateCharge{
//	    Amount:   1000,
//	    Currency: "usd",
//	    Customer: "cus_123",
//	})
//
// POST and PUT requests are sent as flat form bodies (card[number]=...),
// GET and DELETE requests carry the same encoding in the query string.
// Fields tagged `path:"name"` fill the {name} placeholders of the route and
// are never serialized anywhere else.
//
// A 4xx response is returned as *Error carrying the API's type, message,
// code and param. Transport failures are returned untouched.
package stripe
