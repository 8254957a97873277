package stripe

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
)

// Route is the HTTP method and path template of one remote operation.
// Placeholders use the {name} form and are matched against fields tagged
// `path:"name"`.
type Route struct {
	Method string
	Path   string
}

func (r Route) String() string {
	return r.Method + " " + r.Path
}

// Routable is implemented by every request in the catalog.
type Routable interface {
	Route() Route
}

// Request is a Routable whose success body decodes into T.
type Request[T any] interface {
	Routable
	response(*T)
}

// returns is embedded by request structs to declare their response type.
type returns[T any] struct{}

func (returns[T]) response(*T) {}

// Catalog returns a zero value of every supported request, in route table order.
func Catalog() []Routable {
	return []Routable{
		CreateCharge{},
		GetCharge{},
		UpdateCharge{},
		RefundCharge{},
		CaptureCharge{},
		ListCharges{},

		CreateCustomer{},
		GetCustomer{},
		UpdateCustomer{},
		DeleteCustomer{},
		ListCustomers{},

		CreateCard{},
		GetCard{},
		DeleteCard{},
		ListCards{},

		SubscribeCustomer{},
		CancelSubscription{},

		CreatePlan{},
		GetPlan{},
		UpdatePlan{},
		DeletePlan{},
		ListPlans{},

		CreateCoupon{},
		GetCoupon{},
		DeleteCoupon{},
		ListCoupons{},

		DeleteDiscount{},

		CreateInvoice{},
		PayInvoice{},
		GetUpcomingInvoice{},
	}
}

// sendsBody reports whether requests with the given method carry a form body.
// Other methods put the encoded fields in the query string.
func sendsBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}

// resolvePath substitutes every {name} placeholder of template with the
// path-escaped value of the field tagged `path:"name"`.
func resolvePath(template string, req any) (string, error) {
	params := pathParams(req)

	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("stripe: malformed route %q", template)
		}
		name := rest[open+1 : open+end]
		value := params[name]
		if value == "" {
			return "", fmt.Errorf("%w: %s in %s", ErrMissingPathParam, name, template)
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(value))
		rest = rest[open+end+1:]
	}
	return b.String(), nil
}

func pathParams(req any) map[string]string {
	v := reflect.ValueOf(req)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	params := make(map[string]string)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, ok := f.Tag.Lookup("path")
		if !ok || !f.IsExported() {
			continue
		}
		params[name] = fmt.Sprint(v.Field(i).Interface())
	}
	return params
}
