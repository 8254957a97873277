package fakeapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/stripegate/sdk/stripe"
)

func missingParam(name string) *stripe.Error {
	return &stripe.Error{
		Type:           stripe.ErrorTypeInvalidRequest,
		Message:        fmt.Sprintf("Missing required param: %s.", name),
		Code:           stripe.ErrorCodeMissing,
		Param:          name,
		HTTPStatusCode: http.StatusBadRequest,
	}
}

func invalidParam(name, format string, args ...any) *stripe.Error {
	return &stripe.Error{
		Type:           stripe.ErrorTypeInvalidRequest,
		Message:        fmt.Sprintf(format, args...),
		Param:          name,
		HTTPStatusCode: http.StatusBadRequest,
	}
}

// noSuch reports an unknown object. Objects named by the path are a 404;
// objects referenced by a parameter are a 400 naming that parameter.
func noSuch(kind, id, param string) *stripe.Error {
	status := http.StatusNotFound
	if param != "id" {
		status = http.StatusBadRequest
	}
	return &stripe.Error{
		Type:           stripe.ErrorTypeInvalidRequest,
		Message:        fmt.Sprintf("No such %s: %s", kind, id),
		Code:           stripe.ErrorCodeResourceMissing,
		Param:          param,
		HTTPStatusCode: status,
	}
}

func cardError(code stripe.ErrorCode, param, message string) *stripe.Error {
	return &stripe.Error{
		Type:           stripe.ErrorTypeCard,
		Message:        message,
		Code:           code,
		Param:          param,
		HTTPStatusCode: http.StatusPaymentRequired,
	}
}

func unauthorized(message string) *stripe.Error {
	return &stripe.Error{
		Type:           stripe.ErrorTypeInvalidRequest,
		Message:        message,
		HTTPStatusCode: http.StatusUnauthorized,
	}
}

// writeError aborts the request with the API's {"error": {...}} envelope.
func writeError(c *gin.Context, apiErr *stripe.Error) {
	c.AbortWithStatusJSON(apiErr.HTTPStatusCode, gin.H{"error": apiErr})
}
