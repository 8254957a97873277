package fakeapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/stripegate/sdk/stripe"
)

// value reads key from the form body, falling back to the query string.
func value(c *gin.Context, key string) (string, bool) {
	if v, ok := c.GetPostForm(key); ok {
		return v, true
	}
	return c.GetQuery(key)
}

func stringParam(c *gin.Context, key string) string {
	v, _ := value(c, key)
	return v
}

func requiredString(c *gin.Context, key string) (string, *stripe.Error) {
	v, ok := value(c, key)
	if !ok || v == "" {
		return "", missingParam(key)
	}
	return v, nil
}

// int64Param returns nil when key is absent.
func int64Param(c *gin.Context, key string) (*int64, *stripe.Error) {
	v, ok := value(c, key)
	if !ok || v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, invalidParam(key, "Invalid integer: %s", v)
	}
	return &n, nil
}

func intParam(c *gin.Context, key string) (*int, *stripe.Error) {
	n, apiErr := int64Param(c, key)
	if apiErr != nil || n == nil {
		return nil, apiErr
	}
	i := int(*n)
	return &i, nil
}

func boolParam(c *gin.Context, key string) (*bool, *stripe.Error) {
	v, ok := value(c, key)
	if !ok || v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, invalidParam(key, "Invalid boolean: %s", v)
	}
	return &b, nil
}

func timeParam(c *gin.Context, key string) (*time.Time, *stripe.Error) {
	n, apiErr := int64Param(c, key)
	if apiErr != nil || n == nil {
		return nil, apiErr
	}
	t := time.Unix(*n, 0).UTC()
	return &t, nil
}

// mapParam collects key[sub]=v pairs from the body or the query string.
func mapParam(c *gin.Context, key string) map[string]string {
	if m := c.PostFormMap(key); len(m) > 0 {
		return m
	}
	if m := c.QueryMap(key); len(m) > 0 {
		return m
	}
	return nil
}

// createdFilter reads created[gt], created[gte], created[lt] and created[lte].
type createdFilter struct {
	gt, gte, lt, lte *int64
}

func parseCreated(c *gin.Context) (createdFilter, *stripe.Error) {
	var f createdFilter
	for op, dst := range map[string]**int64{"gt": &f.gt, "gte": &f.gte, "lt": &f.lt, "lte": &f.lte} {
		key := "created[" + op + "]"
		v, apiErr := int64Param(c, key)
		if apiErr != nil {
			return f, apiErr
		}
		*dst = v
	}
	return f, nil
}

func (f createdFilter) match(ts stripe.Timestamp) bool {
	sec := ts.Unix()
	switch {
	case f.gt != nil && sec <= *f.gt:
		return false
	case f.gte != nil && sec < *f.gte:
		return false
	case f.lt != nil && sec >= *f.lt:
		return false
	case f.lte != nil && sec > *f.lte:
		return false
	}
	return true
}
