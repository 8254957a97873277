package stripe

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/stripe/stripe-go/form"
)

var (
	timeType      = reflect.TypeOf(time.Time{})
	timestampType = reflect.TypeOf(Timestamp{})
)

// Encoding is the serialization configuration applied to one request.
// It is a plain value: a Gateway holds its own copy and hands it to every
// call, so two gateways with different encodings never observe each other.
type Encoding struct {
	// FieldName maps a Go field name to its wire key when the field has no
	// `form` tag. Nil means SnakeCase.
	FieldName func(string) string

	// FormatTime renders time.Time and Timestamp values. Nil means UnixSeconds.
	FormatTime func(time.Time) string
}

// DefaultEncoding is snake_case keys and epoch-second timestamps.
func DefaultEncoding() Encoding {
	return Encoding{FieldName: SnakeCase, FormatTime: UnixSeconds}
}

// UnixSeconds formats t as the number of seconds since the Unix epoch.
func UnixSeconds(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// SnakeCase converts a Go identifier to lowercase_underscore form, keeping
// acronyms together: CustomerID -> customer_id, AddressLine1 -> address_line1,
// CVCCheck -> cvc_check.
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Values flattens req into form values. Path-only fields (tagged `path`)
// and fields tagged `form:"-"` are skipped. Nested structs and maps become
// parent[child] keys, slices parent[i]. Nil pointers, empty strings and
// zero scalars are omitted; a non-nil pointer is always emitted, so an
// explicit false or 0 can be sent.
func (e Encoding) Values(req any) (*form.Values, error) {
	values := &form.Values{}

	v := reflect.ValueOf(req)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return values, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: request %s is not a struct", ErrUnsupportedField, v.Type())
	}

	if err := e.appendStruct(values, nil, v); err != nil {
		return nil, err
	}
	return values, nil
}

// Encode is Values followed by form encoding.
func (e Encoding) Encode(req any) (string, error) {
	values, err := e.Values(req)
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

func (e Encoding) fieldName(name string) string {
	if e.FieldName == nil {
		return SnakeCase(name)
	}
	return e.FieldName(name)
}

func (e Encoding) formatTime(t time.Time) string {
	if e.FormatTime == nil {
		return UnixSeconds(t)
	}
	return e.FormatTime(t)
}

func (e Encoding) appendStruct(values *form.Values, prefix []string, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if _, ok := f.Tag.Lookup("path"); ok {
			continue
		}

		name := f.Tag.Get("form")
		if name == "-" {
			continue
		}

		field := v.Field(i)
		if f.Anonymous && name == "" && field.Kind() == reflect.Struct {
			if err := e.appendStruct(values, prefix, field); err != nil {
				return err
			}
			continue
		}

		if name == "" {
			name = e.fieldName(f.Name)
		}
		if err := e.appendValue(values, withKey(prefix, name), field, false); err != nil {
			return err
		}
	}
	return nil
}

func (e Encoding) appendValue(values *form.Values, key []string, v reflect.Value, explicit bool) error {
	switch v.Type() {
	case timeType:
		return e.appendTime(values, key, v.Interface().(time.Time), explicit)
	case timestampType:
		return e.appendTime(values, key, v.Interface().(Timestamp).Time, explicit)
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return e.appendValue(values, key, v.Elem(), true)

	case reflect.String:
		if s := v.String(); s != "" || explicit {
			values.Add(form.FormatKey(key), s)
		}

	case reflect.Bool:
		if b := v.Bool(); b || explicit {
			values.Add(form.FormatKey(key), strconv.FormatBool(b))
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n := v.Int(); n != 0 || explicit {
			values.Add(form.FormatKey(key), strconv.FormatInt(n, 10))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n := v.Uint(); n != 0 || explicit {
			values.Add(form.FormatKey(key), strconv.FormatUint(n, 10))
		}

	case reflect.Float32, reflect.Float64:
		if f := v.Float(); f != 0 || explicit {
			values.Add(form.FormatKey(key), strconv.FormatFloat(f, 'f', -1, 64))
		}

	case reflect.Struct:
		return e.appendStruct(values, key, v)

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: %s has non-string map keys", ErrUnsupportedField, form.FormatKey(key))
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			if err := e.appendValue(values, withKey(key, k.String()), v.MapIndex(k), true); err != nil {
				return err
			}
		}

	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := e.appendValue(values, withKey(key, strconv.Itoa(i)), v.Index(i), true); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("%w: %s of kind %s", ErrUnsupportedField, form.FormatKey(key), v.Kind())
	}
	return nil
}

func (e Encoding) appendTime(values *form.Values, key []string, t time.Time, explicit bool) error {
	if t.IsZero() && !explicit {
		return nil
	}
	values.Add(form.FormatKey(key), e.formatTime(t))
	return nil
}

func withKey(prefix []string, part string) []string {
	key := make([]string, len(prefix), len(prefix)+1)
	copy(key, prefix)
	return append(key, part)
}
