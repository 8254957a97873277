// Package id mints Stripe-style object identifiers such as "ch_xK9mP2vL3nQa".
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the length of the random part of an ID
	DefaultLength = 14
)

// Object prefixes used by the API.
const (
	PrefixCharge       = "ch"
	PrefixCustomer     = "cus"
	PrefixCard         = "card"
	PrefixSubscription = "sub"
	PrefixInvoice      = "in"
	PrefixLineItem     = "ii"
	PrefixDiscount     = "di"
	PrefixBalanceTxn   = "txn"
)

// Generate creates a cryptographically random Base62 string.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// New returns "prefix_<random>" and panics if the system random source fails.
func New(prefix string) string {
	short, err := Generate(DefaultLength)
	if err != nil {
		panic(err)
	}
	return prefix + "_" + short
}

// ParsePrefixedID splits "cus_abc" into ("cus", "abc").
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	parts := strings.SplitN(prefixedID, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return parts[0], parts[1], nil
}

// HasPrefix reports whether prefixedID is a well formed ID of the given kind.
func HasPrefix(prefixedID, prefix string) bool {
	p, _, err := ParsePrefixedID(prefixedID)
	return err == nil && p == prefix
}
