package utils

import "strings"

// MaskSecret masks an API key for safe logging, keeping its mode prefix
// and last four characters.
// Example: "sk_test_4eC39HqLyjWDarjtT1zdp7dc" -> "sk_test_***p7dc"
func MaskSecret(key string) string {
	if key == "" {
		return ""
	}
	prefix := ""
	for _, p := range []string{"sk_test_", "sk_live_", "pk_test_", "pk_live_", "rk_test_", "rk_live_"} {
		if strings.HasPrefix(key, p) {
			prefix = p
			break
		}
	}
	rest := strings.TrimPrefix(key, prefix)
	if len(rest) <= 4 {
		return prefix + "***"
	}
	return prefix + "***" + rest[len(rest)-4:]
}
