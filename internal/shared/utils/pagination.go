package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultListCount is the page size when count is not given.
	DefaultListCount = 10
	// MaxListCount caps count.
	MaxListCount = 100
)

// Window holds parsed count/offset list parameters.
type Window struct {
	Count  int
	Offset int
}

// ValidateWindow normalizes list parameters.
// Count defaults to DefaultListCount if less than 1, and is capped at MaxListCount.
// Offset is clamped at 0.
func ValidateWindow(count, offset int) Window {
	if count < 1 {
		count = DefaultListCount
	}
	if count > MaxListCount {
		count = MaxListCount
	}
	if offset < 0 {
		offset = 0
	}
	return Window{Count: count, Offset: offset}
}

// ParseWindow parses count and offset from the Gin context query string.
func ParseWindow(c *gin.Context) Window {
	return ValidateWindow(parseQueryInt(c, "count", DefaultListCount), parseQueryInt(c, "offset", 0))
}

// parseQueryInt parses an integer query parameter with a default value.
func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// ApplyWindow calculates slice indices for a window.
// Returns (start, end) indices for slicing: slice[start:end]
func ApplyWindow(total int, w Window) (start, end int) {
	start = min(max(w.Offset, 0), total)
	end = start + min(max(w.Count, 0), total-start)
	return start, end
}
