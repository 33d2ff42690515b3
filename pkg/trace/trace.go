package trace

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// Header carries the trace ID on requests and responses.
const Header = "X-Trace-ID"

const (
	prefix       = "mt"
	randomLength = 9
	maxIDLength  = 128
)

// New generates a trace identifier of the form
// mt_<epochMillis>_<9-char base36>. The format sorts roughly by time and
// stays safe to echo into headers and log pipelines.
func New() string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)

	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + len(millis) + 1 + randomLength)
	sb.WriteString(prefix)
	sb.WriteByte('_')
	sb.WriteString(millis)
	sb.WriteByte('_')
	for range randomLength {
		sb.WriteByte(base36[rand.IntN(len(base36))])
	}
	return sb.String()
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Valid reports whether an upstream-supplied trace ID is safe to adopt.
// Anything overlong or containing unexpected characters is replaced with a
// fresh ID rather than propagated.
func Valid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}
