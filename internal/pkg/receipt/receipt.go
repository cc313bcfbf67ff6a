package receipt

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// suffixLength is the number of random characters appended to a receipt
// number. Combined with the millisecond timestamp this keeps collision
// probability negligible.
const suffixLength = 6

// NewNumber generates a human-readable receipt number of the form
// SSFOWA-<unix-millis>-<6 random alphanumerics>. Assigned once at payment
// initiation and never reused.
func NewNumber() string {
	return fmt.Sprintf("SSFOWA-%d-%s", time.Now().UnixMilli(), randomSuffix(suffixLength))
}

// NewOrderRef generates an opaque order reference for the external payment
// gateway.
func NewOrderRef() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "order_" + id[:16]
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// a uuid-derived suffix rather than panicking in a hot path.
		u := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
		return u[:n]
	}
	for i, b := range buf {
		buf[i] = suffixCharset[int(b)%len(suffixCharset)]
	}
	return string(buf)
}
