package admission

import (
	"fmt"
	"math/rand"
	"time"
)

const refNoPrefix = "APP"

// NewRefNo returns an external-facing reference code of the form
// APP-YY-NNNNNN. The six-digit suffix is drawn uniformly from
// [100000, 999999]; uniqueness is left to the store's constraint.
func NewRefNo(now time.Time) string {
	suffix := 100000 + rand.Intn(900000)
	return fmt.Sprintf("%s-%02d-%06d", refNoPrefix, now.Year()%100, suffix)
}
