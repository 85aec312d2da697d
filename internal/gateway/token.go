package gateway

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// transactionID renders PREFIX_<token>_<unix seconds>. ULIDs are unique per
// process even within the same millisecond.
func transactionID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d", prefix, ulid.Make().String(), now.Unix())
}

func defaultRoll() float64 {
	return rand.Float64()
}
