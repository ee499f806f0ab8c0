package attachment

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/hub/tangle"
)

// zeroValueTransactionLength is the fixed width of one transaction's
// trytes in the ledger's wire format, the same width splitTrytes in
// store/postgres.go uses.
const zeroValueTransactionLength = 2673

// buildPromotionTransaction constructs the unsigned trytes of a single
// zero-value transaction addressed to address, timestamped at issuedAt,
// for attaching as spam alongside a stalled tail to raise its
// cumulative weight. Address derivation and bundle signing for real
// value transfers are external collaborators; a promotion transaction
// carries no value and needs neither.
func buildPromotionTransaction(address string, issuedAt time.Time) tangle.Trytes {
	padded := fmt.Sprintf("%-81s", address)[:81]
	body := padded + "999999999999999999999999999" // value = 0, trytes-encoded
	body += fmt.Sprintf("%09d", issuedAt.Unix())
	for len(body) < zeroValueTransactionLength {
		body += "9"
	}
	return tangle.Trytes(body[:zeroValueTransactionLength])
}
