package globalord

import (
	"github.com/hupe1980/globalord/ordinals"
)

// ErrUnsupported signals a deliberately unprovided operation, such as
// constructing a sort comparator from global ordinals. Branch on it with
// errors.Is; it is never a failure.
var ErrUnsupported = ordinals.ErrUnsupported

// UnsortedTermsError re-exports the builder's contract-violation error
// for callers that do not import the ordinals package directly.
type UnsortedTermsError = ordinals.UnsortedTermsError

// OrdinalOutOfRangeError re-exports the out-of-range lookup error.
type OrdinalOutOfRangeError = ordinals.OrdinalOutOfRangeError
