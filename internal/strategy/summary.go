package strategy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rohmanhakim/element-locator/pkg/hashutil"
)

const (
	summaryListed   = 5
	summaryValueCap = 50
)

// Summary renders a short human-readable listing of a strategy list.
func Summary(list []Strategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generated %d selector strategies:", len(list))
	for i, s := range list {
		if i == summaryListed {
			break
		}
		fmt.Fprintf(&b, "\n  %d. [priority %d] %s: %s", i+1, s.Priority(), s.Kind(), ellipsize(s.Value(), summaryValueCap))
	}
	if len(list) > summaryListed {
		fmt.Fprintf(&b, "\n  ... and %d more", len(list)-summaryListed)
	}
	return b.String()
}

func ellipsize(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Fingerprint identifies a strategy list by the hash of its wire form.
// encoding/json sorts map keys, so equal lists give equal fingerprints.
func Fingerprint(list []Strategy, algo hashutil.HashAlgo) (string, error) {
	data, err := json.Marshal(EncodeAll(list))
	if err != nil {
		return "", &StrategyError{Message: err.Error(), Cause: ErrCauseEncodeFailure}
	}
	return hashutil.HashBytes(data, algo)
}
