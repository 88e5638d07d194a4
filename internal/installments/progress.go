package installments

import (
	"fmt"
	"strconv"
	"strings"
)

// Progress is the position of one parcel within its group.
type Progress struct {
	Current int
	Total   int
}

// Label renders the display form of a parcel position, e.g. "2/10".
func Label(current, total int) string {
	return fmt.Sprintf("%d/%d", current, total)
}

// ParseProgress parses a "current/total" display label. It tolerates
// surrounding whitespace. Returns false for anything else.
func ParseProgress(s string) (Progress, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return Progress{}, false
	}
	current, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Progress{}, false
	}
	total, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Progress{}, false
	}
	if current < 1 || total < 1 {
		return Progress{}, false
	}
	return Progress{Current: current, Total: total}, true
}
