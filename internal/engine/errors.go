package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

// ErrMissingTravelEstimate signals that a mosque has no routing result.
// The caller reports the mosque as unknown rather than guessing.
var ErrMissingTravelEstimate = errors.New("missing travel estimate")

// InvalidScheduleError rejects a malformed day. Kinds names the
// offending prayers so the caller can substitute defaults for exactly
// those and retry once.
type InvalidScheduleError struct {
	Kinds  []model.PrayerKind
	Reason string
	// Sunrise marks ordering violations caused by the Shorooq time, so
	// the retry can drop it instead of substituting prayer times.
	Sunrise bool
}

func (e *InvalidScheduleError) Error() string {
	names := make([]string, 0, len(e.Kinds))
	for _, k := range e.Kinds {
		names = append(names, string(k))
	}
	return fmt.Sprintf("invalid schedule ordering (%s): %s", strings.Join(names, ", "), e.Reason)
}

// AsInvalidSchedule unwraps err into an InvalidScheduleError, if it is one.
func AsInvalidSchedule(err error) (*InvalidScheduleError, bool) {
	var ise *InvalidScheduleError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
