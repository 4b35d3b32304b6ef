package call

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FirstCallTime computes when the first reminder call for a medication
// should happen: today at the given HH:MM wall-clock time, or the next
// calendar day when that instant is not strictly after now.
func FirstCallTime(now time.Time, reminderTime string) (time.Time, error) {
	parts := strings.SplitN(reminderTime, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid reminder time %q", reminderTime)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reminder time %q", reminderTime)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reminder time %q", reminderTime)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return time.Time{}, fmt.Errorf("invalid reminder time %q", reminderTime)
	}

	first := time.Date(now.Year(), now.Month(), now.Day(), hours, minutes, 0, 0, now.Location())
	if !first.After(now) {
		first = first.AddDate(0, 0, 1)
	}
	return first, nil
}
