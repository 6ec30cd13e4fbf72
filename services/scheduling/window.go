package scheduling

import (
	"fmt"
	"strings"
)

// Fallback defaults applied when a provider's declaration is malformed or
// missing: availability degrades, it never fails for bad configuration.
const (
	DefaultWindowStart = 9 * 60  // 09:00
	DefaultWindowEnd   = 17 * 60 // 17:00
	DefaultSlotMinutes = 30
)

// WorkingWindow is a provider's working window for one day, parsed once at
// the data-access boundary. Start and End are minutes from midnight.
type WorkingWindow struct {
	Start       int
	End         int
	DurationMin int
}

// Contains reports whether the bucket [start, end) lies inside the window.
func (w WorkingWindow) Contains(start, end int) bool {
	return start >= w.Start && end <= w.End
}

// ParseWindow parses a "HH:MM-HH:MM" declaration. A malformed or empty
// window falls back to 09:00-17:00, a non-positive duration to 30 minutes.
func ParseWindow(window string, durationMin int) WorkingWindow {
	if durationMin <= 0 {
		durationMin = DefaultSlotMinutes
	}
	w := WorkingWindow{Start: DefaultWindowStart, End: DefaultWindowEnd, DurationMin: durationMin}

	parts := strings.SplitN(window, "-", 2)
	if len(parts) != 2 {
		return w
	}
	start, err1 := ParseClock(strings.TrimSpace(parts[0]))
	end, err2 := ParseClock(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || end <= start {
		return w
	}
	w.Start = start
	w.End = end
	return w
}

// ParseClock parses "HH:MM" into minutes from midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// BucketLabel renders a bucket as "HH:MM-HH:MM", the wire format the
// front-desk UI displays.
func BucketLabel(start, end int) string {
	return FormatClock(start) + "-" + FormatClock(end)
}
