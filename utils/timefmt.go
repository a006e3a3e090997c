// SPDX-License-Identifier: MIT

package utils

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// period is one unit of FormatDuration's breakdown.
type period struct {
	name    string
	seconds int64
}

// periods from largest to smallest; a "month" is 30 days, a "year" 365.
var periods = []period{
	{"year", 60 * 60 * 24 * 365},
	{"month", 60 * 60 * 24 * 30},
	{"day", 60 * 60 * 24},
	{"hour", 60 * 60},
	{"minute", 60},
	{"second", 1},
}

// FormatDuration renders d for display as "2 days, 1 hour, 5 seconds".
// Only whole seconds count. A unit is used only when the remaining seconds
// strictly exceed it, so exactly 60s renders as "60 seconds" and exactly 1s
// as "".
func FormatDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	var parts []string
	for _, p := range periods {
		if seconds <= p.seconds {
			continue
		}
		value := seconds / p.seconds
		seconds %= p.seconds
		if value == 1 {
			parts = append(parts, fmt.Sprintf("%d %s", value, p.name))
		} else {
			parts = append(parts, fmt.Sprintf("%d %ss", value, p.name))
		}
	}

	return strings.Join(parts, ", ")
}

// windowsStatOverhead is subtracted from timings on Windows, where stat-ing
// files adds roughly a tenth of a second.
const windowsStatOverhead = 0.1

// ShortFormatTime renders a duration in seconds as "%4.1fmin" above one minute
// and " %5.1fs" otherwise.
func ShortFormatTime(seconds float64) string {
	return shortFormatTime(seconds, runtime.GOOS)
}

func shortFormatTime(seconds float64, goos string) string {
	if goos == "windows" {
		seconds = max(0, seconds-windowsStatOverhead)
	}
	if seconds > 60 {
		return fmt.Sprintf("%4.1fmin", seconds/60)
	}

	return fmt.Sprintf(" %5.1fs", seconds)
}

// CurrentPrettyTime renders now as "October 18, 2026  3:04 PM": full month,
// zero-padded day, and a space-padded 12-hour clock.
func CurrentPrettyTime(now time.Time) string {
	hour := now.Hour() % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%s %2d:%s", now.Format("January 02, 2006"), hour, now.Format("04 PM"))
}
