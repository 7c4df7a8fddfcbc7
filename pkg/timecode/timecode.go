package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Timecode is a parsed subtitle timestamp. Raw keeps the text as it appeared in the file.
type Timecode struct {
	Raw     string
	Seconds float64
}

var errInvalid = errors.New("invalid timecode")

// maxHours bounds the hour field so the millisecond total cannot overflow.
const maxHours = 99_999

// Parse converts "H:MM:SS,mmm", "H:MM:SS.mmm" or the WebVTT short form "MM:SS.mmm" into seconds.
func Parse(s string) (Timecode, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Timecode{}, errInvalid
	}

	clock, frac, hasFrac := strings.Cut(strings.Replace(raw, ",", ".", 1), ".")
	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Timecode{}, fmt.Errorf("%w: %q", errInvalid, raw)
	}

	var h, m, sec int
	var err error
	if len(parts) == 3 {
		if h, err = atoi(parts[0]); err != nil || h > maxHours {
			return Timecode{}, fmt.Errorf("%w: hours in %q", errInvalid, raw)
		}
		parts = parts[1:]
	}
	if m, err = atoi(parts[0]); err != nil || m > 59 {
		return Timecode{}, fmt.Errorf("%w: minutes in %q", errInvalid, raw)
	}
	if sec, err = atoi(parts[1]); err != nil || sec > 59 {
		return Timecode{}, fmt.Errorf("%w: seconds in %q", errInvalid, raw)
	}

	ms := 0
	if hasFrac {
		if frac == "" || len(frac) > 3 {
			return Timecode{}, fmt.Errorf("%w: milliseconds in %q", errInvalid, raw)
		}
		if ms, err = atoi(frac); err != nil {
			return Timecode{}, fmt.Errorf("%w: milliseconds in %q", errInvalid, raw)
		}
		// "1.5" means 500ms
		for i := len(frac); i < 3; i++ {
			ms *= 10
		}
	}

	total := h*3_600_000 + m*60_000 + sec*1000 + ms
	return Timecode{Raw: raw, Seconds: float64(total) / 1000}, nil
}

// FromSeconds builds a Timecode whose Raw form uses sep between seconds and milliseconds.
func FromSeconds(seconds float64, sep string) Timecode {
	return Timecode{Raw: Format(seconds, sep), Seconds: Round(seconds)}
}

// Format renders seconds as HH:MM:SS<sep>mmm. Negative values clamp to zero.
func Format(seconds float64, sep string) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(math.Round(seconds * 1000))
	h := total / 3_600_000
	total -= h * 3_600_000
	m := total / 60_000
	total -= m * 60_000
	s := total / 1000
	ms := total - s*1000
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", h, m, s, sep, ms)
}

// Between returns end - start rounded to the millisecond.
func Between(start, end Timecode) float64 {
	return Round(end.Seconds - start.Seconds)
}

// Round rounds seconds to millisecond precision.
func Round(seconds float64) float64 {
	return math.Round(seconds*1000) / 1000
}

func (t Timecode) String() string {
	if t.Raw != "" {
		return t.Raw
	}
	return Format(t.Seconds, ",")
}

func atoi(s string) (int, error) {
	if s == "" {
		return 0, errInvalid
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errInvalid
		}
	}
	return strconv.Atoi(s)
}
