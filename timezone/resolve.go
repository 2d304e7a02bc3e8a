package timezone

import (
	"strconv"
	"strings"
	"time"

	"go_chrono/pattern"
)

// Overrides are caller-supplied rules. They take precedence over the
// built-in table for a single parse and are never stored globally.
type Overrides map[string]Rule

var numericOffset = pattern.MustCompile(`^([+-])(\d{1,2})(?::?(\d{2}))?$`, 0)

// Resolve returns the offset in minutes for token at the wall-clock time.
// The lookup order is: overrides, the built-in table, the abbreviation
// database (upper-case tokens only), then a numeric [+-]HH(:?MM)? offset.
func Resolve(token string, wall time.Time, overrides Overrides) (int, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	if rule, ok := lookupOverride(token, overrides); ok {
		return rule.OffsetAt(wall), true
	}
	upper := strings.ToUpper(token)
	if rule, ok := Builtin()[upper]; ok {
		return rule.OffsetAt(wall), true
	}
	if isUpper(token) {
		if minutes, ok := lookupFallback(token); ok {
			return minutes, true
		}
	}
	return ParseNumericOffset(token)
}

// InOverrides reports whether the token names a caller-supplied rule.
func InOverrides(token string, overrides Overrides) bool {
	_, ok := lookupOverride(token, overrides)
	return ok
}

func lookupOverride(token string, overrides Overrides) (Rule, bool) {
	if len(overrides) == 0 {
		return nil, false
	}
	if rule, ok := overrides[token]; ok && rule != nil {
		return rule, true
	}
	rule, ok := overrides[strings.ToUpper(token)]
	return rule, ok && rule != nil
}

// ParseNumericOffset parses "+09:00", "-0530" or "+9". Offsets beyond
// fourteen hours are rejected.
func ParseNumericOffset(token string) (int, bool) {
	m := numericOffset.FindAt(token, 0)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m.Group(2))
	minutes := 0
	if m.HasGroup(3) {
		minutes, _ = strconv.Atoi(m.Group(3))
	}
	if minutes >= 60 {
		return 0, false
	}
	total := hours*60 + minutes
	if total > MaxOffset {
		return 0, false
	}
	if m.Group(1) == "-" {
		total = -total
	}
	return total, true
}

// Location resolves a zone name for a reference instant. It accepts an
// abbreviation or numeric offset (resolved at the instant) and falls back to
// an IANA name.
func Location(name string, instant time.Time, overrides Overrides) (*time.Location, error) {
	if minutes, ok := Resolve(name, instant, overrides); ok {
		return FixedZone(minutes), nil
	}
	return time.LoadLocation(name)
}

// FixedZone returns a location with a constant offset in minutes.
func FixedZone(minutes int) *time.Location {
	sign := "+"
	m := minutes
	if m < 0 {
		sign = "-"
		m = -m
	}
	return time.FixedZone(sign+pad2(m/60)+":"+pad2(m%60), minutes*60)
}

// OffsetOf reports the offset of t in minutes.
func OffsetOf(t time.Time) int {
	_, seconds := t.Zone()
	return seconds / 60
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
