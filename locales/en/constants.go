// Package en is the English locale: vocabulary, parsers and the refiners
// that only make sense for English phrasing.
package en

import (
	"strconv"
	"strings"
	"time"

	"go_chrono/pattern"
	"go_chrono/timeunits"
)

var WeekdayDictionary = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday, "sun.": time.Sunday,
	"monday": time.Monday, "mon": time.Monday, "mon.": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tue.": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "wed.": time.Wednesday,
	"thursday": time.Thursday, "thurs": time.Thursday, "thurs.": time.Thursday,
	"thur": time.Thursday, "thur.": time.Thursday, "thu": time.Thursday, "thu.": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "fri.": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday, "sat.": time.Saturday,
}

var FullMonthDictionary = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

var MonthDictionary = func() map[string]time.Month {
	out := map[string]time.Month{
		"jan": time.January, "jan.": time.January, "feb": time.February, "feb.": time.February,
		"mar": time.March, "mar.": time.March, "apr": time.April, "apr.": time.April,
		"jun": time.June, "jun.": time.June, "jul": time.July, "jul.": time.July,
		"aug": time.August, "aug.": time.August, "sep": time.September, "sep.": time.September,
		"sept": time.September, "sept.": time.September, "oct": time.October, "oct.": time.October,
		"nov": time.November, "nov.": time.November, "dec": time.December, "dec.": time.December,
	}
	for k, v := range FullMonthDictionary {
		out[k] = v
	}
	return out
}()

var IntegerWordDictionary = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// OrdinalWordDictionary covers "first" through "thirty-first", with the
// compound forms written hyphenated or spaced.
var OrdinalWordDictionary = func() map[string]int {
	units := []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth"}
	out := map[string]int{
		"tenth": 10, "eleventh": 11, "twelfth": 12, "thirteenth": 13, "fourteenth": 14,
		"fifteenth": 15, "sixteenth": 16, "seventeenth": 17, "eighteenth": 18,
		"nineteenth": 19, "twentieth": 20, "thirtieth": 30,
	}
	for i, u := range units {
		out[u] = i + 1
		for _, sep := range []string{"-", " "} {
			out["twenty"+sep+u] = 20 + i + 1
		}
	}
	out["thirty-first"], out["thirty first"] = 31, 31
	return out
}()

var TimeUnitDictionaryNoAbbr = timeunits.Dictionary{
	"millisecond": timeunits.Millisecond, "milliseconds": timeunits.Millisecond,
	"second": timeunits.Second, "seconds": timeunits.Second,
	"minute": timeunits.Minute, "minutes": timeunits.Minute,
	"hour": timeunits.Hour, "hours": timeunits.Hour,
	"day": timeunits.Day, "days": timeunits.Day,
	"week": timeunits.Week, "weeks": timeunits.Week,
	"month": timeunits.Month, "months": timeunits.Month,
	"quarter": timeunits.Quarter, "quarters": timeunits.Quarter,
	"year": timeunits.Year, "years": timeunits.Year,
}

var TimeUnitDictionary = func() timeunits.Dictionary {
	out := timeunits.Dictionary{
		"ms": timeunits.Millisecond,
		"s":  timeunits.Second, "sec": timeunits.Second,
		"m": timeunits.Minute, "min": timeunits.Minute, "mins": timeunits.Minute,
		"h": timeunits.Hour, "hr": timeunits.Hour, "hrs": timeunits.Hour,
		"d": timeunits.Day,
		"w": timeunits.Week,
		"mo": timeunits.Month, "mon": timeunits.Month, "mos": timeunits.Month,
		"qtr": timeunits.Quarter,
		"y": timeunits.Year, "yr": timeunits.Year,
	}
	for k, v := range TimeUnitDictionaryNoAbbr {
		out[k] = v
	}
	return out
}()

// NumberExpr matches a quantity written as digits, a number word or a
// fuzzy amount ("a few", "half an", "a couple of").
var NumberExpr = `(?:` + pattern.MatchAny(IntegerWordDictionary) +
	`|[0-9]+(?:\.[0-9]+)?|half(?:\s{0,2}an?)?|an?\b(?:\s{0,2}few)?|few|several|the|a?\s{0,2}couple\s{0,2}(?:of)?)`

// ParseNumber reads text matched by NumberExpr.
func ParseNumber(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := IntegerWordDictionary[s]; ok {
		return float64(v), true
	}
	switch {
	case s == "a" || s == "an" || s == "the":
		return 1, true
	case strings.Contains(s, "few"):
		return 3, true
	case strings.Contains(s, "half"):
		return 0.5, true
	case strings.Contains(s, "couple"):
		return 2, true
	case strings.Contains(s, "several"):
		return 7, true
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

var OrdinalExpr = `(?:` + pattern.MatchAny(OrdinalWordDictionary) + `|[0-9]{1,2}(?:st|nd|rd|th)?)`

// ParseOrdinal reads "3rd", "21" or "twenty-first".
func ParseOrdinal(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := OrdinalWordDictionary[s]; ok {
		return v
	}
	s = strings.TrimRight(s, "stndrh")
	n, _ := strconv.Atoi(s)
	return n
}

var YearExpr = `(?:[1-9][0-9]{0,3}\s{0,2}(?:BE|AD|BC|BCE|CE)|[1-2][0-9]{3}|[5-9][0-9]|2[0-5])`

// ParseYear reads a year with an optional era. Two-digit years above 50
// are in the 1900s, the rest in the 2000s.
func ParseYear(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	digits := strings.TrimSpace(strings.TrimRight(s, "ABCDE"))
	n, _ := strconv.Atoi(digits)
	switch {
	case strings.HasSuffix(s, "BE"):
		return n - 543
	case strings.HasSuffix(s, "BCE"), strings.HasSuffix(s, "BC"):
		return -n
	case strings.HasSuffix(s, "AD"), strings.HasSuffix(s, "CE"):
		return n
	}
	if n < 100 {
		if n > 50 {
			return n + 1900
		}
		return n + 2000
	}
	return n
}

var vocabulary = timeunits.Vocabulary{
	NumberExpr:  NumberExpr,
	ParseNumber: ParseNumber,
	Separator:   `\s{0,5},?(?:\s*and)?\s{0,5}`,
	Lead:        `about|around`,
}

// TimeUnits reads every unit word, including abbreviations like "hr".
var TimeUnits = func() *timeunits.Parser {
	v := vocabulary
	v.Units = TimeUnitDictionary
	return timeunits.MustParser(v)
}()

// StrictTimeUnits reads full unit words only.
var StrictTimeUnits = func() *timeunits.Parser {
	v := vocabulary
	v.Units = TimeUnitDictionaryNoAbbr
	return timeunits.MustParser(v)
}()

// ParseTimeUnits parses with the lenient vocabulary.
func ParseTimeUnits(s string) timeunits.TimeUnits { return TimeUnits.Parse(s) }
