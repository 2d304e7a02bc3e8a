package en

import (
	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/refining"
)

const (
	dateTimeConnector  = `^\s*(T|at|after|before|on|of|,|-|\.|∙|:)?\s*$`
	dateRangeConnector = `^\s*(to|-|–|until|through|till)\s*$`
)

var (
	mergeDateTime         = refining.NewMergeDateTime(dateTimeConnector)
	mergeDateRange        = refining.NewMergeDateRange(dateRangeConnector)
	extractTimezoneOffset = refining.NewExtractTimezoneOffset(pattern.MatchAny(TimeUnitDictionary))
)

// Parsers lists the English parsers. Strict mode leaves out the casual
// vocabulary (today, this morning, next week, +2 days).
func Parsers(strict bool) []parsing.Parser {
	ps := []parsing.Parser{
		parsing.ISOFormatParser,
		YearMonthDayParser,
		SlashDateParser,
		TimeUnitWithinParser,
		MonthNameLittleEndianParser,
		MonthNameMiddleEndianParser,
		WeekdayParser,
		SlashMonthParser,
		TimeExpressionParser,
		TimeUnitAgoParser,
		TimeUnitLaterParser,
	}
	if strict {
		return ps
	}
	return append(ps,
		CasualDateParser,
		CasualTimeParser,
		RelativeDateFormatParser,
		TimeUnitCasualRelativeParser,
	)
}

// Refiners lists the English refiners in the order they run.
func Refiners() []refining.Refiner {
	return []refining.Refiner{
		refining.OverlapRemoval,
		MergeRelativeAfterDate,
		MergeRelativeFollowByDate,
		refining.OverlapRemoval,
		extractTimezoneOffset,
		refining.MergeWeekday,
		mergeDateTime,
		refining.ExtractTimezoneAbbr,
		refining.OverlapRemoval,
		mergeDateRange,
		refining.UnlikelyFormatFilter,
	}
}
