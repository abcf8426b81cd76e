package rules

import (
	"strings"
	"time"
)

// ExpandNameTemplate substitutes the folder-rename tokens in a name
// template: {OriginalName}, {JJJJ} (year), {MM} (month), {TT} (day) and
// {JJJJ-MM}. An empty template defaults to {OriginalName}. Date tokens
// substitute to blank when no timestamp is available.
func ExpandNameTemplate(template, originalName string, ts time.Time, hasDate bool) string {
	if strings.TrimSpace(template) == "" {
		template = "{OriginalName}"
	}

	var year, month, day, yearMonth string
	if hasDate {
		year = ts.Format("2006")
		month = ts.Format("01")
		day = ts.Format("02")
		yearMonth = ts.Format("2006-01")
	}

	// {JJJJ-MM} is listed before {JJJJ} so the longer token wins.
	r := strings.NewReplacer(
		"{OriginalName}", originalName,
		"{JJJJ-MM}", yearMonth,
		"{JJJJ}", year,
		"{MM}", month,
		"{TT}", day,
	)
	return r.Replace(template)
}
