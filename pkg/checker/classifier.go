package checker

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Category is the closed set of classification outcomes.
type Category string

const (
	CategoryNotExist     Category = "not-exist"
	CategoryNotActive    Category = "not-active"
	CategoryActive2Days  Category = "active-2-days"
	CategoryActive3To15  Category = "active-3-15-days"
	CategoryActiveMore15 Category = "active-more-15"
	// CategoryActive is emitted when a device is activated but the
	// activation date cannot be parsed, so no bucket applies.
	CategoryActive      Category = "active"
	CategoryError       Category = "error"
	CategoryWrongFormat Category = "wrong-format"
	CategoryDuplicate   Category = "duplicate"
)

// Status strings paired with each category.
const (
	StatusNotExist     = "NOT EXIST"
	StatusNotActive    = "NOT ACTIVE"
	StatusActive2Days  = "ACTIVE ≤2 DAYS"
	StatusActive3To15  = "ACTIVE 3-15 DAYS"
	StatusExpired      = "EXPIRED >15 DAYS"
	StatusActive       = "ACTIVE"
	StatusError        = "ERROR"
	StatusWrongFormat  = "WRONG FORMAT"
	StatusDuplicate    = "DUPLICATE"
)

// noValue marks an empty cell on the result page.
const noValue = "-"

// daysActiveError is the sentinel DaysActive value when the activation
// date exists but cannot be parsed.
const daysActiveError = "error"

// CheckResult is one classification outcome. It is constructed once per
// IMEI per request and returned verbatim in the response body.
type CheckResult struct {
	IMEI           string   `json:"imei"`
	Status         string   `json:"status"`
	Output         string   `json:"output"`
	Model          string   `json:"model"`
	Color          string   `json:"color"`
	InDate         string   `json:"inDate"`
	OutDate        string   `json:"outDate"`
	ActivationDate string   `json:"activationDate"`
	DaysActive     any      `json:"daysActive"`
	Category       Category `json:"category"`
}

// rowFields holds the fixed-position cells of one result-table row.
// The tool page renders model/color/in-date/out-date/activation-date at
// cell indexes 3 through 7.
type rowFields struct {
	Model          string
	Color          string
	InDate         string
	OutDate        string
	ActivationDate string
}

// rowToFields maps a row's cell texts to named fields. Missing or empty
// cells degrade to "-", matching how the page renders absent values.
func rowToFields(cells []string) rowFields {
	get := func(i int) string {
		if i < len(cells) && cells[i] != "" {
			return cells[i]
		}
		return noValue
	}
	return rowFields{
		Model:          get(3),
		Color:          get(4),
		InDate:         get(5),
		OutDate:        get(6),
		ActivationDate: get(7),
	}
}

// findRow returns the first scraped row whose cell text contains the IMEI.
func findRow(imei string, rows [][]string) ([]string, bool) {
	for _, cells := range rows {
		for _, cell := range cells {
			if strings.Contains(cell, imei) {
				return cells, true
			}
		}
	}
	return nil, false
}

// activationLayouts are tried in order when parsing the activation date.
// The page is not consistent about its date rendering.
var activationLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02-01-2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func parseActivationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range activationLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized activation date: %q", s)
}

// Classify decides the activation status of one IMEI against the scraped
// row set. now is the request-processing instant used for day counting.
//
// Decision order: a missing row, a "not exist" model, a "-" model, or a row
// whose three date cells are all "-" classify as not-exist; an absent or
// "n/a" activation date classifies as not-active; otherwise the whole days
// since activation pick the bucket (≤2, 3-15, >15 inclusive bounds).
func Classify(imei string, rows [][]string, now time.Time) CheckResult {
	cells, found := findRow(imei, rows)
	if !found {
		return notExistResult(imei, imei+" - not exists")
	}

	f := rowToFields(cells)

	model := strings.ToLower(f.Model)
	if strings.Contains(model, "not exist") || f.Model == noValue ||
		(f.InDate == noValue && f.OutDate == noValue && f.ActivationDate == noValue) {
		// Row present but the tool reports a placeholder entry.
		return notExistResult(imei, imei+" - "+StatusNotExist)
	}

	if f.ActivationDate == noValue || strings.EqualFold(f.ActivationDate, "n/a") {
		return fieldResult(imei, StatusNotActive, CategoryNotActive, f, noValue)
	}

	activated, err := parseActivationDate(f.ActivationDate)
	if err != nil {
		return fieldResult(imei, StatusActive, CategoryActive, f, daysActiveError)
	}

	days := int(math.Floor(now.Sub(activated).Hours() / 24))
	switch {
	case days <= 2:
		return fieldResult(imei, StatusActive2Days, CategoryActive2Days, f, days)
	case days <= 15:
		return fieldResult(imei, StatusActive3To15, CategoryActive3To15, f, days)
	default:
		return fieldResult(imei, StatusExpired, CategoryActiveMore15, f, days)
	}
}

func notExistResult(imei, output string) CheckResult {
	return CheckResult{
		IMEI:           imei,
		Status:         StatusNotExist,
		Output:         output,
		Model:          "not exists",
		Color:          noValue,
		InDate:         noValue,
		OutDate:        noValue,
		ActivationDate: noValue,
		DaysActive:     noValue,
		Category:       CategoryNotExist,
	}
}

func fieldResult(imei, status string, category Category, f rowFields, daysActive any) CheckResult {
	return CheckResult{
		IMEI:           imei,
		Status:         status,
		Output:         imei + " - " + status,
		Model:          f.Model,
		Color:          f.Color,
		InDate:         f.InDate,
		OutDate:        f.OutDate,
		ActivationDate: f.ActivationDate,
		DaysActive:     daysActive,
		Category:       category,
	}
}

// ErrorResult marks an IMEI whose chunk failed during browser processing.
func ErrorResult(imei string) CheckResult {
	return placeholderResult(imei, StatusError, CategoryError, imei+" - processing error")
}

// WrongFormatResult marks a raw entry that failed 15-digit validation.
func WrongFormatResult(raw string) CheckResult {
	return placeholderResult(raw, StatusWrongFormat, CategoryWrongFormat, raw+" - wrong format")
}

// DuplicateResult marks a raw entry whose canonical form was already seen
// in the same request.
func DuplicateResult(raw string) CheckResult {
	return placeholderResult(raw, StatusDuplicate, CategoryDuplicate, raw+" - duplicate")
}

func placeholderResult(imei, status string, category Category, output string) CheckResult {
	return CheckResult{
		IMEI:           imei,
		Status:         status,
		Output:         output,
		Model:          noValue,
		Color:          noValue,
		InDate:         noValue,
		OutDate:        noValue,
		ActivationDate: noValue,
		DaysActive:     noValue,
		Category:       category,
	}
}
