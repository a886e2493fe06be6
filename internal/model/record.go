package model

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Record is one data row of an uploaded spreadsheet, keyed by the text of
// its header cell. Keys carry no casing or presence guarantees.
type Record map[string]string

// Header spellings accepted for each logical field.
var (
	ConfirmedByKeys   = []string{"ConfirmedBy", "confirmed_by", "Confirmed By"}
	ConfirmedAtKeys   = []string{"ConfirmedAtJST", "ConfirmedAt", "confirmedAtTimestamp"}
	ReviewerKeys      = []string{"reviewer"}
	ReportDateKeys    = []string{"date"}
	ReportedCountKeys = []string{"reported_count", "reportedCount"}
)

// Lookup returns the value stored under the first matching alias. An exact
// key match wins; otherwise keys are compared after case folding and with
// spaces, underscores and hyphens removed.
func (r Record) Lookup(aliases ...string) (string, bool) {
	for _, a := range aliases {
		if v, ok := r[a]; ok {
			return v, true
		}
	}
	if len(r) == 0 {
		return "", false
	}

	// Sorted so that two headers folding to the same key resolve the same
	// way on every call.
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fold := cases.Fold()
	for _, a := range aliases {
		want := foldKey(fold, a)
		for _, k := range keys {
			if foldKey(fold, k) == want {
				return r[k], true
			}
		}
	}
	return "", false
}

// Get is Lookup without the presence flag.
func (r Record) Get(aliases ...string) string {
	v, _ := r.Lookup(aliases...)
	return v
}

func foldKey(fold cases.Caser, s string) string {
	s = fold.String(strings.TrimSpace(s))
	return strings.Map(func(c rune) rune {
		switch c {
		case ' ', '_', '-', '\t':
			return -1
		}
		return c
	}, s)
}
