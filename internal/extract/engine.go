// Package extract turns one document's text into a record of schema field
// values. It is pure: no I/O, no shared state, and a fault in one rule never
// aborts the remaining fields.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/EliasGomez98/PDF-Scrapping/constants"
)

// Ruler is the registry view the engine needs: the ordered field names and
// the rule for each.
type Ruler interface {
	Fields() []string
	Rule(name string) (*regexp.Regexp, error)
}

// Record holds the values extracted from one document, one entry per
// registered field. Fields whose rule did not match hold
// constants.MissingValue.
type Record struct {
	Document string
	Values   map[string]string
}

// Error is one accumulated extraction failure. Field is empty when the whole
// document failed (no text could be obtained); otherwise it names the field
// whose rule faulted.
type Error struct {
	Document string `json:"document"`
	Field    string `json:"field,omitempty"`
	Reason   string `json:"reason"`
}

// DocumentLevel reports whether the error applies to the whole document
// rather than a single field.
func (e Error) DocumentLevel() bool { return e.Field == "" }

// reWS condenses any run of whitespace. Source documents break numbers and
// dates across lines, so captures arrive with stray spaces and newlines.
var reWS = regexp.MustCompile(`\s+`)

// Extract applies every rule in reg, in registration order, to text.
//
// Empty or whitespace-only text is the whole-document failure case: no rule
// is evaluated, no record is produced, and exactly one document-level Error
// is returned. Otherwise the record has exactly one entry per registered
// field: the condensed capture, or constants.MissingValue when the rule did
// not match (absence is not an error). A rule that panics during evaluation
// yields the missing value plus one field-level Error, and extraction of the
// remaining fields continues.
func Extract(document, text string, reg Ruler) (*Record, []Error) {
	if strings.TrimSpace(text) == "" {
		return nil, []Error{{Document: document, Reason: "empty or non-extractable text"}}
	}

	rec := &Record{
		Document: document,
		Values:   make(map[string]string, len(reg.Fields())),
	}
	var errs []Error

	for _, name := range reg.Fields() {
		rule, err := reg.Rule(name)
		if err != nil {
			rec.Values[name] = constants.MissingValue
			errs = append(errs, Error{Document: document, Field: name, Reason: err.Error()})
			continue
		}
		value, err := matchField(text, rule)
		if err != nil {
			rec.Values[name] = constants.MissingValue
			errs = append(errs, Error{Document: document, Field: name, Reason: err.Error()})
			continue
		}
		if value == "" {
			// "label found but value empty" and "label not found" are the
			// same observable outcome.
			rec.Values[name] = constants.MissingValue
			continue
		}
		rec.Values[name] = value
	}
	return rec, errs
}

// matchField applies one rule and condenses the capture. It converts
// matching-engine panics into errors so one bad rule cannot take down the
// rest of the extraction.
func matchField(text string, rule *regexp.Regexp) (value string, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = ""
			err = fmt.Errorf("rule evaluation panicked: %v", r)
		}
	}()
	m := rule.FindStringSubmatch(text)
	if m == nil {
		return "", nil
	}
	return condense(m[1]), nil
}

// condense strips all interior and surrounding whitespace from a capture.
func condense(s string) string {
	return strings.TrimSpace(reWS.ReplaceAllString(s, ""))
}
