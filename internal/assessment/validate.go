package assessment

import (
	"strconv"
	"unicode/utf8"

	"github.com/talentflow/talentflow/internal/models"
)

// ErrorKind classifies a per-question validation failure. These are
// recoverable values surfaced next to the offending field, never raised.
type ErrorKind string

const (
	MissingRequired ErrorKind = "missing_required"
	TooShort        ErrorKind = "too_short"
	TooLong         ErrorKind = "too_long"
	BelowMinimum    ErrorKind = "below_minimum"
	AboveMaximum    ErrorKind = "above_maximum"
)

// Validate checks the responses against every currently visible question and
// returns the complete error set keyed by question id; an empty map means
// the response set is valid. Invisible questions are excluded entirely: no
// error is emitted for them and their stored responses are left latent, so
// they reapply if the condition becomes true again. All questions are
// checked with no early exit, so every field error can render at once.
func Validate(sections []models.AssessmentSection, responses Responses) map[string]ErrorKind {
	errs := make(map[string]ErrorKind)

	for _, q := range VisibleQuestions(sections, responses) {
		resp, present := responses[q.ID]
		if empty(resp) {
			present = false
		}

		if q.Required && !present {
			errs[q.ID] = MissingRequired
			continue
		}
		if !present || q.Validation == nil {
			continue
		}

		switch {
		case q.Type == models.Numeric:
			s, ok := resp.(string)
			if !ok {
				continue
			}
			// Unparsable input fails no range check, same as the form UI.
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				continue
			}
			if q.Validation.Min != nil && n < *q.Validation.Min {
				errs[q.ID] = BelowMinimum
			}
			if q.Validation.Max != nil && n > *q.Validation.Max {
				errs[q.ID] = AboveMaximum
			}

		case q.Type.Text():
			s, ok := resp.(string)
			if !ok {
				continue
			}
			length := utf8.RuneCountInString(s)
			if q.Validation.MaxLength != nil && length > *q.Validation.MaxLength {
				errs[q.ID] = TooLong
			}
			if q.Validation.MinLength != nil && length < *q.Validation.MinLength {
				errs[q.ID] = TooShort
			}
		}
	}

	return errs
}

// empty reports whether a response value counts as unanswered.
func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
