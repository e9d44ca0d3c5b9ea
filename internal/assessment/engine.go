// Package assessment is the pure computation core over assessment
// definitions and response maps: conditional visibility, response
// validation, and value-semantics definition edits. It performs no I/O;
// all state lives in the caller and is passed in on every call.
package assessment

import (
	"github.com/talentflow/talentflow/internal/models"
)

// Responses is a candidate's in-progress answer set keyed by question id.
// Values are strings, or lists of strings for multi-choice answers; decoded
// JSON may carry lists as []any.
type Responses map[string]any

// Flatten returns every question in evaluation order: section-major, then
// question-major. This ordering defines what "precedes" means for
// conditional references.
func Flatten(sections []models.AssessmentSection) []models.Question {
	var out []models.Question
	for _, s := range sections {
		out = append(out, s.Questions...)
	}
	return out
}

// VisibleQuestions returns the flattened questions whose visibility
// predicate holds for the given responses.
//
// A question with no condition is always visible. A conditioned question is
// evaluated directly against the stored response of its source question,
// even when the source question is itself hidden; hidden questions do not
// transitively hide their dependents. Stale responses to hidden questions
// therefore keep dependents visible, which assessment authors may rely on.
func VisibleQuestions(sections []models.AssessmentSection, responses Responses) []models.Question {
	var out []models.Question
	for _, q := range Flatten(sections) {
		if Visible(q, responses) {
			out = append(out, q)
		}
	}
	return out
}

// Visible evaluates one question's conditional predicate.
func Visible(q models.Question, responses Responses) bool {
	if q.ConditionalOn == nil {
		return true
	}
	return answerMatches(q.ConditionalOn.Answer, responses[q.ConditionalOn.QuestionID])
}

// answerMatches compares a condition's expected answer against a stored
// response. A scalar expectation requires equality; a list expectation
// matches a scalar member or any intersection with a list response.
func answerMatches(want, got any) bool {
	switch w := want.(type) {
	case string:
		s, ok := got.(string)
		return ok && s == w
	case []string:
		return listMatches(w, got)
	case []any:
		return listMatches(toStrings(w), got)
	}
	return false
}

func listMatches(want []string, got any) bool {
	switch g := got.(type) {
	case string:
		return contains(want, g)
	case []string:
		return intersects(want, g)
	case []any:
		return intersects(want, toStrings(g))
	}
	return false
}

func toStrings(vals []any) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range b {
		if contains(a, v) {
			return true
		}
	}
	return false
}
