package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow/internal/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// screening is a two-question definition: q2 is required but only visible
// when q1 is answered "Yes".
func screening() []models.AssessmentSection {
	return []models.AssessmentSection{{
		ID:    "s1",
		Title: "Screening",
		Questions: []models.Question{
			{ID: "q1", Type: models.SingleChoice, Text: "Willing to relocate?", Required: true, Options: []string{"Yes", "No"}},
			{ID: "q2", Type: models.LongText, Text: "Tell us more", Required: true,
				ConditionalOn: &models.Condition{QuestionID: "q1", Answer: "Yes"}},
		},
	}}
}

func questionIDs(qs []models.Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}

func TestVisibleQuestionsConditional(t *testing.T) {
	sections := screening()

	assert.Equal(t, []string{"q1"}, questionIDs(VisibleQuestions(sections, nil)))
	assert.Equal(t, []string{"q1"}, questionIDs(VisibleQuestions(sections, Responses{"q1": "No"})))
	assert.Equal(t, []string{"q1", "q2"}, questionIDs(VisibleQuestions(sections, Responses{"q1": "Yes"})))
}

func TestVisibilityIgnoresUnrelatedResponses(t *testing.T) {
	sections := screening()
	responses := Responses{"q1": "Yes", "other": "whatever", "q2": "long answer"}

	assert.Equal(t, []string{"q1", "q2"}, questionIDs(VisibleQuestions(sections, responses)))

	responses["other"] = "changed"
	assert.Equal(t, []string{"q1", "q2"}, questionIDs(VisibleQuestions(sections, responses)))
}

func TestVisibilityListAnswers(t *testing.T) {
	sections := []models.AssessmentSection{{
		ID: "s1",
		Questions: []models.Question{
			{ID: "q1", Type: models.MultiChoice, Text: "Stack", Options: []string{"Go", "Rust", "Python"}},
			{ID: "q2", Type: models.ShortText, Text: "Which Go version?",
				ConditionalOn: &models.Condition{QuestionID: "q1", Answer: []string{"Go", "Rust"}}},
		},
	}}

	// list response intersecting the expected list
	assert.Len(t, VisibleQuestions(sections, Responses{"q1": []string{"Python", "Go"}}), 2)
	// list response with no intersection
	assert.Len(t, VisibleQuestions(sections, Responses{"q1": []string{"Python"}}), 1)
	// scalar response that is a member of the expected list
	assert.Len(t, VisibleQuestions(sections, Responses{"q1": "Rust"}), 2)
	// decoded JSON carries lists as []any
	assert.Len(t, VisibleQuestions(sections, Responses{"q1": []any{"Go"}}), 2)
}

func TestVisibilityIsNotTransitive(t *testing.T) {
	// q3 depends on q2, q2 depends on q1. When q1 hides q2 but a stale q2
	// response remains, q3 stays visible: the check is direct, not recursive.
	sections := []models.AssessmentSection{{
		ID: "s1",
		Questions: []models.Question{
			{ID: "q1", Type: models.SingleChoice, Text: "A?", Options: []string{"Yes", "No"}},
			{ID: "q2", Type: models.SingleChoice, Text: "B?", Options: []string{"Yes", "No"},
				ConditionalOn: &models.Condition{QuestionID: "q1", Answer: "Yes"}},
			{ID: "q3", Type: models.ShortText, Text: "C?",
				ConditionalOn: &models.Condition{QuestionID: "q2", Answer: "Yes"}},
		},
	}}

	responses := Responses{"q1": "No", "q2": "Yes"}
	ids := questionIDs(VisibleQuestions(sections, responses))
	assert.NotContains(t, ids, "q2")
	assert.Contains(t, ids, "q3")
}

func TestValidateSkipsInvisibleRequired(t *testing.T) {
	sections := screening()

	// q2 is required and unanswered, but invisible: no error at all.
	errs := Validate(sections, Responses{"q1": "No"})
	assert.Empty(t, errs)
}

func TestValidateMissingRequired(t *testing.T) {
	sections := screening()

	errs := Validate(sections, Responses{"q1": "Yes"})
	assert.Equal(t, map[string]ErrorKind{"q2": MissingRequired}, errs)

	// empty string and empty list count as unanswered
	errs = Validate(sections, Responses{"q1": "Yes", "q2": ""})
	assert.Equal(t, map[string]ErrorKind{"q2": MissingRequired}, errs)
}

func TestValidateNumericRange(t *testing.T) {
	sections := []models.AssessmentSection{{
		ID: "s1",
		Questions: []models.Question{
			{ID: "q1", Type: models.Numeric, Text: "Expected salary (k)",
				Validation: &models.Validation{Min: floatPtr(50), Max: floatPtr(300)}},
		},
	}}

	assert.Equal(t, map[string]ErrorKind{"q1": AboveMaximum}, Validate(sections, Responses{"q1": "400"}))
	assert.Equal(t, map[string]ErrorKind{"q1": BelowMinimum}, Validate(sections, Responses{"q1": "10"}))
	assert.Empty(t, Validate(sections, Responses{"q1": "120"}))
	// unparsable input fails no range check
	assert.Empty(t, Validate(sections, Responses{"q1": "a lot"}))
}

func TestValidateTextLength(t *testing.T) {
	sections := []models.AssessmentSection{{
		ID: "s1",
		Questions: []models.Question{
			{ID: "q1", Type: models.ShortText, Text: "Summary",
				Validation: &models.Validation{MinLength: intPtr(5), MaxLength: intPtr(50)}},
		},
	}}

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}

	assert.Equal(t, map[string]ErrorKind{"q1": TooLong}, Validate(sections, Responses{"q1": string(long)}))
	assert.Equal(t, map[string]ErrorKind{"q1": TooShort}, Validate(sections, Responses{"q1": "hey"}))
	assert.Empty(t, Validate(sections, Responses{"q1": "hello there"}))
}

func TestValidateChecksAllQuestions(t *testing.T) {
	sections := []models.AssessmentSection{{
		ID: "s1",
		Questions: []models.Question{
			{ID: "q1", Type: models.ShortText, Text: "Name", Required: true},
			{ID: "q2", Type: models.Numeric, Text: "Years", Validation: &models.Validation{Min: floatPtr(1)}},
			{ID: "q3", Type: models.ShortText, Text: "Email", Required: true},
		},
	}}

	errs := Validate(sections, Responses{"q2": "0"})
	require.Len(t, errs, 3)
	assert.Equal(t, MissingRequired, errs["q1"])
	assert.Equal(t, BelowMinimum, errs["q2"])
	assert.Equal(t, MissingRequired, errs["q3"])
}
