package assessment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow/internal/models"
)

var (
	// ErrInvalidConditionalReference indicates a conditionalOn pointing at a
	// question that does not occur strictly before its dependent in flattened
	// order (including self and unknown references).
	ErrInvalidConditionalReference = errors.New("invalid conditional reference")

	ErrSectionNotFound  = errors.New("section not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// EditOp enumerates the builder's definition mutations.
type EditOp string

const (
	AddSection       EditOp = "add_section"
	RemoveSection    EditOp = "remove_section"
	RetitleSection   EditOp = "retitle_section"
	AddQuestion      EditOp = "add_question"
	RemoveQuestion   EditOp = "remove_question"
	UpdateQuestion   EditOp = "update_question"
	ReorderQuestion  EditOp = "reorder_question"
	SetConditional   EditOp = "set_conditional"
	ClearConditional EditOp = "clear_conditional"
	SetValidation    EditOp = "set_validation"
	ClearValidation  EditOp = "clear_validation"
	SetOptions       EditOp = "set_options"
	ClearOptions     EditOp = "clear_options"
)

// Edit is one builder mutation. SectionID and QuestionID address the target;
// the remaining fields carry the payload for the ops that need them.
type Edit struct {
	Op         EditOp
	SectionID  string
	QuestionID string

	Title      string              // AddSection, RetitleSection
	Question   *models.Question    // AddQuestion
	Index      int                 // AddQuestion insert position (-1 appends)
	To         int                 // ReorderQuestion target position
	Text       string              // UpdateQuestion
	Type       models.QuestionType // UpdateQuestion (empty keeps current)
	Condition  *models.Condition   // SetConditional
	Validation *models.Validation  // SetValidation
	Options    []string            // SetOptions
}

// Apply returns a new definition with the edit applied, leaving the input
// untouched so callers can diff for persistence and keep undo history.
func Apply(sections []models.AssessmentSection, edit Edit) ([]models.AssessmentSection, error) {
	out := cloneSections(sections)

	switch edit.Op {
	case AddSection:
		id := edit.SectionID
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, models.AssessmentSection{ID: id, Title: edit.Title})
		return out, nil

	case RemoveSection:
		idx := sectionIndex(out, edit.SectionID)
		if idx < 0 {
			return nil, fmt.Errorf("remove section %q: %w", edit.SectionID, ErrSectionNotFound)
		}
		removed := out[idx].Questions
		out = append(out[:idx], out[idx+1:]...)
		for _, q := range removed {
			clearDependents(out, q.ID)
		}
		return out, nil

	case RetitleSection:
		idx := sectionIndex(out, edit.SectionID)
		if idx < 0 {
			return nil, fmt.Errorf("retitle section %q: %w", edit.SectionID, ErrSectionNotFound)
		}
		out[idx].Title = edit.Title
		return out, nil

	case AddQuestion:
		idx := sectionIndex(out, edit.SectionID)
		if idx < 0 {
			return nil, fmt.Errorf("add question: section %q: %w", edit.SectionID, ErrSectionNotFound)
		}
		if edit.Question == nil {
			return nil, fmt.Errorf("add question: nil question")
		}
		q := cloneQuestion(*edit.Question)
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		qs := out[idx].Questions
		pos := edit.Index
		if pos < 0 || pos > len(qs) {
			pos = len(qs)
		}
		qs = append(qs[:pos], append([]models.Question{q}, qs[pos:]...)...)
		out[idx].Questions = qs
		if q.ConditionalOn != nil {
			if !precedes(out, q.ConditionalOn.QuestionID, q.ID) {
				return nil, fmt.Errorf("add question %q: %w", q.ID, ErrInvalidConditionalReference)
			}
		}
		return out, nil

	case RemoveQuestion:
		sIdx, qIdx := questionIndex(out, edit.QuestionID)
		if sIdx < 0 {
			return nil, fmt.Errorf("remove question %q: %w", edit.QuestionID, ErrQuestionNotFound)
		}
		qs := out[sIdx].Questions
		out[sIdx].Questions = append(qs[:qIdx], qs[qIdx+1:]...)
		// Cascade: dependents must not keep a dangling reference.
		clearDependents(out, edit.QuestionID)
		return out, nil

	case UpdateQuestion:
		q := findQuestion(out, edit.QuestionID)
		if q == nil {
			return nil, fmt.Errorf("update question %q: %w", edit.QuestionID, ErrQuestionNotFound)
		}
		if edit.Text != "" {
			q.Text = edit.Text
		}
		if edit.Type != "" {
			if !edit.Type.Valid() {
				return nil, fmt.Errorf("update question %q: unknown type %q", edit.QuestionID, edit.Type)
			}
			q.Type = edit.Type
		}
		return out, nil

	case ReorderQuestion:
		sIdx, qIdx := questionIndex(out, edit.QuestionID)
		if sIdx < 0 {
			return nil, fmt.Errorf("reorder question %q: %w", edit.QuestionID, ErrQuestionNotFound)
		}
		qs := out[sIdx].Questions
		to := edit.To
		if to < 0 || to >= len(qs) {
			return nil, fmt.Errorf("reorder question %q: position %d out of range", edit.QuestionID, to)
		}
		q := qs[qIdx]
		qs = append(qs[:qIdx], qs[qIdx+1:]...)
		qs = append(qs[:to], append([]models.Question{q}, qs[to:]...)...)
		out[sIdx].Questions = qs
		// A move can flip a conditional link forward. Cascade like a removal:
		// the dependent loses its condition rather than keeping a reference
		// that no longer points strictly backward.
		clearForwardConditionals(out)
		return out, nil

	case SetConditional:
		q := findQuestion(out, edit.QuestionID)
		if q == nil {
			return nil, fmt.Errorf("set conditional on %q: %w", edit.QuestionID, ErrQuestionNotFound)
		}
		if edit.Condition == nil {
			return nil, fmt.Errorf("set conditional on %q: nil condition", edit.QuestionID)
		}
		if !precedes(out, edit.Condition.QuestionID, edit.QuestionID) {
			return nil, fmt.Errorf("set conditional on %q: %w", edit.QuestionID, ErrInvalidConditionalReference)
		}
		c := *edit.Condition
		q.ConditionalOn = &c
		return out, nil

	case ClearConditional:
		q := findQuestion(out, edit.QuestionID)
		if q == nil {
			return nil, fmt.Errorf("clear conditional on %q: %w", edit.QuestionID, ErrQuestionNotFound)
		}
		q.ConditionalOn = nil
		return out, nil

	case SetValidation:
		q := findQuestion(out, edit.QuestionID)
		if q == nil {
			return nil, fmt.Errorf("set validation on %q: %w", edit.QuestionID, ErrQuestionNotFound)
		}
		if edit.Validation == nil {
			q.Validation = nil
			return out, nil
		}
		v := *edit.Validation
		q.Validation = &v
		return out, nil

	case ClearValidation:
		q := findQuestion(out, edit.QuestionID)
		if q == nil {
			return nil, fmt.Errorf("clear validation on %q: %w", edit.QuestionID, ErrQuestionNotFound)
		}
		q.Validation = nil
		return out, nil

	case SetOptions:
		q := findQuestion(out, edit.QuestionID)
		if q == nil {
			return nil, fmt.Errorf("set options on %q: %w", edit.QuestionID, ErrQuestionNotFound)
		}
		q.Options = append([]string(nil), edit.Options...)
		return out, nil

	case ClearOptions:
		q := findQuestion(out, edit.QuestionID)
		if q == nil {
			return nil, fmt.Errorf("clear options on %q: %w", edit.QuestionID, ErrQuestionNotFound)
		}
		q.Options = nil
		return out, nil
	}

	return nil, fmt.Errorf("unknown edit op %q", edit.Op)
}

// CheckDefinition verifies the structural invariants of a definition before
// it is persisted: unique question ids, known types, options on choice
// questions, validation rules matching the question type, and conditional
// references pointing strictly backward in flattened order.
func CheckDefinition(sections []models.AssessmentSection) error {
	seen := make(map[string]bool)

	for _, s := range sections {
		for _, q := range s.Questions {
			if q.ID == "" {
				return fmt.Errorf("section %q: question with empty id", s.ID)
			}
			if seen[q.ID] {
				return fmt.Errorf("duplicate question id %q", q.ID)
			}
			if !q.Type.Valid() {
				return fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
			}
			if q.Type.Choice() && len(q.Options) == 0 {
				return fmt.Errorf("question %q: %s requires options", q.ID, q.Type)
			}
			if v := q.Validation; v != nil {
				if (v.Min != nil || v.Max != nil) && q.Type != models.Numeric {
					return fmt.Errorf("question %q: min/max apply only to numeric questions", q.ID)
				}
				if (v.MinLength != nil || v.MaxLength != nil) && !q.Type.Text() {
					return fmt.Errorf("question %q: length rules apply only to text questions", q.ID)
				}
			}
			if c := q.ConditionalOn; c != nil {
				if !seen[c.QuestionID] {
					return fmt.Errorf("question %q references %q: %w", q.ID, c.QuestionID, ErrInvalidConditionalReference)
				}
			}
			seen[q.ID] = true
		}
	}

	return nil
}

// precedes reports whether question a occurs strictly before question b in
// flattened order.
func precedes(sections []models.AssessmentSection, a, b string) bool {
	for _, q := range Flatten(sections) {
		switch q.ID {
		case b:
			return false
		case a:
			return true
		}
	}
	return false
}

func sectionIndex(sections []models.AssessmentSection, id string) int {
	for i := range sections {
		if sections[i].ID == id {
			return i
		}
	}
	return -1
}

func questionIndex(sections []models.AssessmentSection, id string) (int, int) {
	for i := range sections {
		for j := range sections[i].Questions {
			if sections[i].Questions[j].ID == id {
				return i, j
			}
		}
	}
	return -1, -1
}

func findQuestion(sections []models.AssessmentSection, id string) *models.Question {
	i, j := questionIndex(sections, id)
	if i < 0 {
		return nil
	}
	return &sections[i].Questions[j]
}

// clearForwardConditionals drops any conditional whose source no longer
// occurs strictly before its dependent in flattened order.
func clearForwardConditionals(sections []models.AssessmentSection) {
	for i := range sections {
		for j := range sections[i].Questions {
			q := &sections[i].Questions[j]
			if q.ConditionalOn != nil && !precedes(sections, q.ConditionalOn.QuestionID, q.ID) {
				q.ConditionalOn = nil
			}
		}
	}
}

// clearDependents removes conditionals that reference a deleted question.
func clearDependents(sections []models.AssessmentSection, removedID string) {
	for i := range sections {
		for j := range sections[i].Questions {
			c := sections[i].Questions[j].ConditionalOn
			if c != nil && c.QuestionID == removedID {
				sections[i].Questions[j].ConditionalOn = nil
			}
		}
	}
}

func cloneSections(sections []models.AssessmentSection) []models.AssessmentSection {
	out := make([]models.AssessmentSection, len(sections))
	for i, s := range sections {
		out[i] = s
		out[i].Questions = make([]models.Question, len(s.Questions))
		for j, q := range s.Questions {
			out[i].Questions[j] = cloneQuestion(q)
		}
	}
	return out
}

func cloneQuestion(q models.Question) models.Question {
	if q.Options != nil {
		q.Options = append([]string(nil), q.Options...)
	}
	if q.Validation != nil {
		v := *q.Validation
		q.Validation = &v
	}
	if q.ConditionalOn != nil {
		c := *q.ConditionalOn
		if vals, ok := c.Answer.([]string); ok {
			c.Answer = append([]string(nil), vals...)
		}
		q.ConditionalOn = &c
	}
	return q
}
