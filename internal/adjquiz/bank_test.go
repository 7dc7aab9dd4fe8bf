package adjquiz

import (
	"errors"
	"strings"
	"testing"
)

const validItem = `{
	"id": %s,
	"prompt": "Ich sehe den ___ Hund.",
	"explanation": "Akkusativ maskulin nach bestimmtem Artikel: -en.",
	"grammaticalCase": "akkusativ",
	"gender": "maskulin",
	"translations": {"en": "I see the old dog.", "ro": "Văd câinele bătrân."},
	"choices": [
		{"text": "alten", "correct": true},
		{"text": "alter", "correct": false}
	]
}`

func item(id string) string { return strings.Replace(validItem, "%s", id, 1) }

func shapeProblems(t *testing.T, err error) []string {
	t.Helper()
	var shape *DataShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("expected *DataShapeError, got %v", err)
	}
	return shape.Problems
}

func TestParseBankBareArray(t *testing.T) {
	qs, err := ParseBank([]byte("[" + item(`"q1"`) + "," + item("2") + "]"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[1].ID != "2" {
		t.Errorf("numeric id: got %q, want %q", qs[1].ID, "2")
	}
	if qs[0].Case != "akkusativ" || qs[0].Gender != "maskulin" {
		t.Errorf("unexpected case/gender: %q/%q", qs[0].Case, qs[0].Gender)
	}
	if qs[0].CorrectIndex() != 0 {
		t.Errorf("correct index = %d, want 0", qs[0].CorrectIndex())
	}
}

func TestParseBankQuestionsObject(t *testing.T) {
	qs, err := ParseBank([]byte(`{"questions": [` + item(`"a"`) + `]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(qs) != 1 || qs[0].ID != "a" {
		t.Fatalf("unexpected questions: %+v", qs)
	}
}

func TestParseBankLegacyFieldNames(t *testing.T) {
	doc := `[{
		"id": 7,
		"question": "Er hilft dem ___ Mann.",
		"explanation": "Dativ nach bestimmtem Artikel: -en.",
		"case": "dativ",
		"gender": "maskulin",
		"translations": {"en": "He helps the old man."},
		"answers": [
			{"text": "alten", "correct": true},
			{"text": "alter", "correct": false},
			{"text": "altem", "correct": false}
		]
	}]`
	qs, err := ParseBank([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if qs[0].Prompt != "Er hilft dem ___ Mann." || qs[0].Case != "dativ" || len(qs[0].Choices) != 3 {
		t.Errorf("aliases not honored: %+v", qs[0])
	}
}

func TestParseBankSyntaxErrorIsLoadError(t *testing.T) {
	_, err := ParseBank([]byte(`[{"id": 1,`))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
}

func TestValidateBankTopLevelShape(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"string", `"nope"`, "must be an array"},
		{"object without questions", `{"items": []}`, "must be an array"},
		{"empty array", `[]`, "empty"},
		{"empty questions", `{"questions": []}`, "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBank([]byte(tt.doc))
			problems := shapeProblems(t, err)
			if len(problems) != 1 || !strings.Contains(problems[0], tt.want) {
				t.Errorf("problems = %q, want one containing %q", problems, tt.want)
			}
		})
	}
}

func TestValidateBankTwoCorrectChoices(t *testing.T) {
	doc := `[{
		"id": "x",
		"prompt": "p",
		"explanation": "e",
		"grammaticalCase": "dativ",
		"gender": "feminin",
		"translations": {"en": "t"},
		"choices": [
			{"text": "a", "correct": true},
			{"text": "b", "correct": true},
			{"text": "c", "correct": false}
		]
	}]`
	_, err := ParseBank([]byte(doc))
	problems := shapeProblems(t, err)
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %q", problems)
	}
	if !strings.Contains(problems[0], "found 2") {
		t.Errorf("problem %q does not report the count 2", problems[0])
	}
	if !strings.HasPrefix(problems[0], "item #1 (id=x)") {
		t.Errorf("problem %q lacks item path", problems[0])
	}
}

func TestValidateBankDuplicateIDs(t *testing.T) {
	doc := "[" + strings.Join([]string{item("1"), item("1"), item("2"), item("1")}, ",") + "]"
	_, err := ParseBank([]byte(doc))
	problems := shapeProblems(t, err)

	dups := 0
	for _, p := range problems {
		if strings.Contains(p, "duplicate id") {
			dups++
		}
	}
	if dups != 2 {
		t.Errorf("expected 2 duplicate-id problems, got %d: %q", dups, problems)
	}
	if len(problems) != 2 {
		t.Errorf("duplicates must not invalidate other fields, got %q", problems)
	}
}

func TestValidateBankNumberAndStringIDsDiffer(t *testing.T) {
	qs, err := ParseBank([]byte("[" + item("1") + "," + item(`"1"`) + "]"))
	if err != nil {
		t.Fatalf("number 1 and string \"1\" reported as duplicates: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}

	_, err = ParseBank([]byte("[" + item(`"1"`) + "," + item(`"1"`) + "]"))
	if problems := shapeProblems(t, err); len(problems) != 1 || !strings.Contains(problems[0], "duplicate id '1'") {
		t.Errorf("problems = %q", problems)
	}
}

func TestValidateBankCollectsAllProblems(t *testing.T) {
	doc := `[
		42,
		{"id": null, "prompt": "", "explanation": 3, "gender": "m", "translations": {"ro": "x"},
		 "choices": [{"text": "a", "correct": "yes"}, {"text": " ", "correct": false}, "c"]},
		{"id": "short", "prompt": "p", "explanation": "e", "grammaticalCase": "genitiv", "gender": "n",
		 "translations": {"en": "t"}, "choices": [{"text": "only", "correct": true}]}
	]`
	_, err := ParseBank([]byte(doc))
	problems := shapeProblems(t, err)

	want := []string{
		"item #1: must be an object",
		"item #2: missing 'id'",
		"item #2: missing/invalid 'prompt'",
		"item #2: missing/invalid 'explanation'",
		"item #2: missing/invalid 'grammaticalCase'",
		"item #2: translations.en is required",
		"item #2: choices must have exactly 1 correct=true (found 0)",
		"item #2: choice[0].correct must be boolean",
		"item #2: choice[1].text missing/invalid",
		"item #2: choice[2] must be an object",
		"item #3 (id=short): 'choices' must be an array with at least 2 items",
	}
	if len(problems) != len(want) {
		t.Fatalf("got %d problems, want %d:\n%s", len(problems), len(want), strings.Join(problems, "\n"))
	}
	for i, w := range want {
		if !strings.HasPrefix(problems[i], w) {
			t.Errorf("problem %d = %q, want prefix %q", i, problems[i], w)
		}
	}
}

func TestMessages(t *testing.T) {
	if got := Messages(nil); got != nil {
		t.Errorf("nil error: got %q", got)
	}
	shape := &DataShapeError{Problems: []string{"a", "b"}}
	if got := Messages(shape); len(got) != 2 {
		t.Errorf("shape error: got %q", got)
	}
	load := &LoadError{Err: errors.New("connection refused")}
	got := Messages(load)
	if len(got) != 1 || !strings.Contains(got[0], "connection refused") {
		t.Errorf("load error: got %q", got)
	}
}
