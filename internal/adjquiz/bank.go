package adjquiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseBank decodes a raw bank document and validates it. Decoding failures
// are LoadErrors; shape failures are DataShapeErrors.
func ParseBank(data []byte) ([]Question, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("decoding json: %w", err)}
	}
	return ValidateBank(doc)
}

// ValidateBank checks a decoded bank document, either a bare array of
// questions or an object with a "questions" array. It collects every problem
// before returning.
func ValidateBank(doc any) ([]Question, error) {
	items, ok := bankItems(doc)
	if !ok {
		return nil, &DataShapeError{Problems: []string{
			`question bank must be an array of questions or an object with a "questions" array`,
		}}
	}
	if len(items) == 0 {
		return nil, &DataShapeError{Problems: []string{ErrEmptyBank.Error()}}
	}

	var problems []string
	seen := make(map[string]bool, len(items))
	questions := make([]Question, 0, len(items))

	for idx, item := range items {
		q, errs := validateItem(idx, item, seen)
		problems = append(problems, errs...)
		if len(errs) == 0 {
			questions = append(questions, q)
		}
	}

	if len(problems) > 0 {
		return nil, &DataShapeError{Problems: problems}
	}
	return questions, nil
}

func bankItems(doc any) ([]any, bool) {
	switch v := doc.(type) {
	case []any:
		return v, true
	case map[string]any:
		items, ok := v["questions"].([]any)
		return items, ok
	}
	return nil, false
}

func validateItem(idx int, item any, seen map[string]bool) (Question, []string) {
	path := fmt.Sprintf("item #%d", idx+1)

	obj, ok := item.(map[string]any)
	if !ok {
		return Question{}, []string{path + ": must be an object"}
	}

	id, hasID := idString(obj["id"])
	if hasID {
		path += fmt.Sprintf(" (id=%s)", id)
	}

	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, path+": "+fmt.Sprintf(format, args...))
	}

	// A number and a string with the same text are different ids.
	key := fmt.Sprintf("%T:%s", obj["id"], id)
	switch {
	case !hasID:
		fail("missing 'id'")
	case seen[key]:
		fail("duplicate id '%s'", id)
	default:
		seen[key] = true
	}

	q := Question{ID: id}
	var okField bool
	if q.Prompt, okField = stringField(obj, "prompt", "question"); !okField {
		fail("missing/invalid 'prompt'")
	}
	if q.Explanation, okField = stringField(obj, "explanation"); !okField {
		fail("missing/invalid 'explanation'")
	}
	if q.Case, okField = stringField(obj, "grammaticalCase", "case"); !okField {
		fail("missing/invalid 'grammaticalCase'")
	}
	if q.Gender, okField = stringField(obj, "gender"); !okField {
		fail("missing/invalid 'gender'")
	}

	if raw, ok := obj["translations"].(map[string]any); !ok {
		fail("missing/invalid 'translations'")
	} else {
		q.Translations = make(map[string]string, len(raw))
		for lang, v := range raw {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				q.Translations[lang] = s
			}
		}
		if q.Translations[FallbackLanguage] == "" {
			fail("translations.%s is required (fallback language)", FallbackLanguage)
		}
	}

	choices, ok := firstField(obj, "choices", "answers").([]any)
	if !ok || len(choices) < 2 {
		fail("'choices' must be an array with at least 2 items")
		return q, errs
	}

	correct := 0
	for _, c := range choices {
		if m, ok := c.(map[string]any); ok && m["correct"] == true {
			correct++
		}
	}
	if correct != 1 {
		fail("choices must have exactly 1 correct=true (found %d)", correct)
	}

	q.Choices = make([]Choice, 0, len(choices))
	for i, c := range choices {
		m, ok := c.(map[string]any)
		if !ok {
			fail("choice[%d] must be an object", i)
			continue
		}
		text, ok := m["text"].(string)
		if !ok || strings.TrimSpace(text) == "" {
			fail("choice[%d].text missing/invalid", i)
			continue
		}
		isCorrect, ok := m["correct"].(bool)
		if !ok {
			fail("choice[%d].correct must be boolean", i)
			continue
		}
		q.Choices = append(q.Choices, Choice{Text: text, Correct: isCorrect})
	}

	return q, errs
}

// idString normalizes a JSON id. Numbers keep their literal text; null and
// blank strings count as missing.
func idString(v any) (string, bool) {
	switch id := v.(type) {
	case nil:
		return "", false
	case string:
		if strings.TrimSpace(id) == "" {
			return "", false
		}
		return id, true
	case json.Number:
		return id.String(), true
	default:
		return fmt.Sprint(id), true
	}
}

func firstField(obj map[string]any, names ...string) any {
	for _, name := range names {
		if v, ok := obj[name]; ok {
			return v
		}
	}
	return nil
}

func stringField(obj map[string]any, names ...string) (string, bool) {
	s, ok := firstField(obj, names...).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
