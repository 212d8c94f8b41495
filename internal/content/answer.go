package content

import (
	"strings"

	"github.com/quant-rishabh/learn-through-quiz/internal/matcher"
)

// AnswerSpec is a parsed "answers[;answers...][@info]" string.
type AnswerSpec struct {
	// Raw is the text before the first "@", trimmed.
	Raw string
	// Answers holds the acceptable answers in authoring order, trimmed and
	// de-duplicated ignoring case.
	Answers []string
	// Info is the optional explanation shown once the part is resolved.
	Info string
}

// ParseAnswerSpec splits raw into its answer set and info text.
// It fails with ErrEmptyAnswerSet if no answer survives trimming.
func ParseAnswerSpec(raw string) (AnswerSpec, error) {
	answers, info, _ := strings.Cut(raw, "@")

	spec := AnswerSpec{
		Raw:  strings.TrimSpace(answers),
		Info: strings.TrimSpace(info),
	}

	seen := make(map[string]bool)
	for _, a := range strings.Split(answers, ";") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := matcher.Normalize(a)
		if seen[key] {
			continue
		}
		seen[key] = true
		spec.Answers = append(spec.Answers, a)
	}

	if len(spec.Answers) == 0 {
		return AnswerSpec{}, ErrEmptyAnswerSet
	}
	return spec, nil
}

// Primary is the designated answer used for practice drills.
func (a AnswerSpec) Primary() string {
	if len(a.Answers) == 0 {
		return ""
	}
	return a.Answers[0]
}

// Display renders the full answer set for feedback.
func (a AnswerSpec) Display() string {
	return strings.Join(a.Answers, "; ")
}
