package session

import (
	"github.com/quant-rishabh/learn-through-quiz/internal/content"
)

// Phase is where the engine currently waits.
type Phase int

const (
	PhaseAwaitingPart Phase = iota // Waiting for an answer to the current part
	PhasePractice                  // Drilling the primary answer after a miss
	PhaseComplete                  // Every part resolved
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPart:
		return "awaiting_part"
	case PhasePractice:
		return "practice"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// PromptKind distinguishes a graded part from a practice drill.
type PromptKind int

const (
	PromptPart PromptKind = iota
	PromptPractice
)

// Prompt is what the learner is being asked right now.
type Prompt struct {
	Kind PromptKind

	// Question is the 1-based position of the active question and
	// Questions the total, for "3/10" style progress.
	Question  int
	Questions int

	// Context is the question's display-only text, if any.
	Context string

	// Image is set when the question's image belongs before its parts.
	Image *content.MediaRef

	// Key is the part being asked.
	Key string

	// Remaining is how many answers the part still needs; Required is the
	// size of its full answer set.
	Remaining int
	Required  int

	// Practice drill fields. Attempt is 1-based.
	Attempt  int
	Attempts int
	Target   string
}

// VerdictKind classifies the result of one submission.
type VerdictKind int

const (
	VerdictCorrect       VerdictKind = iota // part resolved correct
	VerdictPartial                          // some answers matched, more required
	VerdictWrong                            // nothing matched; practice follows
	VerdictSkipped                          // learner gave up on the part
	VerdictPracticeMatch                    // practice attempt matched the target
	VerdictPracticeMiss                     // practice attempt missed the target
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictCorrect:
		return "correct"
	case VerdictPartial:
		return "partial"
	case VerdictWrong:
		return "wrong"
	case VerdictSkipped:
		return "skipped"
	case VerdictPracticeMatch:
		return "practice_match"
	case VerdictPracticeMiss:
		return "practice_miss"
	}
	return "unknown"
}

// Verdict is the engine's answer to a submission.
type Verdict struct {
	Kind VerdictKind
	Key  string

	// Correct is true when the submission matched something.
	Correct bool

	// Matched lists the answers the submission satisfied.
	Matched []string

	// Remaining is how many answers the part still needs.
	Remaining int

	// Answer is the full accepted answer set, for feedback.
	Answer string

	// Closest is the remaining answer nearest a wrong submission, with its
	// match ratio. Empty when nothing comes within ClosestFloor.
	Closest string
	Score   float64

	// Info is the part's explanation. Set only once the part is resolved.
	Info string

	// PartDone is true when the next prompt belongs to a different part
	// (or the session is complete).
	PartDone bool

	// Practice drill position, set on practice verdicts and on the
	// VerdictWrong that starts the drill.
	Attempt  int
	Attempts int
}

// Outcome is the recorded result of one part.
type Outcome struct {
	Key           string
	Correct       bool
	Skipped       bool
	CorrectAnswer string
}

// Listener receives engine events. Front ends implement the calls they
// care about and embed NopListener for the rest.
type Listener interface {
	OnNeedMedia(ref content.MediaRef)
	OnPartPrompt(p Prompt)
	OnVerdict(v Verdict)
	OnSessionComplete(s Summary)
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) OnNeedMedia(content.MediaRef) {}
func (NopListener) OnPartPrompt(Prompt)          {}
func (NopListener) OnVerdict(Verdict)            {}
func (NopListener) OnSessionComplete(Summary)    {}
