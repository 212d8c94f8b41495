package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/matcher"
	"github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/store"
)

// SkipToken gives up on the current part.
const SkipToken = "skip"

// ClosestFloor is the lowest ratio reported as a closest answer on a miss.
const ClosestFloor = 50

// DefaultMode is journaled when Options.Mode is empty.
const DefaultMode = "test"

var (
	// ErrSessionComplete is returned by Submit once every part is resolved.
	ErrSessionComplete = errors.New("session complete")

	// ErrSessionIncomplete is returned by Finalize before completion.
	ErrSessionIncomplete = errors.New("session not complete")

	// ErrEmptyTopic is returned by New for a topic without questions.
	ErrEmptyTopic = errors.New("topic has no questions")

	// ErrNoParts is returned by New for a question with nothing to answer.
	ErrNoParts = errors.New("question has no answerable parts")
)

// Journal receives session and answer events. store.EventRepo implements it.
type Journal interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// Options configure a Session.
type Options struct {
	// Mode is recorded in the journal ("test", "speak", ...).
	Mode string

	// PracticeAttempts is the number of drills after a wrong part.
	PracticeAttempts int

	// Threshold is the minimum match ratio, 0-100.
	Threshold int

	Listener Listener

	// Rand shuffles the questions. Nil means a randomly seeded source.
	Rand *rand.Rand

	// Now is the clock. Nil means time.Now.
	Now func() time.Time

	// Journal is optional.
	Journal Journal

	Logger *zap.Logger
}

// Session runs one quiz over a topic. It is not safe for concurrent use;
// front ends drive it from a single goroutine.
type Session struct {
	id        string
	path      results.Path
	mode      string
	questions []content.Question

	match    matcher.Matcher
	attempts int
	listener Listener
	journal  Journal
	logger   *zap.Logger
	now      func() time.Time

	phase     Phase
	qi        int
	pi        int
	remaining []string
	attempt   int

	start    time.Time
	outcomes []Outcome
	summary  *Summary
	appended bool
	bumped   bool
}

// New starts a session over topic. The question order is shuffled once
// here; the first prompt is announced before New returns.
func New(topic *content.Topic, opts Options) (*Session, error) {
	if topic == nil || len(topic.Questions) == 0 {
		return nil, ErrEmptyTopic
	}
	for i, q := range topic.Questions {
		if len(q.Parts) == 0 {
			return nil, fmt.Errorf("question %d: %w", i+1, ErrNoParts)
		}
	}

	if opts.Listener == nil {
		opts.Listener = NopListener{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Mode == "" {
		opts.Mode = DefaultMode
	}
	if opts.PracticeAttempts < 0 {
		opts.PracticeAttempts = 0
	}

	questions := slices.Clone(topic.Questions)
	opts.Rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	id := uuid.NewString()
	s := &Session{
		id:        id,
		path:      results.Path{Category: topic.Category, Lesson: topic.Lesson, Topic: topic.Name},
		mode:      opts.Mode,
		questions: questions,
		match:     matcher.New(opts.Threshold),
		attempts:  opts.PracticeAttempts,
		listener:  opts.Listener,
		journal:   opts.Journal,
		logger:    opts.Logger.With(zap.String("session_id", id)),
		now:       opts.Now,
		start:     opts.Now(),
	}

	s.logger.Info("session started",
		zapPath(s.path),
		zap.Int("questions", len(questions)),
		zap.Int("parts", topic.PartCount()),
	)
	s.journalSession(store.ActionStart, topic.PartCount())
	s.enterQuestion()
	return s, nil
}

// ID is the session's journal identifier.
func (s *Session) ID() string { return s.id }

// Path is the topic this session quizzes.
func (s *Session) Path() results.Path { return s.path }

// Phase reports the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Done reports whether every part is resolved.
func (s *Session) Done() bool { return s.phase == PhaseComplete }

// Summary returns the completed session's summary; ok is false before
// completion.
func (s *Session) Summary() (Summary, bool) {
	if s.summary == nil {
		return Summary{}, false
	}
	return *s.summary, true
}

// Next returns the current prompt without changing state. ok is false
// once the session is complete.
func (s *Session) Next() (Prompt, bool) {
	if s.phase == PhaseComplete {
		return Prompt{}, false
	}
	q := s.questions[s.qi]
	part := q.Parts[s.pi]

	p := Prompt{
		Kind:      PromptPart,
		Question:  s.qi + 1,
		Questions: len(s.questions),
		Context:   q.Context,
		Key:       part.Key,
		Remaining: len(s.remaining),
		Required:  len(part.Spec.Answers),
	}
	if q.ImageFirst() {
		ref := s.media(q)
		p.Image = &ref
	}
	if s.phase == PhasePractice {
		p.Kind = PromptPractice
		p.Attempt = s.attempt + 1
		p.Attempts = s.attempts
		p.Target = part.Spec.Primary()
	}
	return p, true
}

// Submit grades text against the current prompt.
func (s *Session) Submit(text string) (Verdict, error) {
	var v Verdict
	switch s.phase {
	case PhaseComplete:
		return Verdict{}, ErrSessionComplete
	case PhasePractice:
		v = s.submitPractice(text)
	default:
		v = s.submitPart(text)
	}

	s.journalAnswer(text, v)
	s.listener.OnVerdict(v)

	if v.PartDone {
		s.advance()
	}
	return v, nil
}

func (s *Session) submitPart(text string) Verdict {
	part := s.currentPart()
	v := Verdict{
		Key:    part.Key,
		Answer: part.Spec.Display(),
	}

	if strings.EqualFold(strings.TrimSpace(text), SkipToken) {
		s.record(part, false, true)
		v.Kind = VerdictSkipped
		v.Info = part.Spec.Info
		v.PartDone = true
		return v
	}

	matched := s.match.MatchAll(text, s.remaining)
	if len(matched) > 0 {
		s.remaining = slices.DeleteFunc(s.remaining, func(a string) bool {
			return slices.Contains(matched, a)
		})
		v.Correct = true
		v.Matched = matched
		v.Remaining = len(s.remaining)
		if len(s.remaining) > 0 {
			v.Kind = VerdictPartial
			return v
		}
		s.record(part, true, false)
		v.Kind = VerdictCorrect
		v.Info = part.Spec.Info
		v.PartDone = true
		return v
	}

	s.record(part, false, false)
	v.Kind = VerdictWrong
	v.Remaining = len(s.remaining)
	if best, score, ok := s.match.Best(text, s.remaining); ok && score >= ClosestFloor {
		v.Closest, v.Score = best, score
	}
	v.Info = part.Spec.Info
	if s.attempts == 0 {
		v.PartDone = true
		return v
	}
	s.phase = PhasePractice
	s.attempt = 0
	v.Attempts = s.attempts
	return v
}

func (s *Session) submitPractice(text string) Verdict {
	part := s.currentPart()
	target := part.Spec.Primary()
	s.attempt++

	v := Verdict{
		Kind:     VerdictPracticeMiss,
		Key:      part.Key,
		Answer:   target,
		Attempt:  s.attempt,
		Attempts: s.attempts,
	}
	if s.match.Match(text, target) {
		v.Kind = VerdictPracticeMatch
		v.Correct = true
		v.Matched = []string{target}
	}
	if s.attempt >= s.attempts {
		v.PartDone = true
	}
	return v
}

func (s *Session) currentPart() content.Part {
	return s.questions[s.qi].Parts[s.pi]
}

func (s *Session) record(part content.Part, correct, skipped bool) {
	s.outcomes = append(s.outcomes, Outcome{
		Key:           part.Key,
		Correct:       correct,
		Skipped:       skipped,
		CorrectAnswer: part.Spec.Raw,
	})
}

// advance moves past a resolved part: next part, trailing media, next
// question or completion.
func (s *Session) advance() {
	q := s.questions[s.qi]
	s.pi++
	if s.pi < len(q.Parts) {
		s.enterPart()
		return
	}

	if q.Image != "" && !q.ImageFirst() {
		s.listener.OnNeedMedia(s.media(q))
	}

	s.qi++
	if s.qi < len(s.questions) {
		s.enterQuestion()
		return
	}
	s.complete()
}

func (s *Session) enterQuestion() {
	q := s.questions[s.qi]
	s.pi = 0
	if q.ImageFirst() {
		s.listener.OnNeedMedia(s.media(q))
	}
	s.enterPart()
}

func (s *Session) enterPart() {
	s.phase = PhaseAwaitingPart
	s.attempt = 0
	s.remaining = slices.Clone(s.currentPart().Spec.Answers)
	p, _ := s.Next()
	s.listener.OnPartPrompt(p)
}

func (s *Session) media(q content.Question) content.MediaRef {
	return content.MediaRef{
		Category: s.path.Category,
		Lesson:   s.path.Lesson,
		Topic:    s.path.Topic,
		Name:     q.Image,
	}
}

func (s *Session) complete() {
	s.phase = PhaseComplete
	s.remaining = nil

	sum := Summary{
		SessionID: s.id,
		Path:      s.path,
		Start:     s.start,
		End:       s.now(),
		Outcomes:  slices.Clone(s.outcomes),
	}
	for _, o := range s.outcomes {
		if o.Correct {
			sum.Correct++
		} else {
			sum.Wrong++
		}
	}
	s.summary = &sum

	s.logger.Info("session complete",
		zap.Int("correct", sum.Correct),
		zap.Int("wrong", sum.Wrong),
		zap.Duration("elapsed", sum.Elapsed()),
	)
	s.journalSession(store.ActionEnd, len(s.outcomes))
	s.listener.OnSessionComplete(sum)
}

func (s *Session) journalSession(action string, parts int) {
	if s.journal == nil {
		return
	}
	data := store.SessionEventData{
		SessionID: s.id,
		Action:    action,
		Mode:      s.mode,
		Category:  s.path.Category,
		Lesson:    s.path.Lesson,
		Topic:     s.path.Topic,
		Parts:     parts,
	}
	if s.summary != nil {
		data.Correct = s.summary.Correct
		data.Wrong = s.summary.Wrong
		data.DurationSecs = int(s.summary.Elapsed().Seconds())
	}
	if err := s.journal.AppendSessionEvent(context.Background(), data); err != nil {
		s.logger.Warn("journal session event", zap.String("action", action), zapErr(err))
	}
}

func (s *Session) journalAnswer(text string, v Verdict) {
	if s.journal == nil {
		return
	}
	data := store.AnswerEventData{
		SessionID:     s.id,
		PromptKey:     v.Key,
		LearnerAnswer: text,
		CorrectAnswer: v.Answer,
		Verdict:       v.Kind.String(),
		Practice:      v.Kind == VerdictPracticeMatch || v.Kind == VerdictPracticeMiss,
	}
	if err := s.journal.AppendAnswerEvent(context.Background(), data); err != nil {
		s.logger.Warn("journal answer event", zapErr(err))
	}
}

func zapPath(p results.Path) zap.Field { return zap.String("topic", p.String()) }

func zapErr(err error) zap.Field { return zap.Error(err) }
