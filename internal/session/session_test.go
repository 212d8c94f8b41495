package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/store"
)

// eventLog records listener calls as short strings.
type eventLog struct {
	events    []string
	summaries []Summary
}

func (l *eventLog) OnNeedMedia(ref content.MediaRef) { l.events = append(l.events, "media:"+ref.Name) }
func (l *eventLog) OnPartPrompt(p Prompt)            { l.events = append(l.events, "prompt:"+p.Key) }
func (l *eventLog) OnVerdict(v Verdict)              { l.events = append(l.events, "verdict:"+v.Key) }
func (l *eventLog) OnSessionComplete(s Summary) {
	l.events = append(l.events, "complete")
	l.summaries = append(l.summaries, s)
}

func (l *eventLog) index(event string) int { return slices.Index(l.events, event) }

func question(t *testing.T, kv ...string) content.Question {
	t.Helper()
	q := content.Question{Kind: content.KindText}
	for i := 0; i+1 < len(kv); i += 2 {
		switch kv[i] {
		case content.KeyType:
			q.Kind = content.Kind(kv[i+1])
		case content.KeyImage:
			q.Image = kv[i+1]
		case content.KeyQuestion:
			q.Context = kv[i+1]
		default:
			spec, err := content.ParseAnswerSpec(kv[i+1])
			require.NoError(t, err)
			q.Parts = append(q.Parts, content.Part{Key: kv[i], Spec: spec})
		}
	}
	return q
}

func topicOf(qs ...content.Question) *content.Topic {
	return &content.Topic{Category: "science", Lesson: "physics", Name: "Motion", Questions: qs}
}

// stepClock advances a minute per call.
func stepClock() func() time.Time {
	t := time.Date(2026, 1, 2, 10, 0, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newSession(t *testing.T, topic *content.Topic, l Listener) *Session {
	t.Helper()
	s, err := New(topic, Options{
		PracticeAttempts: 2,
		Threshold:        80,
		Listener:         l,
		Rand:             rand.New(rand.NewPCG(1, 2)),
		Now:              stepClock(),
	})
	require.NoError(t, err)
	return s
}

func TestSubmit_CorrectResolvesPart(t *testing.T) {
	s := newSession(t, topicOf(question(t, "2+2", "4@basic arithmetic")), nil)

	v, err := s.Submit("4")
	require.NoError(t, err)
	assert.Equal(t, VerdictCorrect, v.Kind)
	assert.True(t, v.Correct)
	assert.Equal(t, []string{"4"}, v.Matched)
	assert.Equal(t, "basic arithmetic", v.Info)
	assert.True(t, v.PartDone)
	assert.True(t, s.Done())
}

func TestSubmit_MissEntersPractice(t *testing.T) {
	s := newSession(t, topicOf(question(t, "2+2", "4@basic arithmetic")), nil)

	v, err := s.Submit("four")
	require.NoError(t, err)
	assert.Equal(t, VerdictWrong, v.Kind)
	assert.False(t, v.PartDone)
	assert.Equal(t, 2, v.Attempts)
	assert.Equal(t, PhasePractice, s.Phase())

	p, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, PromptPractice, p.Kind)
	assert.Equal(t, "4", p.Target)
	assert.Equal(t, 1, p.Attempt)

	// A matching drill does not finish practice early.
	v, _ = s.Submit("4")
	assert.Equal(t, VerdictPracticeMatch, v.Kind)
	assert.False(t, v.PartDone)

	v, _ = s.Submit("nope")
	assert.Equal(t, VerdictPracticeMiss, v.Kind)
	assert.True(t, v.PartDone)
	assert.Equal(t, 2, v.Attempt)

	sum, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, 0, sum.Correct)
	assert.Equal(t, 1, sum.Wrong)
	assert.Equal(t, []results.WrongItem{{Question: "2+2", CorrectAnswer: "4"}}, sum.WrongItems())
}

func TestSubmit_MultipleRequiredAnswers(t *testing.T) {
	s := newSession(t, topicOf(question(t, "pets", "dog;cat")), nil)

	p, _ := s.Next()
	assert.Equal(t, 2, p.Remaining)

	v, _ := s.Submit("dog")
	assert.Equal(t, VerdictPartial, v.Kind)
	assert.Equal(t, 1, v.Remaining)
	assert.False(t, v.PartDone)

	p, _ = s.Next()
	assert.Equal(t, 1, p.Remaining)
	assert.Equal(t, 2, p.Required)

	v, _ = s.Submit("cat")
	assert.Equal(t, VerdictCorrect, v.Kind)
	assert.True(t, s.Done())

	sum, _ := s.Summary()
	assert.Equal(t, 1, sum.Correct)
}

func TestSubmit_UnmatchedKeepsRemaining(t *testing.T) {
	s := newSession(t, topicOf(question(t, "pets", "dog;cat")), nil)

	v, _ := s.Submit("bird")
	assert.Equal(t, VerdictWrong, v.Kind)
	assert.Equal(t, 2, v.Remaining)

	p, _ := s.Next()
	assert.Equal(t, "dog", p.Target)
	assert.Equal(t, 2, p.Remaining)
}

func TestSubmit_WrongReportsClosestAnswer(t *testing.T) {
	s := newSession(t, topicOf(question(t, "capital", "canberra;sydney")), nil)

	v, _ := s.Submit("kanbra")
	assert.Equal(t, VerdictWrong, v.Kind)
	assert.Equal(t, "canberra", v.Closest)
	assert.InDelta(t, 100*(10.0/14), v.Score, 1e-9)

	s = newSession(t, topicOf(question(t, "capital", "canberra;sydney")), nil)
	v, _ = s.Submit("xq")
	assert.Equal(t, VerdictWrong, v.Kind)
	assert.Empty(t, v.Closest)
	assert.Zero(t, v.Score)
}

func TestSubmit_SkipHasNoPractice(t *testing.T) {
	s := newSession(t, topicOf(question(t, "first", "a", "second", "b")), nil)

	v, err := s.Submit("  SKIP ")
	require.NoError(t, err)
	assert.Equal(t, VerdictSkipped, v.Kind)
	assert.True(t, v.PartDone)
	assert.Zero(t, v.Attempts)

	p, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, PromptPart, p.Kind)
	assert.Equal(t, "second", p.Key)

	s.Submit("b")
	sum, _ := s.Summary()
	require.Len(t, sum.Outcomes, 2)
	assert.True(t, sum.Outcomes[0].Skipped)
	assert.Equal(t, 1, sum.Wrong)
}

func TestSubmit_ZeroPracticeAttempts(t *testing.T) {
	s, err := New(topicOf(question(t, "2+2", "4")), Options{Threshold: 80})
	require.NoError(t, err)

	v, _ := s.Submit("five")
	assert.Equal(t, VerdictWrong, v.Kind)
	assert.True(t, v.PartDone)
	assert.True(t, s.Done())
}

func TestSession_CompletesExactlyOnce(t *testing.T) {
	log := &eventLog{}
	topic := topicOf(
		question(t, "question", "capitals", "France", "Paris", "Spain", "Madrid"),
		question(t, "2+2", "4"),
		question(t, "pets", "dog;cat"),
	)
	s := newSession(t, topic, log)

	for {
		p, ok := s.Next()
		if !ok {
			break
		}
		switch {
		case p.Kind == PromptPractice:
			s.Submit(p.Target)
		case p.Key == "France":
			s.Submit("paris")
		case p.Key == "pets":
			s.Submit("cat dog") // matches neither at 80
		default:
			s.Submit("skip")
		}
	}

	require.Len(t, log.summaries, 1)
	sum := log.summaries[0]
	assert.Equal(t, topic.PartCount(), sum.Correct+sum.Wrong)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 3, sum.Wrong)
	assert.Equal(t, "complete", log.events[len(log.events)-1])

	_, err := s.Submit("again")
	assert.ErrorIs(t, err, ErrSessionComplete)
	assert.Len(t, log.summaries, 1)
}

func TestSession_MediaOrdering(t *testing.T) {
	log := &eventLog{}
	topic := topicOf(
		question(t, "type", "image", "image", "before.png", "angle", "30"),
		question(t, "image", "after.png", "stored as", "chemical"),
		question(t, "type", "image", "plain", "x"),
	)
	s := newSession(t, topic, log)
	for !s.Done() {
		s.Submit("skip")
	}

	before := log.index("media:before.png")
	require.NotEqual(t, -1, before)
	assert.Equal(t, "prompt:angle", log.events[before+1])

	after := log.index("media:after.png")
	require.NotEqual(t, -1, after)
	assert.Equal(t, "verdict:stored as", log.events[after-1])

	assert.Equal(t, 2, len(slices.DeleteFunc(slices.Clone(log.events), func(e string) bool {
		return len(e) < 6 || e[:6] != "media:"
	})))
}

func TestSession_ShuffleIsPermutation(t *testing.T) {
	var qs []content.Question
	var keys []string
	for i := range 12 {
		k := fmt.Sprintf("q%d", i)
		keys = append(keys, k)
		qs = append(qs, question(t, k, "x"))
	}

	order := func(seed uint64) []string {
		s, err := New(topicOf(qs...), Options{Rand: rand.New(rand.NewPCG(seed, seed))})
		require.NoError(t, err)
		var got []string
		for {
			p, ok := s.Next()
			if !ok {
				return got
			}
			got = append(got, p.Key)
			s.Submit("skip")
		}
	}

	a := order(7)
	assert.ElementsMatch(t, keys, a)
	assert.Equal(t, a, order(7))
	assert.NotEqual(t, keys, a)
	assert.Equal(t, "q0", qs[0].Parts[0].Key, "topic order is untouched")
}

func TestNew_RejectsEmpty(t *testing.T) {
	_, err := New(topicOf(), Options{})
	assert.ErrorIs(t, err, ErrEmptyTopic)

	_, err = New(topicOf(content.Question{Image: "a.png"}), Options{})
	assert.ErrorIs(t, err, ErrNoParts)
}

type flakyRecorder struct {
	appendErrs []error
	bumpErrs   []error
	appends    int
	bumps      int
}

func (r *flakyRecorder) Append(ctx context.Context, p results.Path, rec results.Record) error {
	r.appends++
	if len(r.appendErrs) > 0 {
		err := r.appendErrs[0]
		r.appendErrs = r.appendErrs[1:]
		return err
	}
	return nil
}

func (r *flakyRecorder) BumpLearningCount(ctx context.Context, p results.Path) error {
	r.bumps++
	if len(r.bumpErrs) > 0 {
		err := r.bumpErrs[0]
		r.bumpErrs = r.bumpErrs[1:]
		return err
	}
	return nil
}

func TestFinalize_RetriesFailedStepOnly(t *testing.T) {
	s := newSession(t, topicOf(question(t, "2+2", "4")), nil)
	rec := &flakyRecorder{bumpErrs: []error{errors.New("disk full")}}

	assert.ErrorIs(t, s.Finalize(context.Background(), rec), ErrSessionIncomplete)

	s.Submit("4")
	err := s.Finalize(context.Background(), rec)
	var perr *results.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bump", perr.Op)

	_, ok := s.Summary()
	assert.True(t, ok, "summary survives a failed finalize")

	require.NoError(t, s.Finalize(context.Background(), rec))
	assert.Equal(t, 1, rec.appends)
	assert.Equal(t, 2, rec.bumps)

	require.NoError(t, s.Finalize(context.Background(), rec))
	assert.Equal(t, 1, rec.appends)
}

func TestFinalize_WritesResultsAndCount(t *testing.T) {
	fs := afero.NewMemMapFs()
	rs := results.New(fs, "/results")
	ctx := context.Background()

	s := newSession(t, topicOf(question(t, "2+2", "4"), question(t, "pets", "dog;cat")), nil)
	for !s.Done() {
		s.Submit("skip")
	}
	require.NoError(t, s.Finalize(ctx, rs))

	got, err := rs.Read(ctx, s.Path())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].WrongAnswers)
	assert.Len(t, got[0].WrongItems, 2)
	assert.Greater(t, got[0].TimeTakenMinutes, 0.0)

	counts, err := rs.LearningCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Get(s.Path()))
}

type memJournal struct {
	sessions []store.SessionEventData
	answers  []store.AnswerEventData
	fail     bool
}

func (j *memJournal) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	if j.fail {
		return errors.New("locked")
	}
	j.sessions = append(j.sessions, d)
	return nil
}

func (j *memJournal) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	if j.fail {
		return errors.New("locked")
	}
	j.answers = append(j.answers, d)
	return nil
}

func TestSession_Journal(t *testing.T) {
	j := &memJournal{}
	s, err := New(topicOf(question(t, "2+2", "4")), Options{
		PracticeAttempts: 1, Threshold: 80, Journal: j, Mode: "speak",
	})
	require.NoError(t, err)

	s.Submit("five")
	s.Submit("4")

	require.Len(t, j.sessions, 2)
	assert.Equal(t, store.ActionStart, j.sessions[0].Action)
	assert.Equal(t, "speak", j.sessions[0].Mode)
	assert.Equal(t, store.ActionEnd, j.sessions[1].Action)
	assert.Equal(t, 1, j.sessions[1].Wrong)
	assert.Equal(t, s.ID(), j.sessions[1].SessionID)

	require.Len(t, j.answers, 2)
	assert.Equal(t, "wrong", j.answers[0].Verdict)
	assert.True(t, j.answers[1].Practice)
}

func TestSession_JournalFailureIsNotFatal(t *testing.T) {
	s, err := New(topicOf(question(t, "2+2", "4")), Options{Journal: &memJournal{fail: true}})
	require.NoError(t, err)

	_, err = s.Submit("4")
	assert.NoError(t, err)
	assert.True(t, s.Done())
}

func TestNext_CarriesLeadingImage(t *testing.T) {
	s := newSession(t, topicOf(
		question(t, content.KeyType, "image", content.KeyImage, "ramp.png", "angle", "30"),
	), nil)

	p, ok := s.Next()
	require.True(t, ok)
	require.NotNil(t, p.Image)
	assert.Equal(t, "ramp.png", p.Image.Name)
	assert.Equal(t, "Motion", p.Image.Topic)

	s = newSession(t, topicOf(question(t, content.KeyImage, "after.png", "angle", "30")), nil)
	p, _ = s.Next()
	assert.Nil(t, p.Image)
}
