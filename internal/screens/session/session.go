// Package session is the quiz screen: it drives a session.Session from
// a text input and shows verdicts, practice drills and images.
package session

import (
	"context"
	"fmt"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/router"
	"github.com/quant-rishabh/learn-through-quiz/internal/screen"
	"github.com/quant-rishabh/learn-through-quiz/internal/screens/summary"
	sess "github.com/quant-rishabh/learn-through-quiz/internal/session"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/components"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/layout"
)

const finalizeTimeout = 10 * time.Second

// ImageResolver locates question images on disk.
type ImageResolver interface {
	ImagePath(ref content.MediaRef) (string, bool)
}

// mediaListener collects image requests raised while the session runs.
type mediaListener struct {
	sess.NopListener
	pending *[]content.MediaRef
}

func (l mediaListener) OnNeedMedia(ref content.MediaRef) {
	*l.pending = append(*l.pending, ref)
}

// SessionScreen implements screen.Screen for an active quiz.
type SessionScreen struct {
	topic    *content.Topic
	session  *sess.Session
	recorder sess.Recorder
	images   ImageResolver

	prompt components.TextInput
	media  []content.MediaRef
	last   *sess.Verdict

	correct int
	wrong   int

	showingFeedback    bool
	showingQuitConfirm bool
	finishing          bool
	errMsg             string
	saveErr            string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)

// New creates a SessionScreen over topic. rec persists the result when
// the last part is resolved; images may be nil.
func New(topic *content.Topic, opts sess.Options, rec sess.Recorder, images ImageResolver) *SessionScreen {
	s := &SessionScreen{
		topic:    topic,
		recorder: rec,
		images:   images,
		prompt:   components.NewTextInput("Type your answer...", 0),
	}
	opts.Listener = mediaListener{pending: &s.media}

	started, err := sess.New(topic, opts)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.session = started
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.prompt.Init()
}

func (s *SessionScreen) Title() string {
	if s.topic == nil {
		return "Quiz"
	}
	return s.topic.Name
}

func (s *SessionScreen) Status() string {
	return fmt.Sprintf("✓ %d  ✗ %d", s.correct, s.wrong)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.saveErr != "":
		return []layout.KeyHint{
			{Key: "R", Description: "Retry save"},
			{Key: "Esc", Description: "Discard"},
		}
	case s.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon"},
			{Key: "N", Description: "Keep going"},
		}
	case s.showingFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: sess.SkipToken, Description: "Give up on a part"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.saveErr != "":
		return renderSaveError(width, s.saveErr)
	case s.finishing:
		return renderSaving(width)
	case s.showingQuitConfirm:
		return renderQuitConfirm(width)
	case s.showingFeedback:
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case finalizedMsg:
		return s.handleFinalized(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.active() {
		var cmd tea.Cmd
		s.prompt, cmd = s.prompt.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) active() bool {
	return s.session != nil && s.errMsg == "" && s.saveErr == "" &&
		!s.finishing && !s.showingFeedback && !s.showingQuitConfirm
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.saveErr != "" {
		switch key {
		case "r", "R":
			s.saveErr = ""
			s.finishing = true
			return s, s.finalize()
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.finishing {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		s.showingFeedback = false
		s.media = nil
		return s, s.afterFeedback()
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "enter":
		return s.submitAnswer()
	}

	var cmd tea.Cmd
	s.prompt, cmd = s.prompt.Update(msg)
	return s, cmd
}

// submitAnswer grades the typed text. Empty input is ignored.
func (s *SessionScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	text := s.prompt.Value()
	if text == "" {
		return s, nil
	}

	s.media = nil
	v, err := s.session.Submit(text)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.last = &v
	s.prompt.Reset()
	s.media = s.trailingMedia()

	switch v.Kind {
	case sess.VerdictCorrect:
		s.correct++
	case sess.VerdictWrong, sess.VerdictSkipped:
		s.wrong++
	}

	// Misses and images get a screen of their own so the answer can be read.
	if v.Kind == sess.VerdictWrong || v.Kind == sess.VerdictSkipped || len(s.media) > 0 {
		s.showingFeedback = true
		return s, nil
	}
	return s, s.afterFeedback()
}

// trailingMedia drops the next question's leading image from the pending
// list; the question view shows that one itself.
func (s *SessionScreen) trailingMedia() []content.MediaRef {
	p, ok := s.session.Next()
	if !ok || p.Image == nil {
		return s.media
	}
	return slices.DeleteFunc(s.media, func(ref content.MediaRef) bool {
		return ref == *p.Image
	})
}

// afterFeedback starts persisting once the session has nothing left to ask.
func (s *SessionScreen) afterFeedback() tea.Cmd {
	if !s.session.Done() {
		return nil
	}
	s.finishing = true
	return s.finalize()
}

func (s *SessionScreen) finalize() tea.Cmd {
	started, rec := s.session, s.recorder
	return func() tea.Msg {
		if rec == nil {
			return finalizedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
		defer cancel()
		return finalizedMsg{Err: started.Finalize(ctx, rec)}
	}
}

func (s *SessionScreen) handleFinalized(msg finalizedMsg) (screen.Screen, tea.Cmd) {
	s.finishing = false
	if msg.Err != nil {
		s.saveErr = msg.Err.Error()
		return s, nil
	}
	sum, _ := s.session.Summary()
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}
