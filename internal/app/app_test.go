package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/afero"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/screens/home"
)

func testModel() AppModel {
	fs := afero.NewMemMapFs()
	return newAppModel(Options{Services: home.Services{
		Content: content.NewStore(fs, "/content", "/images"),
		Results: results.New(fs, "/results"),
	}})
}

func TestAppModel_TooSmall(t *testing.T) {
	updated, _ := testModel().Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected the minimum size message")
	}
}

func TestAppModel_RendersHome(t *testing.T) {
	updated, _ := testModel().Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := updated.(AppModel).render()
	for _, want := range []string{"quizmaster", "Take a test", "Learning overview"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
