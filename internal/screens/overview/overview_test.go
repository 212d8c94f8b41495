package overview

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/afero"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/router"
)

func fixture(t *testing.T) (*content.Store, *results.Store) {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/content/science/physics.json": `{"Motion":[{"speed":"fast"}],"Energy":[{"joule":"unit"}]}`,
		"/content/science/broken.json":  `{"Motion":`,
	}
	for name, body := range files {
		if err := afero.WriteFile(fs, name, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return content.NewStore(fs, "/content", "/images"), results.New(fs, "/results")
}

func TestLoad_SyncsNewTopics(t *testing.T) {
	cs, rs := fixture(t)
	ctx := context.Background()
	if err := rs.BumpLearningCount(ctx, results.Path{Category: "science", Lesson: "physics", Topic: "Energy"}); err != nil {
		t.Fatal(err)
	}

	counts, skipped, err := Load(ctx, cs, rs)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 1 {
		t.Errorf("expected the broken lesson to be skipped, got %v", skipped)
	}
	if got := counts.Get(results.Path{Category: "science", Lesson: "physics", Topic: "Energy"}); got != 1 {
		t.Errorf("Energy count = %d, want 1", got)
	}
	if got := counts.Get(results.Path{Category: "science", Lesson: "physics", Topic: "Motion"}); got != 0 {
		t.Errorf("Motion count = %d, want 0", got)
	}

}

func TestOverviewScreen_LoadAndBack(t *testing.T) {
	cs, rs := fixture(t)
	o := New(cs, rs)
	o.Update(o.Init()())

	view := o.View(100, 40)
	if !strings.Contains(view, "physics") {
		t.Errorf("expected lesson in view:\n%s", view)
	}
	if !strings.Contains(view, "skipped") {
		t.Error("expected the skipped lesson to be reported")
	}

	_, cmd := o.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Esc")
	}
}
