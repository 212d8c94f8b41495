package content

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// Store reads lessons from learning_section_directory and resolves images
// under image_directory. It holds no cached state; every call hits fs.
type Store struct {
	fs       afero.Fs
	root     string
	imageDir string
}

// NewStore returns a Store over fs. A nil fs means the host filesystem.
func NewStore(fs afero.Fs, root, imageDir string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, root: root, imageDir: imageDir}
}

// ListCategories returns the category directory names, sorted.
func (s *Store) ListCategories() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, &Error{Path: s.root, Err: err}
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// ListLessons returns the lesson names of a category, without the file
// suffix, sorted. The suffix match is exact, so every listed name loads.
func (s *Store) ListLessons(category string) ([]string, error) {
	dir := filepath.Join(s.root, category)
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Path: category, Err: notFoundf("category %q", category)}
		}
		return nil, &Error{Path: category, Err: err}
	}
	var out []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), LessonExt)
		if e.IsDir() || !ok || name == "" {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// LoadLesson reads, validates and parses one lesson file.
func (s *Store) LoadLesson(category, lesson string) (*Lesson, error) {
	lesson = LessonName(lesson)
	rel := path.Join(category, lesson+LessonExt)

	data, err := afero.ReadFile(s.fs, filepath.Join(s.root, category, lesson+LessonExt))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Path: rel, Err: notFoundf("lesson %q", lesson)}
		}
		return nil, &Error{Path: rel, Err: err}
	}

	if !gjson.ValidBytes(data) {
		return nil, &Error{Path: rel, Err: fmt.Errorf("invalid JSON")}
	}
	if err := validateLesson(data); err != nil {
		return nil, &Error{Path: rel, Err: err}
	}

	l, err := parseLesson(category, lesson, data)
	if err != nil {
		return nil, &Error{Path: rel, Err: err}
	}
	return l, nil
}

// LoadTopic is LoadLesson followed by Lesson.Topic.
func (s *Store) LoadTopic(category, lesson, topic string) (*Topic, error) {
	l, err := s.LoadLesson(category, lesson)
	if err != nil {
		return nil, err
	}
	return l.Topic(topic)
}

// ImagePath resolves a media reference to a file path. ok is false when the
// file does not exist; callers report that as a notice and carry on.
func (s *Store) ImagePath(ref MediaRef) (p string, ok bool) {
	p = filepath.Join(s.imageDir, ref.Category, LessonName(ref.Lesson), ref.Topic, ref.Name)
	if _, err := s.fs.Stat(p); err != nil {
		return p, false
	}
	return p, true
}

// parseLesson walks the document with gjson so topics, questions and parts
// come out in file order.
func parseLesson(category, lesson string, data []byte) (*Lesson, error) {
	l := &Lesson{Category: category, Name: lesson}

	var firstErr error
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		t := &Topic{Category: category, Lesson: lesson, Name: key.String()}
		idx := 0
		value.ForEach(func(_, qv gjson.Result) bool {
			q, err := parseQuestion(qv)
			if err != nil {
				firstErr = fmt.Errorf("topic %q question %d: %w", t.Name, idx+1, err)
				return false
			}
			t.Questions = append(t.Questions, q)
			idx++
			return true
		})
		if firstErr != nil {
			return false
		}
		l.topics = append(l.topics, t)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return l, nil
}

func parseQuestion(v gjson.Result) (Question, error) {
	q := Question{Kind: KindText}

	var firstErr error
	v.ForEach(func(k, val gjson.Result) bool {
		key := k.String()
		switch {
		case key == KeyQuestion:
			q.Context = val.String()
		case key == KeyType:
			if Kind(val.String()) == KindImage {
				q.Kind = KindImage
			}
		case key == KeyImage:
			q.Image = val.String()
		case strings.HasPrefix(key, "_"):
			// comment
		default:
			spec, err := ParseAnswerSpec(val.String())
			if err != nil {
				firstErr = fmt.Errorf("part %q: %w", key, err)
				return false
			}
			q.Parts = append(q.Parts, Part{Key: key, Spec: spec})
		}
		return true
	})
	if firstErr != nil {
		return Question{}, firstErr
	}
	if len(q.Parts) == 0 {
		return Question{}, fmt.Errorf("no answerable parts")
	}
	return q, nil
}
