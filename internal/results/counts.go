package results

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// Counts is the learning-count table in file order.
type Counts []CategoryCounts

type CategoryCounts struct {
	Name    string
	Lessons []LessonCounts
}

type LessonCounts struct {
	Name   string
	Topics []TopicCount
}

type TopicCount struct {
	Name  string
	Count int
}

// Get returns the count for p, or 0 if the table has no entry.
func (c Counts) Get(p Path) int {
	for _, cat := range c {
		if cat.Name != p.Category {
			continue
		}
		for _, l := range cat.Lessons {
			if l.Name != p.Lesson {
				continue
			}
			for _, t := range l.Topics {
				if t.Name == p.Topic {
					return t.Count
				}
			}
		}
	}
	return 0
}

// BumpLearningCount increments p's count by one, creating any missing
// levels. Other entries are left as they are.
func (s *Store) BumpLearningCount(ctx context.Context, p Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := s.loadCounts()
	if err != nil {
		return err
	}

	keys := []string{p.Category, p.Lesson, p.Topic}
	current := lookup(doc, keys).Int()
	doc, err = setCount(doc, keys, current+1)
	if err != nil {
		return &PersistenceError{Op: "update", Path: s.countsFile, Err: err}
	}
	if err := s.saveCounts(doc); err != nil {
		return err
	}
	s.logger.Debug("learning count bumped",
		zap.String("topic", p.String()),
		zap.Int64("count", current+1),
	)
	return nil
}

// SyncTopics adds a zero entry for every topic the table does not know yet.
// Existing counts are untouched. It returns how many entries were added.
func (s *Store) SyncTopics(ctx context.Context, topics []Path) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	doc, err := s.loadCounts()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, p := range topics {
		keys := []string{p.Category, p.Lesson, p.Topic}
		if lookup(doc, keys).Exists() {
			continue
		}
		doc, err = setCount(doc, keys, 0)
		if err != nil {
			return 0, &PersistenceError{Op: "update", Path: s.countsFile, Err: err}
		}
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.saveCounts(doc); err != nil {
		return 0, err
	}
	s.logger.Info("learning table synced", zap.Int("added", added))
	return added, nil
}

// LearningCounts reads the table. A missing file is an empty table.
func (s *Store) LearningCounts(ctx context.Context) (Counts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := s.loadCounts()
	if err != nil {
		return nil, err
	}

	var out Counts
	gjson.Parse(doc).ForEach(func(ck, cv gjson.Result) bool {
		cat := CategoryCounts{Name: ck.String()}
		cv.ForEach(func(lk, lv gjson.Result) bool {
			lesson := LessonCounts{Name: lk.String()}
			lv.ForEach(func(tk, tv gjson.Result) bool {
				lesson.Topics = append(lesson.Topics, TopicCount{Name: tk.String(), Count: int(tv.Int())})
				return true
			})
			cat.Lessons = append(cat.Lessons, lesson)
			return true
		})
		out = append(out, cat)
		return true
	})
	return out, nil
}

func (s *Store) loadCounts() (string, error) {
	data, err := afero.ReadFile(s.fs, s.countsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "{}", nil
		}
		return "", &PersistenceError{Op: "read", Path: s.countsFile, Err: err}
	}
	doc := strings.TrimSpace(string(data))
	if doc == "" {
		return "{}", nil
	}
	if !gjson.Valid(doc) || !gjson.Parse(doc).IsObject() {
		return "", &PersistenceError{Op: "decode", Path: s.countsFile, Err: fmt.Errorf("not a JSON object")}
	}
	return doc, nil
}

func (s *Store) saveCounts(doc string) error {
	out := pretty.PrettyOptions([]byte(doc), indentOpts)
	if err := writeAtomic(s.fs, s.countsFile, out); err != nil {
		return &PersistenceError{Op: "write", Path: s.countsFile, Err: err}
	}
	return nil
}

// lookup walks keys one level at a time so names containing path syntax
// are matched literally.
func lookup(doc string, keys []string) gjson.Result {
	r := gjson.Parse(doc)
	for _, k := range keys {
		if !r.IsObject() {
			return gjson.Result{}
		}
		r = r.Get(gjson.Escape(k))
	}
	return r
}

// setCount writes n at keys, rebuilding each level from the innermost
// object outwards so new levels are always objects.
func setCount(doc string, keys []string, n int64) (string, error) {
	key := gjson.Escape(keys[0])
	if len(keys) == 1 {
		return sjson.Set(doc, key, n)
	}

	child := gjson.Get(doc, key)
	raw := "{}"
	if child.Exists() {
		if !child.IsObject() {
			return "", fmt.Errorf("%q is not an object", keys[0])
		}
		raw = child.Raw
	}
	updated, err := setCount(raw, keys[1:], n)
	if err != nil {
		return "", err
	}
	return sjson.SetRaw(doc, key, updated)
}
