package results

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

// ResultFile is the file name of a topic's result history.
const ResultFile = "result.json"

// DefaultCountsFile is the learning-count table name inside the results
// directory when no explicit location is configured.
const DefaultCountsFile = "learning_data.json"

var indentOpts = &pretty.Options{Width: 80, Indent: "    "}

// Store persists result histories and the learning-count table. Writes are
// whole-file and atomic per call; there is no locking between processes.
type Store struct {
	fs         afero.Fs
	dir        string
	countsFile string
	logger     *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithCountsFile overrides the learning-count table location.
func WithCountsFile(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.countsFile = path
		}
	}
}

// New returns a Store rooted at dir. A nil fs means the host filesystem.
func New(fs afero.Fs, dir string, opts ...Option) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	s := &Store{
		fs:         fs,
		dir:        dir,
		countsFile: filepath.Join(dir, DefaultCountsFile),
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ResultPath returns the result file location for p.
func (s *Store) ResultPath(p Path) string {
	return filepath.Join(s.dir, p.Category, p.Lesson, p.Topic, ResultFile)
}

// CountsPath returns the learning-count table location.
func (s *Store) CountsPath() string { return s.countsFile }

// Append adds rec to the end of p's history.
func (s *Store) Append(ctx context.Context, p Path, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file := s.ResultPath(p)

	records, err := s.load(file)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if rec.WrongItems == nil {
		rec.WrongItems = []WrongItem{}
	}
	records = append(records, rec)

	data, err := json.Marshal(records)
	if err != nil {
		return &PersistenceError{Op: "encode", Path: file, Err: err}
	}
	if err := writeAtomic(s.fs, file, pretty.PrettyOptions(data, indentOpts)); err != nil {
		return &PersistenceError{Op: "write", Path: file, Err: err}
	}
	s.logger.Debug("result appended",
		zap.String("topic", p.String()),
		zap.Int("records", len(records)),
	)
	return nil
}

// Read returns p's history ordered by time taken, fastest first. Records
// with equal time keep their file order.
func (s *Store) Read(ctx context.Context, p Path) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := s.load(s.ResultPath(p))
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Compare(a.TimeTakenMinutes, b.TimeTakenMinutes)
	})
	return records, nil
}

func (s *Store) load(file string) ([]Record, error) {
	data, err := afero.ReadFile(s.fs, file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "read", Path: file, Err: err}
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &PersistenceError{Op: "decode", Path: file, Err: err}
	}
	return records, nil
}

// writeAtomic replaces file with data through a temp file in the same
// directory.
func writeAtomic(fs afero.Fs, file string, data []byte) error {
	dir := filepath.Dir(file)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(file)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(name)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Rename(name, file); err != nil {
		fs.Remove(name)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
