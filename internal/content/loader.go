package content

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a grade/subject file does not exist.
var ErrNotFound = errors.New("content not found")

// SchemaError reports a content file that does not match its schema.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("content %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Loader fetches the levels of one grade/subject.
type Loader interface {
	Load(ctx context.Context, grade Grade, subject string) (*LevelSet, error)
}

// LessonLoader fetches a grade's lesson lists.
type LessonLoader interface {
	Lessons(ctx context.Context, grade Grade, kind LessonKind) ([]Lesson, error)
}

//go:embed data
var samplePack embed.FS

// FSLoader reads <grade>/<subject>.json files from a filesystem.
type FSLoader struct {
	fsys   fs.FS
	logger *zap.Logger
}

// NewFSLoader creates a loader rooted at fsys.
func NewFSLoader(fsys fs.FS, logger *zap.Logger) *FSLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FSLoader{fsys: fsys, logger: logger}
}

// NewDirLoader creates a loader over a content directory on disk.
func NewDirLoader(dir string, logger *zap.Logger) *FSLoader {
	return NewFSLoader(os.DirFS(dir), logger)
}

// Embedded returns a loader over the built-in sample pack.
func Embedded(logger *zap.Logger) *FSLoader {
	sub, err := fs.Sub(samplePack, "data")
	if err != nil {
		panic(err)
	}
	return NewFSLoader(sub, logger)
}

// FS exposes the underlying filesystem, used to resolve relative images.
func (l *FSLoader) FS() fs.FS { return l.fsys }

// Load reads and validates <grade>/<subject>.json.
func (l *FSLoader) Load(ctx context.Context, grade Grade, subject string) (*LevelSet, error) {
	data, p, err := l.read(ctx, grade, subject)
	if err != nil {
		return nil, err
	}

	schema := LevelFileSchema
	if ModeForSubject(subject) == ModeQuiz {
		schema = QuizFileSchema
	}
	if err := schema.ValidateJSON(data); err != nil {
		l.logger.Warn("content rejected", zap.String("path", p), zap.Error(err))
		return nil, &SchemaError{Path: p, Err: err}
	}

	set, err := NewLevelSet(grade, subject, data)
	if err != nil {
		return nil, &SchemaError{Path: p, Err: err}
	}
	l.logger.Debug("content loaded",
		zap.String("path", p),
		zap.String("mode", string(set.Mode)),
		zap.Int("levels", set.Len()),
	)
	return set, nil
}

// Lessons reads a grade's video or music lesson list.
func (l *FSLoader) Lessons(ctx context.Context, grade Grade, kind LessonKind) ([]Lesson, error) {
	data, p, err := l.read(ctx, grade, string(kind))
	if err != nil {
		return nil, err
	}
	if err := LessonFileSchema.ValidateJSON(data); err != nil {
		return nil, &SchemaError{Path: p, Err: err}
	}
	var lessons []Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return nil, &SchemaError{Path: p, Err: err}
	}
	for i := range lessons {
		if err := validate.Struct(&lessons[i]); err != nil {
			return nil, &SchemaError{Path: p, Err: fmt.Errorf("lesson %d: %w", i+1, err)}
		}
	}
	return lessons, nil
}

// Subjects lists the subject files present for a grade.
func (l *FSLoader) Subjects(grade Grade) []string {
	var out []string
	for _, s := range Subjects {
		if _, err := fs.Stat(l.fsys, path.Join(string(grade), s+".json")); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func (l *FSLoader) read(ctx context.Context, grade Grade, name string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	p := path.Join(string(grade), name+".json")
	data, err := fs.ReadFile(l.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("content missing", zap.String("path", p))
		return nil, p, fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	if err != nil {
		return nil, p, fmt.Errorf("read %s: %w", p, err)
	}
	return data, p, nil
}
