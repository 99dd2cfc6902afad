package screen

import (
	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/badges"
	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/metrics"
	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/session"
	"github.com/abhisek/playarcade/internal/store"
	"github.com/abhisek/playarcade/internal/tutor"
)

// Env carries the services every screen may need. Optional fields may be
// nil.
type Env struct {
	KV          store.KV
	Journal     store.EventRepo
	Content     content.Loader
	Lessons     content.LessonLoader
	Catalog     Catalog
	Boards      session.BoardLoader
	Badges      *badges.Service
	Leaderboard *progress.Leaderboard
	Metrics     *metrics.Metrics
	Tutor       *tutor.Tutor
	Logger      *zap.Logger

	Player       string
	BattleWeight int
	QuizWeight   int
	Session      []session.Option // extra session options, e.g. a test clock
}

// Catalog lists the subject files a grade carries.
type Catalog interface {
	Subjects(grade content.Grade) []string
}

// SubjectsFor returns the playable subjects of grade, or every known
// subject when no catalog is wired.
func (e *Env) SubjectsFor(grade content.Grade) []string {
	if e.Catalog != nil {
		if subjects := e.Catalog.Subjects(grade); len(subjects) > 0 {
			return subjects
		}
	}
	return content.Subjects
}

// LedgerOptions returns the progress options shared by every screen.
func (e *Env) LedgerOptions() []progress.Option {
	opts := []progress.Option{progress.WithLogger(e.logger()), progress.WithMetrics(e.Metrics)}
	if e.Journal != nil {
		opts = append(opts, progress.WithJournal(e.Journal))
	}
	return opts
}

func (e *Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
