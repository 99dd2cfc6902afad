package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/app"
	"github.com/abhisek/playarcade/internal/badges"
	"github.com/abhisek/playarcade/internal/config"
	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/llm"
	"github.com/abhisek/playarcade/internal/logging"
	"github.com/abhisek/playarcade/internal/metrics"
	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/puzzle"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/session"
	"github.com/abhisek/playarcade/internal/store"
	"github.com/abhisek/playarcade/internal/tutor"
)

// runtime is everything a command needs, opened from the config.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
	kv     store.KV
	// journal is nil unless the SQLite backend is in use.
	journal store.EventRepo
	content *content.FSLoader

	closers []func() error
}

// openRuntime loads the config, builds the logger and opens the progress
// store. The TUI logs to a file next to the database so log lines never
// land on the alternate screen.
func openRuntime(cmd *cobra.Command, tui bool) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg}
	dbPath := ""
	if cfg.Store.Backend == config.BackendSQLite {
		if dbPath, err = resolveDBPath(cfg); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}

	logFile := cfg.Log.File
	if logFile == "" && tui {
		if dbPath != "" {
			logFile = filepath.Join(filepath.Dir(dbPath), "playarcade.log")
		} else if p, err := store.DefaultDBPath(); err == nil {
			logFile = filepath.Join(filepath.Dir(p), "playarcade.log")
		}
	}
	rt.logger, err = logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: logFile})
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, func() error {
		_ = rt.logger.Sync()
		return nil
	})

	if err := rt.openStore(cmd.Context(), dbPath); err != nil {
		rt.Close()
		return nil, err
	}

	if cfg.ContentDir != "" {
		rt.content = content.NewDirLoader(cfg.ContentDir, rt.logger.Named("content"))
	} else {
		rt.content = content.Embedded(rt.logger.Named("content"))
	}
	return rt, nil
}

func (rt *runtime) openStore(ctx context.Context, dbPath string) error {
	switch rt.cfg.Store.Backend {
	case config.BackendRedis:
		r := rt.cfg.Store.Redis
		kv, err := store.OpenRedis(ctx, store.RedisOptions{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
			Prefix:   r.Prefix,
		})
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		rt.kv = kv
		rt.closers = append(rt.closers, kv.Close)
	case config.BackendMemory:
		rt.kv = store.NewMemory()
	default:
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		rt.kv = st
		rt.journal = st.Events()
		rt.closers = append(rt.closers, st.Close)
	}
	rt.logger.Debug("store opened", zap.String("backend", rt.cfg.Store.Backend))
	return nil
}

// Close releases everything in reverse order of opening.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil && rt.logger != nil {
			rt.logger.Warn("close failed", zap.Error(err))
		}
	}
	rt.closers = nil
}

// newTutor builds the tutor. A missing LLM provider leaves it answering
// from the canned offline replies.
func (rt *runtime) newTutor(ctx context.Context, grade content.Grade) *tutor.Tutor {
	provider, err := llm.New(ctx, rt.cfg.LLM, rt.logger.Named("llm"), rt.journal)
	switch {
	case errors.Is(err, llm.ErrNoProvider):
		rt.logger.Info("no LLM provider configured, tutor runs offline")
		provider = nil
	case err != nil:
		rt.logger.Warn("LLM provider unavailable, tutor runs offline", zap.Error(err))
		provider = nil
	}
	return tutor.New(provider,
		tutor.WithLogger(rt.logger.Named("tutor")),
		tutor.WithTimeout(rt.cfg.LLM.Timeout),
		tutor.WithGrade(grade.DisplayName()),
	)
}

func (rt *runtime) ledgerOptions() []progress.Option {
	opts := []progress.Option{progress.WithLogger(rt.logger.Named("progress"))}
	if rt.journal != nil {
		opts = append(opts, progress.WithJournal(rt.journal))
	}
	return opts
}

// playerName prefers the name entered at login, then the configured one.
func (rt *runtime) playerName(ctx context.Context) string {
	if name, ok := progress.LookupStudentName(ctx, rt.kv); ok {
		return name
	}
	if rt.cfg.Student != "" {
		return rt.cfg.Student
	}
	return progress.DefaultStudentName
}

// env wires the services every screen shares.
func (rt *runtime) env(ctx context.Context, grade content.Grade) *screen.Env {
	player := rt.playerName(ctx)
	return &screen.Env{
		KV:          rt.kv,
		Journal:     rt.journal,
		Content:     content.NewCachedLoader(rt.content),
		Lessons:     rt.content,
		Catalog:     rt.content,
		Boards:      puzzle.NewResolver(rt.content.FS(), rt.logger.Named("puzzle")),
		Badges:      badges.NewService(rt.kv, rt.logger.Named("badges")),
		Leaderboard: progress.NewLeaderboard(rt.kv, rt.logger.Named("leaderboard")),
		Metrics:     metrics.New(),
		Tutor:       rt.newTutor(ctx, grade),
		Logger:      rt.logger,

		Player:       player,
		BattleWeight: rt.cfg.Scoring.BattleWeight,
		QuizWeight:   rt.cfg.Scoring.QuizWeight,
		Session:      []session.Option{session.WithAdvanceDelay(rt.cfg.Scoring.AdvanceDelay)},
	}
}

// runApp opens the store, builds dependencies, and launches the TUI on the
// welcome screen.
func runApp(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	return app.Run(ctx, rt.env(ctx, content.DefaultGrade))
}
