package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/app"
	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/metrics"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/screens/home"
	"github.com/abhisek/playarcade/internal/screens/play"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start playing, optionally jumping straight into a subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		gradeFlag, _ := cmd.Flags().GetString("grade")
		grade, err := content.ParseGrade(gradeFlag)
		if err != nil {
			return err
		}
		subject, _ := cmd.Flags().GetString("subject")
		level, _ := cmd.Flags().GetInt("level")

		ctx := cmd.Context()
		env := rt.env(ctx, grade)

		addr, _ := cmd.Flags().GetString("metrics-addr")
		if addr == "" {
			addr = rt.cfg.MetricsAddr
		}
		if addr != "" {
			stop := serveMetrics(env.Metrics, addr, rt.logger)
			defer stop()
		}

		var stack []screen.Screen
		if subject != "" {
			stack = []screen.Screen{home.New(env), play.New(env, grade, subject, level)}
		}
		return app.Run(ctx, env, stack...)
	},
}

// serveMetrics exposes the Prometheus handler until the returned stop
// function is called.
func serveMetrics(m *metrics.Metrics, addr string, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func init() {
	playCmd.Flags().String("grade", string(content.DefaultGrade), "Grade to play (grade1-grade9 or 1-9)")
	playCmd.Flags().String("subject", "", "Subject to open directly, e.g. maths, english or puzzle")
	playCmd.Flags().Int("level", 1, "Level to start at (1-based)")
	playCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. localhost:9090")
}
