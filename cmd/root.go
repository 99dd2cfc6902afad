package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/playarcade/internal/config"
	"github.com/abhisek/playarcade/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "playarcade",
	Short: "Learning arcade for kids",
	Long:  "PlayArcade: picture puzzles, matching games, battles and quizzes for grades 1-5, right in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PLAYARCADE_DB env var)")
	rootCmd.PersistentFlags().String("config", "playarcade.yaml", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("content", "", "Directory of <grade>/<subject>.json level files")
	rootCmd.PersistentFlags().String("store", "", "Progress backend: sqlite, redis or memory")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file, .env and environment, then applies
// the persistent flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{
		File:     file,
		Required: cmd.Flags().Changed("config"),
		DotEnv:   ".env",
	})
	if err != nil {
		return config.Config{}, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if d, _ := cmd.Flags().GetString("content"); d != "" {
		cfg.ContentDir = d
	}
	if b, _ := cmd.Flags().GetString("store"); b != "" {
		cfg.Store.Backend = b
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database path from the config (flag, file or
// PLAYARCADE_DB), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
