package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show XP, streaks and the weekly goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		gradeFlag, _ := cmd.Flags().GetString("grade")
		grade, err := content.ParseGrade(gradeFlag)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		ledger := progress.Load(ctx, rt.kv, grade, rt.ledgerOptions()...)
		st := ledger.State()
		profile, err := progress.LoadProfile(ctx, rt.kv)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		name := rt.playerName(ctx)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", name)
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-14s %d (level %d, next at %d)\n", "XP", st.XP,
			progress.PlayerLevel(st.XP), progress.NextPlayerLevelAt(st.XP))
		fmt.Fprintf(out, "%-14s %d\n", grade.DisplayName()+" XP", ledger.GradeXP())
		fmt.Fprintf(out, "%-14s %d (best %d)\n", "Streak", st.Streak, st.BestStreak)
		fmt.Fprintf(out, "%-14s %d\n", "Quizzes", st.Quizzes)
		fmt.Fprintf(out, "%-14s %d\n", "Correct", st.Correct)
		fmt.Fprintf(out, "%-14s %d\n", "Badges", len(profile.Badges))
		fmt.Fprintf(out, "%-14s %d/%d (%d%%) %s\n", "Weekly goal", st.WeeklyXP, st.WeeklyTarget,
			st.WeeklyPercent(), st.WeeklyGoal().Message())

		if len(st.SubjectStats) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Quizzes by subject")
			subjects := make([]string, 0, len(st.SubjectStats))
			for s := range st.SubjectStats {
				subjects = append(subjects, s)
			}
			sort.Strings(subjects)
			for _, s := range subjects {
				fmt.Fprintf(out, "  %-12s %d\n", content.SubjectTitle(s), st.SubjectStats[s])
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("grade", string(content.DefaultGrade), "Grade whose XP to show")
}
