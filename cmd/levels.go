package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/playarcade/internal/content"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the subjects of a grade, or the levels of one subject",
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
		subject, _ := cmd.Flags().GetString("subject")
		out := cmd.OutOrStdout()

		if subject == "" {
			subjects := rt.content.Subjects(grade)
			if len(subjects) == 0 {
				fmt.Fprintf(out, "No content for %s.\n", grade.DisplayName())
				return nil
			}
			for _, s := range subjects {
				fmt.Fprintf(out, "%-10s %s\n", s, content.ModeForSubject(s).DisplayName())
			}
			return nil
		}

		set, err := rt.content.Load(cmd.Context(), grade, subject)
		if errors.Is(err, content.ErrNotFound) {
			fmt.Fprintf(out, "No %s levels for %s.\n", content.SubjectTitle(subject), grade.DisplayName())
			return nil
		}
		if err != nil {
			return err
		}

		for i := 1; i <= set.Len(); i++ {
			lvl, err := set.Level(i)
			if err != nil {
				fmt.Fprintf(out, "%3d  (invalid: %v)\n", i, err)
				continue
			}
			fmt.Fprintf(out, "%3d  %s\n", i, lvl.Title())
		}
		return nil
	},
}

func init() {
	levelsCmd.Flags().String("grade", string(content.DefaultGrade), "Grade to list")
	levelsCmd.Flags().String("subject", "", "Subject whose levels to list")
}
