package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/tutor"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor <question>",
	Short: "Ask the tutor a question",
	Args:  cobra.MinimumNArgs(1),
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
		reply, err := rt.newTutor(ctx, grade).Ask(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if reply.Lang != tutor.English {
			fmt.Fprintf(out, "[%s]\n", tutor.LanguageName(reply.Lang))
		}
		fmt.Fprintln(out, reply.Text)
		return nil
	},
}

func init() {
	tutorCmd.Flags().String("grade", string(content.DefaultGrade), "Grade to pitch the answer at")
}
