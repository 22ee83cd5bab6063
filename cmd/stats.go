package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics and course progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rep, err := progress.Load(cmd.Context(), cat, st.EventRepo(), time.Now())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		s := rep.Stats
		last := ""
		if !s.LastActivity.IsZero() {
			last = s.LastActivity.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintln(out, "Learner stats")
		printFields(out,
			field{"Quiz attempts", s.Attempts},
			field{"Passed", s.Passed},
			field{"Lessons completed", s.CompletedLessons},
			field{"Average score", fmt.Sprintf("%d%%", s.AverageScore)},
			field{"Courses touched", s.UniqueCourses},
			field{"Streak", fmt.Sprintf("%d days", s.Streak)},
			field{"Last activity", last},
		)

		ov := rep.Overview
		fmt.Fprintf(out, "\nCourse progress: %d%% overall, %d completed, %d in progress\n",
			ov.Overall, ov.Completed, ov.InProgress)
		rows := make([][]string, len(ov.Courses))
		for i, cp := range ov.Courses {
			rows[i] = []string{truncate(cp.Course.Title, 32), cp.Status().Label(),
				fmt.Sprintf("%d%%", cp.Percent), fmt.Sprintf("%d/%d", cp.Completed, cp.Total)}
		}
		printTable(out, []string{"Course", "Status", "Progress", "Quizzes passed"}, rows)
		return nil
	},
}
