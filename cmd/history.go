package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		courseID, _ := cmd.Flags().GetString("course")
		lessonID, _ := cmd.Flags().GetString("lesson")

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := st.EventRepo().QueryQuizResults(cmd.Context(), store.QueryOpts{
			Limit:    limit,
			CourseID: courseID,
			LessonID: lessonID,
		})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No quiz results yet.")
			return nil
		}

		rows := make([][]string, len(results))
		for i, r := range results {
			title := r.LessonID
			if l, err := cat.Lesson(r.CourseID, r.LessonID); err == nil {
				title = l.Title
			}
			rows[i] = []string{
				strconv.Itoa(r.ID),
				r.CompletedAt.Local().Format("2006-01-02 15:04"),
				truncate(title, 32),
				fmt.Sprintf("%d/%d", r.Correct, r.Total),
				fmt.Sprintf("%d%%", r.Percentage),
				checkmark(r.Passed()),
			}
		}
		printTable(out, []string{"ID", "Completed", "Lesson", "Score", "%", "Pass"}, rows)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
	historyCmd.Flags().String("course", "", "Only results for this course ID")
	historyCmd.Flags().String("lesson", "", "Only results for this lesson ID")
}
