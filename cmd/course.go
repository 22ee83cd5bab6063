package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Browse the course catalog",
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses (optionally filtered by title or instructor)",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		courses := cat.Search(search)
		out := cmd.OutOrStdout()
		if len(courses) == 0 {
			fmt.Fprintln(out, "No courses found.")
			return nil
		}

		rows := make([][]string, len(courses))
		for i, c := range courses {
			rows[i] = []string{c.ID, truncate(c.Title, 32), c.Instructor, c.Category,
				fmt.Sprintf("%d (%d quizzes)", len(c.Lessons), len(c.QuizLessons()))}
		}
		printTable(out, []string{"ID", "Title", "Instructor", "Category", "Lessons"}, rows)
		return nil
	},
}

var courseShowCmd = &cobra.Command{
	Use:   "show <course-id>",
	Short: "Show a course and its lessons",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		c, err := cat.Course(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q", err, args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, c.Title)
		printFields(out,
			field{"Instructor", c.Instructor},
			field{"Category", c.Category},
			field{"Level", c.Level},
		)
		if c.Description != "" {
			fmt.Fprintf(out, "\n%s\n", c.Description)
		}
		fmt.Fprintln(out)

		rows := make([][]string, len(c.Lessons))
		for i, l := range c.Lessons {
			quiz := "no quiz"
			if l.HasQuiz() {
				quiz = fmt.Sprintf("%d questions", len(l.Questions))
			}
			rows[i] = []string{strconv.Itoa(i + 1), truncate(l.Title, 32), l.Duration, quiz, l.ID}
		}
		printTable(out, []string{"#", "Lesson", "Length", "Quiz", "ID"}, rows)
		return nil
	},
}

func init() {
	courseListCmd.Flags().StringP("search", "s", "", "Filter by title or instructor")

	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseShowCmd)
}
