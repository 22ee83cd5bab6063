package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/content"
	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/quizgen"
	"github.com/abhisek/quizdeck/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a lesson quiz with the configured LLM",
	Long: `Generate multiple-choice questions for a lesson and emit a content pack
holding the course with that lesson's quiz replaced.

The LLM provider is configured from the environment (QUIZDECK_LLM_PROVIDER,
or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY).`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("course", "", "Course ID (required)")
	generateCmd.Flags().String("lesson", "", "Lesson ID (required)")
	generateCmd.Flags().Int("count", 0, "Number of questions (default from generator config)")
	generateCmd.Flags().StringP("out", "o", "", "Output pack file (stdout when unset)")
	generateCmd.Flags().Bool("no-log", false, "Do not record LLM calls in the database")
	_ = generateCmd.MarkFlagRequired("course")
	_ = generateCmd.MarkFlagRequired("lesson")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	courseID, _ := cmd.Flags().GetString("course")
	lessonID, _ := cmd.Flags().GetString("lesson")
	count, _ := cmd.Flags().GetInt("count")
	outPath, _ := cmd.Flags().GetString("out")
	noLog, _ := cmd.Flags().GetBool("no-log")

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	course, err := cat.Course(courseID)
	if err != nil {
		return fmt.Errorf("%w: %q", err, courseID)
	}
	lesson, err := cat.Lesson(courseID, lessonID)
	if err != nil {
		return fmt.Errorf("%w: %q", err, lessonID)
	}

	var eventRepo store.EventRepo
	if !noLog {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		eventRepo = st.EventRepo()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
	defer cancel()

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Generating questions for %s · %s with %s...\n",
		course.Title, lesson.Title, provider.ModelID())

	gen := quizgen.New(provider, quizgen.DefaultConfig())
	questions, err := gen.Generate(ctx, quizgen.GenerateInput{
		Course: course,
		Lesson: lesson,
		Count:  count,
	})
	if err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}

	pack, err := content.Encode(course.Title+" (generated)", []catalog.Course{withLessonQuiz(course, lessonID, questions)})
	if err != nil {
		return err
	}
	return writeOutput(cmd, outPath, pack)
}

// withLessonQuiz returns a copy of course holding only lessonID, with its
// questions replaced.
func withLessonQuiz(course catalog.Course, lessonID string, questions []quiz.Question) catalog.Course {
	out := course
	out.Lessons = nil
	for _, l := range course.Lessons {
		if l.ID == lessonID {
			l.Questions = questions
			out.Lessons = append(out.Lessons, l)
		}
	}
	return out
}
