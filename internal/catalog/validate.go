package catalog

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// validateCourses performs all structural checks on the given courses.
// Returns a combined error describing all problems found, or nil if valid.
func validateCourses(courses []Course) error {
	var errs []string

	if len(courses) == 0 {
		errs = append(errs, "no courses")
	}

	courseIDs := make(map[string]bool, len(courses))
	for _, c := range courses {
		if strings.TrimSpace(c.ID) == "" {
			errs = append(errs, fmt.Sprintf("course %q has an empty id", c.Title))
		} else if courseIDs[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate course ID: %q", c.ID))
		}
		courseIDs[c.ID] = true

		if strings.TrimSpace(c.Title) == "" {
			errs = append(errs, fmt.Sprintf("course %q has an empty title", c.ID))
		}
		if len(c.Lessons) == 0 {
			errs = append(errs, fmt.Sprintf("course %q has no lessons", c.ID))
		}

		lessonIDs := make(map[string]bool, len(c.Lessons))
		for _, l := range c.Lessons {
			prefix := fmt.Sprintf("course %q lesson %q", c.ID, l.ID)
			if strings.TrimSpace(l.ID) == "" {
				errs = append(errs, fmt.Sprintf("course %q has a lesson with an empty id", c.ID))
			} else if lessonIDs[l.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate lesson ID", prefix))
			}
			lessonIDs[l.ID] = true

			if strings.TrimSpace(l.Title) == "" {
				errs = append(errs, fmt.Sprintf("%s: empty title", prefix))
			}
			if l.HasQuiz() {
				if err := quiz.Validate(l.Questions); err != nil {
					errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
