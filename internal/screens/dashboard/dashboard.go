// Package dashboard is the home screen: learner stats, overall progress
// and the searchable course list.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/course"
	"github.com/abhisek/quizdeck/internal/screens/history"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// DashboardScreen is the root screen.
type DashboardScreen struct {
	env       screen.Env
	report    progress.Report
	courses   []catalog.Course
	menu      components.Menu
	search    components.SearchInput
	searching bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.Resumer = (*DashboardScreen)(nil)

// New creates a DashboardScreen.
func New(env screen.Env) *DashboardScreen {
	d := &DashboardScreen{
		env:     env,
		courses: env.Catalog.Courses(),
		search:  components.NewSearchInput("Search courses or instructors", 40),
		report:  progress.Compute(env.Catalog, nil, env.Clock()),
	}
	d.search.Model.Blur()
	d.menu = components.NewMenu(d.menuItems())
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return screen.LoadProgress(d.env)
}

func (d *DashboardScreen) Resume() tea.Cmd {
	return screen.LoadProgress(d.env)
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

// Report returns the most recently loaded progress report.
func (d *DashboardScreen) Report() progress.Report {
	return d.report
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	if d.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Search"},
		{Key: "h", Description: "History"},
		{Key: "q", Description: "Quit"},
	}
}

func (d *DashboardScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, len(d.courses))
	for i, c := range d.courses {
		cp, _ := d.report.Overview.Course(c.ID)
		items[i] = components.MenuItem{
			Label:  c.Title,
			Detail: courseDetail(c, cp),
			Action: d.openCourse(c),
		}
	}
	return items
}

func (d *DashboardScreen) openCourse(c catalog.Course) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: course.New(d.env, c)}
		}
	}
}

func courseDetail(c catalog.Course, cp progress.CourseProgress) string {
	return fmt.Sprintf("%s · %d lessons · %s %d%%", c.Instructor, len(c.Lessons), cp.Status().Label(), cp.Percent)
}

// applyFilter narrows the course list to the current search term.
func (d *DashboardScreen) applyFilter() {
	d.courses = d.env.Catalog.Search(d.search.Value())
	d.menu = components.NewMenu(d.menuItems())
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProgressMsg:
		d.loaded = true
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
			return d, nil
		}
		d.errMsg = ""
		d.report = msg.Report
		d.menu = d.menu.WithItems(d.menuItems())
		return d, nil

	case tea.KeyPressMsg:
		if d.searching {
			return d.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			d.searching = true
			return d, d.search.Model.Focus()
		case "esc":
			if d.search.Value() != "" {
				d.search.Reset()
				d.applyFilter()
			}
			return d, nil
		case "h":
			return d, func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(d.env)}
			}
		case "q":
			return d, tea.Quit
		}
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) updateSearch(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		d.searching = false
		d.search.Model.Blur()
		return d, nil
	case "esc":
		d.searching = false
		d.search.Model.Blur()
		d.search.Reset()
		d.applyFilter()
		return d, nil
	}
	var cmd tea.Cmd
	d.search, cmd = d.search.Update(msg)
	d.applyFilter()
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	cw := min(width-4, 80)
	compact := layout.Compact(height)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("Welcome back"))
	b.WriteString("\n")
	if !compact {
		b.WriteString(theme.Subtitle.Render("Pick a course and keep your streak going."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderStats(d.report.Stats, cw))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("Overall progress", d.report.Overview.Overall, true, cw).View())
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(fmt.Sprintf("%d completed · %d in progress · %d courses",
		d.report.Overview.Completed, d.report.Overview.InProgress, len(d.report.Overview.Courses))))
	b.WriteString("\n\n")

	if d.searching || d.search.Value() != "" {
		b.WriteString(d.search.View())
		b.WriteString("\n\n")
	}

	if len(d.courses) == 0 {
		b.WriteString(theme.Hint.Render("No courses match your search."))
		b.WriteString("\n")
	} else {
		b.WriteString(d.menu.View())
	}

	if d.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("Error: " + d.errMsg))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderStats(st progress.Stats, cw int) string {
	cells := []struct{ value, label string }{
		{fmt.Sprintf("%d", st.Attempts), "quizzes taken"},
		{fmt.Sprintf("%d", st.CompletedLessons), "lessons passed"},
		{fmt.Sprintf("%d%%", st.AverageScore), "average score"},
		{fmt.Sprintf("%d", st.Streak), "day streak"},
	}
	cellWidth := max((cw-len(cells)*4)/len(cells), 10)
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = theme.Card.Width(cellWidth).Align(lipgloss.Center).Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(c.value) + "\n" +
				theme.Muted.Render(c.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
