package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/labeler/pkg/cache"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/frame"
	"github.com/matzehuels/labeler/pkg/layout"
	"github.com/matzehuels/labeler/pkg/pipeline"
)

// exploreCommand creates the explore command, an interactive view of how
// the layout reacts to hover, focus and selection.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [scene.json]",
		Short: "Explore a scene's layout interactively",
		Long: `Explore a scene's layout interactively.

Move the cursor through the scene's groups to hover them; the layout is
recomputed at most once per frame and the label table shows which labels
stay visible. Press f to toggle focus and space to toggle selection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runExplore(ctx context.Context, path string) error {
	// Explorer layouts are per-keystroke and short-lived; keep them in memory.
	runner, err := pipeline.NewRunner(cache.NewMemoryCache(c.Config.Cache.Capacity), nil, c.Logger, c.Config)
	if err != nil {
		return err
	}
	defer runner.Close()

	s, err := runner.Parse(ctx, pipeline.Options{Path: path})
	if err != nil {
		return err
	}
	groups := s.Groups()
	if len(groups) == 0 {
		printWarning("Scene has no groups to explore")
		return nil
	}

	sched := frame.New(frame.DefaultInterval)
	defer sched.Stop()

	var prog *tea.Program
	m := newExploreModel(path, groups, sched,
		func(ix label.Interaction) (layout.Layout, error) { return runner.Layout(ctx, s, ix) },
		func(msg tea.Msg) { prog.Send(msg) },
	)
	m.focused = slices.Clone(s.Interaction.Focused)
	m.selected = slices.Clone(s.Interaction.Selected)

	prog = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = prog.Run()
	return err
}

// =============================================================================
// exploreModel - Interactive layout exploration
// =============================================================================

// layoutMsg delivers a recomputed layout to the model.
type layoutMsg struct {
	ix     label.Interaction
	layout layout.Layout
	err    error
}

type exploreModel struct {
	title   string
	groups  []string
	cursor  int
	height  int
	compute func(label.Interaction) (layout.Layout, error)
	send    func(tea.Msg)
	sched   *frame.Scheduler

	focused  []string
	selected []string

	current layout.Layout
	err     error
	passes  int
}

func newExploreModel(title string, groups []string, sched *frame.Scheduler,
	compute func(label.Interaction) (layout.Layout, error), send func(tea.Msg)) exploreModel {
	return exploreModel{
		title:   title,
		groups:  groups,
		height:  15,
		compute: compute,
		send:    send,
		sched:   sched,
	}
}

// interaction is the state the current cursor and toggles describe.
func (m exploreModel) interaction() label.Interaction {
	return label.Interaction{
		Hovered:  []string{m.groups[m.cursor]},
		Focused:  slices.Clone(m.focused),
		Selected: slices.Clone(m.selected),
	}.Normalized()
}

func (m exploreModel) Init() tea.Cmd {
	ix, compute := m.interaction(), m.compute
	return func() tea.Msg {
		l, err := compute(ix)
		return layoutMsg{ix: ix, layout: l, err: err}
	}
}

// schedule recomputes on the next frame; newer state replaces older.
func (m exploreModel) schedule() {
	ix, compute, send := m.interaction(), m.compute, m.send
	m.sched.Schedule(func() {
		l, err := compute(ix)
		send(layoutMsg{ix: ix, layout: l, err: err})
	})
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.sched.Stop()
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.schedule()
			}
		case "down", "j":
			if m.cursor < len(m.groups)-1 {
				m.cursor++
				m.schedule()
			}
		case "f":
			m.focused = toggle(m.focused, m.groups[m.cursor])
			m.schedule()
		case " ", "enter":
			m.selected = toggle(m.selected, m.groups[m.cursor])
			m.schedule()
		case "c":
			m.focused, m.selected = nil, nil
			m.schedule()
		}
	case layoutMsg:
		m.current, m.err = msg.layout, msg.err
		m.passes++
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
	}
	return m, nil
}

func toggle(set []string, v string) []string {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}

var (
	exploreHoverStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	exploreFocusStyle = lipgloss.NewStyle().Foreground(colorBlue)
)

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ hover  f focus  space select  c clear  q quit"))
	b.WriteString("\n\n")

	ix := m.interaction()
	for i, g := range m.groups {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		marks := ""
		if ix.IsFocused(g) {
			marks += " F"
		}
		if ix.IsSelected(g) {
			marks += " S"
		}
		line := cursor + g + marks
		switch {
		case i == m.cursor:
			b.WriteString(exploreHoverStyle.Render(line))
		case ix.IsFocused(g):
			b.WriteString(exploreFocusStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render("layout failed: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	labels := m.current.Labels
	rows := make([][]string, 0, min(len(labels), m.height))
	for _, o := range labels[:min(len(labels), m.height)] {
		vis := "✗"
		if o.Visible {
			vis = "✓"
		}
		rows = append(rows, []string{o.ID, o.Text, fmt.Sprintf("%.0f", o.X), fmt.Sprintf("%.0f", o.Y), vis})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Label", "Text", "X", "Y", "Shown").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			if labels[row].Visible {
				return styleShown
			}
			return styleHidden
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d visible · %d passes", m.current.Visible, len(labels), m.passes)))

	return b.String()
}
