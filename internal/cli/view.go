package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lmarchetti/cardflow/pkg/board"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command, an interactive card browser.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <board.json>",
		Short: "Browse a board's cards interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args[0])
			if err != nil {
				return err
			}

			model := NewCardListModel(b)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return fmt.Errorf("run viewer: %w", err)
			}

			if m, ok := final.(CardListModel); ok && m.Selected != nil {
				printInfo("%s", StyleTitle.Render(cardTitle(*m.Selected)))
				printDetail("id: %s", m.Selected.ID)
				printDetail("kind: %s", m.Selected.Kind)
				if m.Selected.SourceID != "" {
					printDetail("source: %s", m.Selected.SourceID)
				}
				printDetail("position: %.0f, %.0f", m.Selected.Position.X, m.Selected.Position.Y)
				printDetail("size: %.0fx%.0f",
					m.Selected.Geometry().EffectiveWidth(),
					m.Selected.Geometry().EffectiveHeight())
			}
			return nil
		},
	}
}

// =============================================================================
// CardListModel - Interactive card browsing
// =============================================================================

// CardListModel is the bubbletea model for browsing a board's cards.
type CardListModel struct {
	Board    *board.Board
	Cursor   int
	Selected *board.Card
	Height   int
	Offset   int
}

// NewCardListModel creates a new card list model.
func NewCardListModel(b *board.Board) CardListModel {
	return CardListModel{
		Board:  b,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m CardListModel) Init() tea.Cmd {
	return nil
}

func (m CardListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Board.Cards)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			card := m.Board.Cards[m.Cursor]
			m.Selected = &card
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CardListModel) View() string {
	var b strings.Builder

	title := m.Board.Name
	if title == "" {
		title = m.Board.ID
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Board.Cards) {
		end = len(m.Board.Cards)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		card := m.Board.Cards[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		pos := fmt.Sprintf("%.0f,%.0f", card.Position.X, card.Position.Y)
		size := fmt.Sprintf("%.0fx%.0f",
			card.Geometry().EffectiveWidth(), card.Geometry().EffectiveHeight())

		rows = append(rows, []string{
			cursor, cardTitle(card), card.Kind, pos, size,
			formatRelativeTime(card.UpdatedAt),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Card", "Kind", "Position", "Size", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Board.Cards) {
				return lipgloss.NewStyle()
			}
			isBranch := m.Board.Cards[actualIdx].Kind == board.KindBranch

			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if isBranch {
				return base.Foreground(colorYellow)
			}
			if col >= 3 {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Board.Cards))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func cardTitle(c board.Card) string {
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
