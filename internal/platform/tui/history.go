package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dodgeball/internal/storage"
)

// historyLimit is how many recent runs the history table shows.
const historyLimit = 20

// historyView renders the session's finished runs as a table.
type historyView struct {
	table table.Model
	stats storage.SessionStats
	err   error
}

// newHistoryView loads the recent runs from store. A nil store yields an empty table.
func newHistoryView(store *storage.Store, width, height int) historyView {
	h := historyView{table: newHistoryTable(height)}
	if store == nil {
		return h
	}

	runs, err := store.RecentRuns(historyLimit)
	if err != nil {
		h.err = err
		return h
	}
	h.stats, h.err = store.Stats()

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level+1),
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
			r.EndedAt.Format("15:04:05"),
		}
	}
	h.table.SetRows(rows)
	h.table.SetWidth(min(width, 60))
	return h
}

func newHistoryTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Ended", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(max(height-8, 3)), // Leave room for header, summary and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

// View renders the title, summary line and table.
func (h historyView) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("SESSION RUNS"))
	b.WriteString("\n")

	if h.err != nil {
		b.WriteString(fmt.Sprintf("history unavailable: %v\n", h.err))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Runs: %d  Best: %d  Average: %.1f  Played: %s\n\n",
		h.stats.Runs, h.stats.Best, h.stats.AvgScore, h.stats.TotalPlay.Round(time.Second)))
	b.WriteString(h.table.View())
	return b.String()
}
