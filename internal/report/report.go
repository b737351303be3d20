package report

import (
	"errors"
	"fmt"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"io"
	"repopulse/internal/models"
)

var ErrUnknownRepository = errors.New("repository not found in checkpoint")

// Render writes one table row per scored month, grouped by repository. A
// non-empty link restricts the table to that repository.
func Render(w io.Writer, histories []models.RepositoryHealthHistory, link string) error {
	if link != "" {
		var found []models.RepositoryHealthHistory
		for _, h := range histories {
			if h.GithubLink == link {
				found = append(found, h)
			}
		}
		if len(found) == 0 {
			return fmt.Errorf("%s: %w", link, ErrUnknownRepository)
		}
		histories = found
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.AppendHeader(table.Row{"Repository", "Status", "Month", "Score", "Label"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Repository", AutoMerge: true},
		{Name: "Status", AutoMerge: true},
		{Name: "Score", Align: text.AlignRight},
	})

	months := 0
	for i, h := range histories {
		if i > 0 {
			tbl.AppendSeparator()
		}
		status := statusName(h.FinalStatus)
		if len(h.MonthlyMetrics) == 0 {
			tbl.AppendRow(table.Row{h.GithubLink, status, "-", "-", models.LabelDataInsufficient.String()})
			continue
		}
		for _, m := range h.MonthlyMetrics {
			tbl.AppendRow(table.Row{h.GithubLink, status, m.Month, fmt.Sprintf("%.4f", m.Score), m.Label.String()})
			months++
		}
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d repositories", len(histories)), "", fmt.Sprintf("%d months", months), "", ""})
	tbl.Render()
	return nil
}

func statusName(finalStatus float64) string {
	if finalStatus == models.StatusArchived {
		return "archived"
	}
	return "active"
}
