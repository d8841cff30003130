package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(a.pending) == 0 {
		return a, nil
	}
	switch {
	case key.Matches(msg, a.keys.UpDown):
		switch msg.String() {
		case "down", "j":
			if a.reviewCursor < len(a.pending)-1 {
				a.reviewCursor++
			}
		case "up", "k":
			if a.reviewCursor > 0 {
				a.reviewCursor--
			}
		}
		return a, nil
	case key.Matches(msg, a.keys.Approve):
		return a, a.decideCmd(a.pending[a.reviewCursor].Suggestion.ID, true)
	case key.Matches(msg, a.keys.Reject):
		return a, a.decideCmd(a.pending[a.reviewCursor].Suggestion.ID, false)
	}
	return a, nil
}

func (a *App) renderReview() string {
	var b strings.Builder
	b.WriteString(headerRow.Render("Review queue") + "\n")

	if len(a.pending) == 0 {
		b.WriteString(dimStyle.Render("  nothing pending"))
		return b.String()
	}

	for i, p := range a.pending {
		d := p.Proposed
		kind := "new deal"
		if p.Suggestion.DealID != nil {
			kind = fmt.Sprintf("edit #%d", *p.Suggestion.DealID)
		}
		line := fmt.Sprintf("%-10s %d  %s → %s  %s  %s",
			kind, d.Year, d.Aggregator, d.Receiver, d.Type, formatDealValue(d))
		if i == a.reviewCursor {
			b.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
		if i == a.reviewCursor {
			if len(d.Codes) > 0 {
				b.WriteString(dimStyle.Render("    codes: "+strings.Join(d.Codes, ", ")) + "\n")
			}
			if d.SourceURL != nil {
				b.WriteString(dimStyle.Render("    source: "+*d.SourceURL) + "\n")
			}
			for _, h := range p.OrgHints {
				b.WriteString(hintStyle.Render(fmt.Sprintf("    possible duplicate org: %q is close to existing %q", h.Proposed, h.Existing)) + "\n")
			}
			b.WriteString(dimStyle.Render(fmt.Sprintf("    submitted %s", p.Suggestion.CreatedAt.Format("2006-01-02 15:04"))) + "\n")
		}
	}
	return b.String()
}
