package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dealscope/internal/catalog"
	"dealscope/internal/config"
	"dealscope/internal/database/repository"
	"dealscope/internal/graph"
	"dealscope/internal/service"
)

const appName = "Dealscope"

type viewState int

const (
	viewDeals viewState = iota
	viewGraph
	viewSuggest
	viewReview
)

type modalState int

const (
	modalNone modalState = iota
	modalTypes
	modalCodes
)

// Repos gives the TUI its read side of the deal store.
type Repos struct {
	Deals       *repository.DealRepo
	Suggestions *repository.SuggestionRepo
}

// Services wires the moderation flow.
type Services struct {
	Suggestions *service.SuggestionService
}

// App drives the catalog browser. The embedded Controller is the single
// writer of filter state and selection; the key handlers below are the
// only code paths that call its mutators.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services

	controller *catalog.Controller
	net        graph.Graph
	positions  []graph.Position

	view   viewState
	modal  modalState
	ready  bool
	status string
	isErr  bool
	width  int
	height int
	keys   keyMap

	// deals view
	dealCursor int
	dealTop    int
	sortCol    sortColumn
	sortAsc    bool
	search     textinput.Model

	// modal pickers
	pickerCursor int

	// graph view
	nodeCursor int

	// suggest view
	form suggestForm

	// review view
	pending      []service.PendingSuggestion
	reviewCursor int
}

func New(ctx context.Context, cfg config.Config, repos Repos, services Services) *App {
	search := textinput.New()
	search.Placeholder = "search deals"
	search.Prompt = "/ "
	search.CharLimit = 80

	return &App{
		ctx:        ctx,
		cfg:        cfg,
		repos:      repos,
		services:   services,
		controller: catalog.NewController(),
		keys:       newKeyMap(),
		search:     search,
		form:       newSuggestForm(),
		sortCol:    sortByID,
		sortAsc:    true,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadData(), a.loadPending())
}

// ---------------------------------------------------------------------------
// Messages and commands
// ---------------------------------------------------------------------------

type dataMsg struct {
	deals []catalog.Deal
	stats catalog.Stats
}

type pendingMsg []service.PendingSuggestion

type statusMsg string

type errMsg struct{ error }

type submitDoneMsg struct{ id string }

type decideDoneMsg struct{ approved bool }

func (a *App) loadData() tea.Cmd {
	return func() tea.Msg {
		deals, err := a.repos.Deals.List(a.ctx)
		if err != nil {
			return errMsg{fmt.Errorf("load deals: %w", err)}
		}
		stats, err := a.repos.Deals.Stats(a.ctx)
		if err != nil {
			return errMsg{fmt.Errorf("load stats: %w", err)}
		}
		return dataMsg{deals: deals, stats: stats}
	}
}

func (a *App) loadPending() tea.Cmd {
	return func() tea.Msg {
		if a.services.Suggestions == nil {
			return pendingMsg(nil)
		}
		queue, err := a.services.Suggestions.Pending(a.ctx)
		if err != nil {
			return errMsg{fmt.Errorf("load suggestions: %w", err)}
		}
		return pendingMsg(queue)
	}
}

func (a *App) submitCmd(proposed catalog.Deal, target *int64) tea.Cmd {
	return func() tea.Msg {
		id, err := a.services.Suggestions.Submit(a.ctx, proposed, target)
		if err != nil {
			return errMsg{err}
		}
		return submitDoneMsg{id: id}
	}
}

func (a *App) decideCmd(id string, approve bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if approve {
			err = a.services.Suggestions.Approve(a.ctx, id)
		} else {
			err = a.services.Suggestions.Reject(a.ctx, id)
		}
		if err != nil {
			return errMsg{err}
		}
		return decideDoneMsg{approved: approve}
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case dataMsg:
		a.controller.SetData(m.deals, m.stats)
		a.search.SetValue("")
		a.rebuildGraph(m.deals)
		a.ready = true
		a.clampCursors()
		if a.status == "" {
			a.status = fmt.Sprintf("%d deals loaded", len(m.deals))
		}
		return a, nil
	case pendingMsg:
		a.pending = []service.PendingSuggestion(m)
		if a.reviewCursor >= len(a.pending) {
			a.reviewCursor = 0
		}
		return a, nil
	case statusMsg:
		a.setStatus(string(m))
		return a, nil
	case errMsg:
		a.setError(m)
		return a, nil
	case submitDoneMsg:
		a.setStatus("suggestion submitted for review")
		a.form = newSuggestForm()
		a.view = viewDeals
		return a, a.loadPending()
	case decideDoneMsg:
		if m.approved {
			a.setStatus("suggestion approved")
			// Approval changes the canonical dataset; reload everything.
			return a, tea.Batch(a.loadData(), a.loadPending())
		}
		a.setStatus("suggestion rejected")
		return a, a.loadPending()
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.clampCursors()
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry swallows everything except its own exit keys.
	if a.search.Focused() {
		return a.handleSearchKey(msg)
	}
	if a.form.editing {
		return a.handleFormEditKey(msg)
	}
	if a.modal != modalNone {
		return a.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Deals):
		a.view = viewDeals
		return a, nil
	case key.Matches(msg, a.keys.Graph):
		a.view = viewGraph
		return a, nil
	case key.Matches(msg, a.keys.Suggest):
		a.view = viewSuggest
		return a, nil
	case key.Matches(msg, a.keys.Review):
		if a.cfg.Moderation.Enabled {
			a.view = viewReview
			return a, a.loadPending()
		}
		a.setStatus("moderation is disabled")
		return a, nil
	}

	switch a.view {
	case viewDeals:
		return a.handleDealsKey(msg)
	case viewGraph:
		return a.handleGraphKey(msg)
	case viewSuggest:
		return a.handleSuggestKey(msg)
	case viewReview:
		return a.handleReviewKey(msg)
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (a *App) View() string {
	if !a.ready {
		return statusStyle.Render("loading deal catalog...")
	}

	header := a.renderHeader()

	var body string
	switch a.view {
	case viewDeals:
		body = a.renderDeals()
	case viewGraph:
		body = a.renderGraph()
	case viewSuggest:
		body = a.renderSuggest()
	case viewReview:
		body = a.renderReview()
	}

	if a.modal != modalNone {
		body += "\n\n" + a.renderPicker()
	}

	statusLine := statusStyle.Render(a.status)
	if a.isErr {
		statusLine = statusErrStyle.Render(a.status)
	}

	return header + "\n" + body + "\n" + statusLine + "\n" + a.renderFooter()
}

func (a *App) renderHeader() string {
	tabs := []struct {
		label string
		v     viewState
	}{
		{"Deals", viewDeals},
		{"Graph", viewGraph},
		{"Suggest", viewSuggest},
		{"Review", viewReview},
	}
	parts := make([]string, 0, len(tabs)+1)
	parts = append(parts, titleStyle.Render(appName))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t.label)
		if t.v == viewReview && len(a.pending) > 0 {
			label = fmt.Sprintf("%s (%d)", label, len(a.pending))
		}
		if a.view == t.v {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderFooter() string {
	var bindings []key.Binding
	switch a.view {
	case viewDeals:
		bindings = a.keys.dealsHelp()
	case viewGraph:
		bindings = a.keys.graphHelp()
	case viewSuggest:
		bindings = a.keys.suggestHelp()
	case viewReview:
		bindings = a.keys.reviewHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("[%s] %s", b.Help().Key, b.Help().Desc))
	}
	return dimStyle.Render(strings.Join(parts, "  "))
}

// filterSummary is shown above the table and the graph so the active
// window is always visible.
func (a *App) filterSummary() string {
	f := a.controller.Filters()
	var b strings.Builder
	fmt.Fprintf(&b, "years %d-%d", f.YearMin, f.YearMax)
	if f.ValueMin < 0 {
		fmt.Fprintf(&b, "  value undisclosed-%s", formatMillions(f.ValueMax))
	} else {
		fmt.Fprintf(&b, "  value %s-%s", formatMillions(f.ValueMin), formatMillions(f.ValueMax))
	}
	if !f.Types.Open() {
		fmt.Fprintf(&b, "  types %s", strings.Join(f.Types.Values(), ","))
	}
	if !f.Codes.Open() {
		fmt.Fprintf(&b, "  codes %s", strings.Join(f.Codes.Values(), ","))
	}
	if strings.TrimSpace(f.Search) != "" {
		fmt.Fprintf(&b, "  search %q", f.Search)
	}
	if !a.controller.SelectionEmpty() {
		fmt.Fprintf(&b, "  orgs %s", strings.Join(a.controller.SelectionNames(), ","))
	}
	fmt.Fprintf(&b, "  · %d/%d deals", len(a.controller.Filtered()), len(a.controller.Deals()))
	return filterBarStyle.Render(b.String())
}

func formatMillions(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%dm", int64(v))
	}
	return fmt.Sprintf("%.1fm", v)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (a *App) setStatus(s string) {
	a.status = s
	a.isErr = false
}

func (a *App) setError(err error) {
	a.status = "error: " + err.Error()
	a.isErr = true
}

// rebuildGraph lays the network out once per dataset. Selection changes
// recolor only; positions stay frozen until the data itself changes.
func (a *App) rebuildGraph(deals []catalog.Deal) {
	a.net = graph.Build(deals)
	a.positions = graph.Layout(a.net, graph.LayoutConfig{
		Width:      float64(a.cfg.UI.GraphWidth),
		Height:     float64(a.cfg.UI.GraphHeight),
		Iterations: 120,
	})
	if a.nodeCursor >= len(a.net.Nodes) {
		a.nodeCursor = 0
	}
}

func (a *App) clampCursors() {
	if n := len(a.controller.Filtered()); a.dealCursor >= n {
		a.dealCursor = 0
		a.dealTop = 0
	}
	if a.reviewCursor >= len(a.pending) {
		a.reviewCursor = 0
	}
}
