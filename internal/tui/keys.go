package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Deals   key.Binding
	Graph   key.Binding
	Suggest key.Binding
	Review  key.Binding
	UpDown  key.Binding
	Search  key.Binding
	Types   key.Binding
	Codes   key.Binding
	Sort    key.Binding
	Years   key.Binding
	Values  key.Binding
	Reset   key.Binding
	Toggle  key.Binding
	Approve key.Binding
	Reject  key.Binding
	Submit  key.Binding
	Close   key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Deals:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "deals")),
		Graph:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "graph")),
		Suggest: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "suggest")),
		Review:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "review")),
		UpDown:  key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("j/k", "navigate")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Types:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "types")),
		Codes:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "codes")),
		Sort:    key.NewBinding(key.WithKeys("o", "O"), key.WithHelp("o/O", "sort")),
		Years:   key.NewBinding(key.WithKeys("[", "]", "{", "}"), key.WithHelp("[]{}", "year bounds")),
		Values:  key.NewBinding(key.WithKeys(",", ".", "<", ">"), key.WithHelp(",.<>", "value bounds")),
		Reset:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset filters")),
		Toggle:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle")),
		Approve: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
		Reject:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reject")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) dealsHelp() []key.Binding {
	return []key.Binding{k.UpDown, k.Search, k.Types, k.Codes, k.Sort, k.Years, k.Values, k.Reset, k.Quit}
}

func (k keyMap) graphHelp() []key.Binding {
	return []key.Binding{k.UpDown, k.Toggle, k.Reset, k.Quit}
}

func (k keyMap) reviewHelp() []key.Binding {
	return []key.Binding{k.UpDown, k.Approve, k.Reject, k.Quit}
}

func (k keyMap) suggestHelp() []key.Binding {
	return []key.Binding{k.UpDown, k.Toggle, k.Submit, k.Quit}
}
