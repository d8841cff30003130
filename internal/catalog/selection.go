package catalog

import "sort"

// Selection is the set of organizations picked on the graph. Empty means
// no node filter is active. Membership changes only through Toggle.
type Selection struct {
	members map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{members: make(map[string]struct{})}
}

// Toggle adds name if absent, removes it if present.
func (s *Selection) Toggle(name string) {
	if _, ok := s.members[name]; ok {
		delete(s.members, name)
		return
	}
	s.members[name] = struct{}{}
}

func (s *Selection) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[name]
	return ok
}

func (s *Selection) Empty() bool {
	return s == nil || len(s.members) == 0
}

func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

func (s *Selection) Clear() {
	s.members = make(map[string]struct{})
}

// Names returns the selected organizations in sorted order.
func (s *Selection) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.members))
	for n := range s.members {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
