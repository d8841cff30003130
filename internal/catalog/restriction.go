package catalog

import "sort"

// Restriction is an explicit "no restriction" versus "restrict to these
// values" filter term. The zero value is open (everything passes), and a
// restriction can never hold an empty member set, so "no filter" and
// "match nothing" cannot be conflated.
type Restriction struct {
	members map[string]struct{}
}

// RestrictTo builds a restriction admitting only the given values.
// With no values it stays open.
func RestrictTo(values ...string) Restriction {
	if len(values) == 0 {
		return Restriction{}
	}
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return Restriction{members: m}
}

// Open reports whether the restriction admits everything.
func (r Restriction) Open() bool {
	return len(r.members) == 0
}

// Allows reports whether v passes the restriction.
func (r Restriction) Allows(v string) bool {
	if r.Open() {
		return true
	}
	_, ok := r.members[v]
	return ok
}

// AllowsAny reports whether at least one of vs passes. An open restriction
// passes even an empty slice.
func (r Restriction) AllowsAny(vs []string) bool {
	if r.Open() {
		return true
	}
	for _, v := range vs {
		if _, ok := r.members[v]; ok {
			return true
		}
	}
	return false
}

// Has reports explicit membership; always false when open.
func (r Restriction) Has(v string) bool {
	_, ok := r.members[v]
	return ok
}

// Toggle returns a restriction with v flipped in or out. Removing the last
// member yields an open restriction.
func (r Restriction) Toggle(v string) Restriction {
	m := make(map[string]struct{}, len(r.members)+1)
	for k := range r.members {
		m[k] = struct{}{}
	}
	if _, ok := m[v]; ok {
		delete(m, v)
	} else {
		m[v] = struct{}{}
	}
	if len(m) == 0 {
		return Restriction{}
	}
	return Restriction{members: m}
}

// Values returns the explicit members in sorted order.
func (r Restriction) Values() []string {
	out := make([]string, 0, len(r.members))
	for v := range r.members {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
