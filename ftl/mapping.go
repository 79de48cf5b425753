package ftl

// unmapped is the sentinel used by both the forward and reverse maps in
// place of a language-level optional — matching how the rest of the
// simulator models "no physical/logical page" with -1.
const unmapped = -1

// Mapping holds the forward (logical->physical) and reverse
// (physical->logical) page maps. It is the sole source of truth for
// liveness: a physical page P is live iff the flash array reports it
// Valid, reverse[P] names some logical page L, and forward[L] points back
// at P.
type Mapping struct {
	forward []int
	reverse []int
}

// NewMapping allocates a mapping for the given logical and physical page
// counts, with every entry unmapped.
func NewMapping(numLogicalPages, numPages int) *Mapping {
	m := &Mapping{
		forward: make([]int, numLogicalPages),
		reverse: make([]int, numPages),
	}
	for i := range m.forward {
		m.forward[i] = unmapped
	}
	for i := range m.reverse {
		m.reverse[i] = unmapped
	}
	return m
}

// Forward returns the physical page bound to logical page l, or false if
// unmapped.
func (m *Mapping) Forward(l int) (int, bool) {
	p := m.forward[l]
	return p, p != unmapped
}

// Reverse returns the logical page that last wrote physical page p, or
// false if no write has ever targeted it. The binding may be stale (see
// Live).
func (m *Mapping) Reverse(p int) (int, bool) {
	l := m.reverse[p]
	return l, l != unmapped
}

// Bind records that logical page l now lives at physical page p, on both
// sides of the map. Any earlier forward[l] binding is silently overwritten
// — the physical page it pointed at becomes dead, but remains Valid until
// its block is erased.
func (m *Mapping) Bind(l, p int) {
	m.forward[l] = p
	m.reverse[p] = l
}

// Unbind clears the forward binding of logical page l, without touching
// the reverse map — used by Trim. The physical page forward[l] used to
// point at becomes dead.
func (m *Mapping) Unbind(l int) {
	m.forward[l] = unmapped
}

// Live reports whether physical page p is live: Valid in array, and its
// reverse-mapped logical page's forward binding points back at p.
func (m *Mapping) Live(array *FlashArray, p int) bool {
	if array.State(p) != Valid {
		return false
	}
	l, ok := m.Reverse(p)
	if !ok {
		return false
	}
	fp, ok := m.Forward(l)
	return ok && fp == p
}
