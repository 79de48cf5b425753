package ftl

// PageView is a read-only snapshot of one physical page, shaped for
// dump/stats rendering.
type PageView struct {
	Physical int
	State    PageState
	Data     byte
	Live     bool
	Logical  int // meaningful only when Live is true
}

// StateRune renders the page's state the way the reference dump format
// does: 'i' for Invalid, 'E' for Erased, 'v' for Valid.
func (v PageView) StateRune() rune { return v.State.rune() }

// BlockView is a read-only snapshot of one block's bookkeeping counters.
type BlockView struct {
	Block        int
	EraseCount   int
	ProgramCount int
	ReadCount    int
	InUse        bool
}

// Pages returns a snapshot of every physical page in physical address
// order.
func (s *Simulator) Pages() []PageView {
	n := s.array.NumPages()
	views := make([]PageView, n)
	for p := 0; p < n; p++ {
		v := PageView{
			Physical: p,
			State:    s.array.State(p),
			Data:     s.array.RawData(p),
		}
		if s.mapping.Live(s.array, p) {
			l, _ := s.mapping.Reverse(p)
			v.Live = true
			v.Logical = l
		}
		views[p] = v
	}
	return views
}

// Blocks returns a snapshot of every block's counters, in block order.
func (s *Simulator) Blocks() []BlockView {
	n := s.array.NumBlocks()
	views := make([]BlockView, n)
	for b := 0; b < n; b++ {
		views[b] = BlockView{
			Block:        b,
			EraseCount:   s.array.EraseCount(b),
			ProgramCount: s.array.ProgramCount(b),
			ReadCount:    s.array.ReadCount(b),
			InUse:        s.array.InUse(b),
		}
	}
	return views
}

// ForwardMap returns a copy of the logical->physical table; -1 marks an
// unmapped logical page.
func (s *Simulator) ForwardMap() []int {
	out := make([]int, s.numLogicalPages)
	for l := range out {
		if p, ok := s.mapping.Forward(l); ok {
			out[l] = p
		} else {
			out[l] = -1
		}
	}
	return out
}

// CursorPosition returns the logging policy's current write pointer, or
// -1 if the device is not using the logging policy or the cursor has no
// block currently acquired.
func (s *Simulator) CursorPosition() int {
	if s.PolicyName() != string(PolicyLogging) {
		return -1
	}
	p, ok := s.cursor.Position()
	if !ok {
		return -1
	}
	return p
}
