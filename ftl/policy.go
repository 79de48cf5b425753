package ftl

// Policy is a write strategy: given a logical page and the byte to store,
// it decides which physical page(s) to touch and how. Read and Trim are
// policy-independent (they only consult Mapping), so Policy has no
// methods for them.
type Policy interface {
	// Write stores data at logical page l, updating array, mapping and
	// any policy-private state (cursor, in-use flags) as needed. It
	// returns a *OpError with Kind KindDeviceFull if no physical page is
	// available.
	Write(s *Simulator, l int, data byte) error

	// Name identifies the policy for dumps and logs.
	Name() string
}

// DirectPolicy simulates in-place overwrite on hardware that cannot
// actually overwrite a page: logical page l always lives at physical page
// l, and every write erases l's whole block, reprograms every other page
// in the block that was Valid (live or dead), then programs l with the
// new byte. This is
// the costliest policy (one full block erase per write) and the simplest
// to reason about.
type DirectPolicy struct{}

func (DirectPolicy) Name() string { return "direct" }

func (DirectPolicy) Write(s *Simulator, l int, data byte) error {
	array := s.array
	mapping := s.mapping
	p := l
	b := p / array.PagesPerBlock()
	begin := b * array.PagesPerBlock()
	end := begin + array.PagesPerBlock()

	type saved struct {
		page int
		data byte
	}
	var toRestore []saved
	for q := begin; q < end; q++ {
		if q == p {
			continue
		}
		if array.State(q) == Valid {
			toRestore = append(toRestore, saved{q, array.RawData(q)})
		}
	}

	array.Erase(b)
	for _, r := range toRestore {
		array.Program(r.page, r.data)
	}
	array.Program(p, data)
	mapping.Bind(l, p)
	return nil
}

// IdealPolicy models an idealized device that can reprogram any page in
// place at no cost, used as the best-case baseline write amplification is
// measured against. It is physically unrealistic (it violates the erase
// discipline on purpose) which is exactly the point: it is a lower bound,
// not a candidate real policy.
type IdealPolicy struct{}

func (IdealPolicy) Name() string { return "ideal" }

func (IdealPolicy) Write(s *Simulator, l int, data byte) error {
	p := l
	s.array.ForceProgram(p, data)
	s.mapping.Bind(l, p)
	return nil
}

// LoggingPolicy is an append-only log: every write lands on the page the
// cursor currently points at, acquiring a fresh block first if none is
// active, then the cursor advances. Space is reclaimed only by the
// garbage collector (see gc.go); Write itself never reclaims, it only
// fails with KindDeviceFull when no block can be acquired.
type LoggingPolicy struct{}

func (LoggingPolicy) Name() string { return "logging" }

func (LoggingPolicy) Write(s *Simulator, l int, data byte) error {
	if !s.cursor.Active() {
		if !s.cursor.Acquire() {
			return &OpError{Op: OpWrite, Kind: KindDeviceFull}
		}
	}
	p, ok := s.cursor.Position()
	if !ok {
		panic("ftl: program fault — cursor has no active block")
	}
	s.array.Program(p, data)
	s.mapping.Bind(l, p)
	s.cursor.Advance()
	return nil
}
