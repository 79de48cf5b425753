package ftl

import "fmt"

// PolicyKind names a write policy by its configuration string, so callers
// (CLI flags, config files) never have to import policy.go's concrete
// types.
type PolicyKind string

const (
	PolicyDirect  PolicyKind = "direct"
	PolicyIdeal   PolicyKind = "ideal"
	PolicyLogging PolicyKind = "logging"
)

// Config describes the device geometry and write policy a Simulator is
// built from.
type Config struct {
	NumBlocks       int
	PagesPerBlock   int
	NumLogicalPages int
	Policy          PolicyKind

	// HighWaterMark and LowWaterMark configure the garbage collector and
	// are only consulted when Policy is PolicyLogging.
	HighWaterMark int
	LowWaterMark  int
}

// Simulator is the single synchronous facade over a simulated device: a
// flash array, a logical<->physical mapping, a write policy, and (for the
// logging policy) a cursor and a garbage collector. All of its methods
// are safe to call only from one goroutine at a time, by design — the
// simulated device models a single host talking to a single controller.
type Simulator struct {
	array   *FlashArray
	mapping *Mapping
	policy  Policy
	cursor  *Cursor
	gc      *GC

	numLogicalPages int

	// ReadOps, WriteOps and TrimOps count every call to the matching
	// method, success or failure; the ...FailOps counters below count
	// only the failing subset, incremented once per failing call.
	ReadOps  int
	WriteOps int
	TrimOps  int

	ReadFailOps  int
	WriteFailOps int
	TrimFailOps  int

	// Trace, if non-nil, receives one line per garbage-collector action
	// (a relocation read, a relocation write, or a block erase) in the
	// format "gc <round>:: <action>". It is nil by default; set it to
	// observe GC behavior without parsing logs.
	Trace   func(line string)
	gcRound int
}

// NewSimulator builds a Simulator from cfg. It returns an error rather
// than panicking or silently truncating addresses when the geometry
// cannot support the chosen policy: the direct and ideal policies map
// logical page l onto physical page l directly, so NumLogicalPages must
// not exceed the physical page count for those two policies.
func NewSimulator(cfg Config) (*Simulator, error) {
	numPages := cfg.NumBlocks * cfg.PagesPerBlock

	var policy Policy
	switch cfg.Policy {
	case PolicyDirect:
		policy = DirectPolicy{}
	case PolicyIdeal:
		policy = IdealPolicy{}
	case PolicyLogging:
		policy = LoggingPolicy{}
	default:
		return nil, fmt.Errorf("ftl: unknown policy %q", cfg.Policy)
	}

	if cfg.Policy != PolicyLogging && cfg.NumLogicalPages > numPages {
		return nil, fmt.Errorf(
			"ftl: num_logical_pages (%d) exceeds physical pages (%d), which the %s policy maps onto 1:1",
			cfg.NumLogicalPages, numPages, cfg.Policy,
		)
	}

	array := NewFlashArray(cfg.NumBlocks, cfg.PagesPerBlock)
	s := &Simulator{
		array:           array,
		mapping:         NewMapping(cfg.NumLogicalPages, numPages),
		policy:          policy,
		cursor:          NewCursor(array),
		numLogicalPages: cfg.NumLogicalPages,
	}
	if cfg.Policy == PolicyLogging {
		s.gc = NewGC(cfg.HighWaterMark, cfg.LowWaterMark)
	}
	return s, nil
}

func (s *Simulator) validAddress(l int) bool {
	return l >= 0 && l < s.numLogicalPages
}

// Read returns the byte stored at logical page l.
func (s *Simulator) Read(l int) (byte, error) {
	s.ReadOps++
	if !s.validAddress(l) {
		s.ReadFailOps++
		return 0, &OpError{Op: OpRead, Kind: KindIllegalAddress}
	}
	p, ok := s.mapping.Forward(l)
	if !ok {
		s.ReadFailOps++
		return 0, &OpError{Op: OpRead, Kind: KindUninitialized}
	}
	return s.array.Read(p), nil
}

// Write stores data at logical page l, using the configured write
// policy. It returns an *OpError with Kind KindDeviceFull if the policy
// could not find a physical page to use; running Upkeep may free one.
func (s *Simulator) Write(l int, data byte) error {
	s.WriteOps++
	if !s.validAddress(l) {
		s.WriteFailOps++
		return &OpError{Op: OpWrite, Kind: KindIllegalAddress}
	}
	if err := s.policy.Write(s, l, data); err != nil {
		s.WriteFailOps++
		return err
	}
	return nil
}

// Trim releases logical page l: subsequent reads of l fail as
// uninitialized until it is written again. The underlying physical page,
// if any, becomes dead but is not reclaimed until its block is erased.
func (s *Simulator) Trim(l int) error {
	s.TrimOps++
	if !s.validAddress(l) {
		s.TrimFailOps++
		return &OpError{Op: OpTrim, Kind: KindIllegalAddress}
	}
	if _, ok := s.mapping.Forward(l); !ok {
		s.TrimFailOps++
		return &OpError{Op: OpTrim, Kind: KindUninitialized}
	}
	s.mapping.Unbind(l)
	return nil
}

// Upkeep gives the device a chance to do background work. For the
// logging policy, once blocks-in-use has reached the high water mark,
// this runs the garbage collector until blocks-in-use falls to its low
// water mark or no block can be reclaimed, and returns the number of
// blocks erased; below the high water mark it does nothing and returns 0. For the direct and ideal policies there is
// nothing to do and it always returns 0.
func (s *Simulator) Upkeep() int {
	if s.gc == nil {
		return 0
	}
	s.gcRound++
	return s.gc.run(s)
}

func (s *Simulator) trace(action string) {
	if s.Trace == nil {
		return
	}
	s.Trace(fmt.Sprintf("gc %d:: %s", s.gcRound, action))
}

// NumLogicalPages returns the logical address space size.
func (s *Simulator) NumLogicalPages() int { return s.numLogicalPages }

// PolicyName returns the configured write policy's name.
func (s *Simulator) PolicyName() string { return s.policy.Name() }

// Array exposes the underlying flash array for presentation/dump code.
func (s *Simulator) Array() *FlashArray { return s.array }

// Mapping exposes the underlying logical<->physical mapping for
// presentation/dump code.
func (s *Simulator) Mapping() *Mapping { return s.mapping }

// GCCount returns the number of times the garbage collector has reached
// its low water mark and stopped. It is always 0 for devices not
// configured with the logging policy.
func (s *Simulator) GCCount() int {
	if s.gc == nil {
		return 0
	}
	return s.gc.Count()
}
