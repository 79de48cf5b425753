package ftl

import "fmt"

// GC reclaims space for the logging write policy. It only ever runs
// through Simulator.Upkeep, never implicitly inside Write: a device using
// any other policy never calls it. It must not itself call Upkeep — the
// recursion GC introduces is bounded to "GC calls Write, Write calls
// flash ops" and goes no deeper.
type GC struct {
	highWaterMark int
	lowWaterMark  int
	scanStart     int // next block to resume scanning from, across invocations
	count         int
}

// NewGC creates a collector that starts reclaiming once the number of
// blocks in use reaches high, and stops once it has brought that count
// down to low.
func NewGC(high, low int) *GC {
	return &GC{highWaterMark: high, lowWaterMark: low}
}

// Count returns the number of times the collector has reached its
// low-water mark and stopped.
func (gc *GC) Count() int { return gc.count }

// run drives the collector if blocks-in-use has reached the high water
// mark: it reclaims blocks, circularly, until blocks-in-use falls to the
// low water mark or a full scan finds nothing left to reclaim. It
// returns the number of blocks erased during this invocation.
func (gc *GC) run(s *Simulator) int {
	if s.array.BlocksInUse() < gc.highWaterMark {
		return 0
	}

	erased := 0
	n := s.array.NumBlocks()
	ppb := s.array.PagesPerBlock()

	for i := 0; i < n; i++ {
		b := (gc.scanStart + i) % n

		if s.cursor.Active() && b == s.cursor.Block() {
			continue
		}
		first := b * ppb
		if s.array.State(first) == Erased {
			continue
		}

		live := liveCount(s, b, ppb)
		if live == ppb {
			continue
		}

		if !gc.reclaim(s, b, ppb) {
			continue
		}
		erased++

		if s.array.BlocksInUse() <= gc.lowWaterMark {
			gc.scanStart = b
			gc.count++
			return erased
		}
	}
	return erased
}

func liveCount(s *Simulator, b, ppb int) int {
	first := b * ppb
	n := 0
	for p := first; p < first+ppb; p++ {
		if s.mapping.Live(s.array, p) {
			n++
		}
	}
	return n
}

// reclaim relocates every live page of block b onto the log, in physical
// page order, then erases b. Relocation reads the page's byte directly
// off the flash array (a physical read, not a logical one) and rewrites
// it through the Simulator's own Write method — the same logical path a
// host write takes — so the cursor, mapping tables and logical write
// counter all update exactly as they would for a host-issued write.
//
// Because the rewrite lands on a new physical page before b is erased,
// the reverse map at the old page is stale the instant the rewrite
// completes: forward[L] already points elsewhere, so the liveness
// predicate reports the old page dead before its block is ever erased.
//
// It returns false, with b left unerased, if a relocation write fails.
func (gc *GC) reclaim(s *Simulator, b, ppb int) bool {
	first := b * ppb
	for p := first; p < first+ppb; p++ {
		if !s.mapping.Live(s.array, p) {
			continue
		}
		l, _ := s.mapping.Reverse(p)
		data := s.array.Read(p)
		s.trace(fmt.Sprintf("read(physical_page=%d)", p))

		// Best-effort: the logging policy can only fail to find room if
		// the device is already oversubscribed well beyond what the
		// water marks are meant to prevent; there is nothing productive
		// to do here but leave the page (and so the whole block) as is.
		if err := s.Write(l, data); err != nil {
			return false
		}
		s.trace("write()")
	}
	s.array.Erase(b)
	s.trace(fmt.Sprintf("erase(block=%d)", b))
	return true
}
