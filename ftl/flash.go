// Package ftl implements a flash translation layer over a simulated NAND
// flash array: physical pages with an erase/program/read state machine,
// forward/reverse logical<->physical mapping, three write policies
// (direct, ideal, logging), a log cursor, and a garbage collector — the
// whole thing driven through a single synchronous Simulator facade.
package ftl

// PageState is the three-state lifecycle of a physical NAND page.
//
//	Invalid -> Erased -> Valid -> Erased -> ...
//
// A page starts Invalid (never erased) and can only return to Erased via a
// whole-block erase; it can only become Valid via Program, and only from
// Erased.
type PageState int

const (
	Invalid PageState = iota
	Erased
	Valid
)

func (s PageState) rune() rune {
	switch s {
	case Invalid:
		return 'i'
	case Erased:
		return 'E'
	case Valid:
		return 'v'
	default:
		panic("ftl: bad page state")
	}
}

// PhysicalPage is one addressable unit of the flash array.
type PhysicalPage struct {
	State PageState
	Data  byte
}

// FlashArray is the raw physical layer: a contiguous run of pages grouped
// into fixed-size blocks, with per-block operation counters. It has no
// opinion about logical addressing or liveness — that belongs to Mapping
// and the write policies.
type FlashArray struct {
	pages         []PhysicalPage
	inUse         []bool
	pagesPerBlock int
	numBlocks     int

	eraseCount   []int
	programCount []int
	readCount    []int

	EraseSum   int
	ProgramSum int
	ReadSum    int
}

// NewFlashArray allocates a flash array of numBlocks blocks of
// pagesPerBlock pages each, all pages starting Invalid.
func NewFlashArray(numBlocks, pagesPerBlock int) *FlashArray {
	n := numBlocks * pagesPerBlock
	pages := make([]PhysicalPage, n)
	for i := range pages {
		pages[i] = PhysicalPage{State: Invalid, Data: ' '}
	}
	return &FlashArray{
		pages:         pages,
		inUse:         make([]bool, numBlocks),
		pagesPerBlock: pagesPerBlock,
		numBlocks:     numBlocks,
		eraseCount:    make([]int, numBlocks),
		programCount:  make([]int, numBlocks),
		readCount:     make([]int, numBlocks),
	}
}

// NumPages returns the total physical page count (numBlocks * pagesPerBlock).
func (f *FlashArray) NumPages() int { return len(f.pages) }

// NumBlocks returns the block count.
func (f *FlashArray) NumBlocks() int { return f.numBlocks }

// PagesPerBlock returns the fixed block size.
func (f *FlashArray) PagesPerBlock() int { return f.pagesPerBlock }

func (f *FlashArray) blockOf(page int) int { return page / f.pagesPerBlock }

// State returns the state of physical page p.
func (f *FlashArray) State(p int) PageState { return f.pages[p].State }

// RawData returns the stored byte of physical page p regardless of state;
// callers that care about validity should check State first.
func (f *FlashArray) RawData(p int) byte { return f.pages[p].Data }

// Erase erases every page of block b: data reset to a space character,
// state set to Erased, and the block's in-use flag cleared. Per-block and
// aggregate erase counters are incremented once for the whole block.
func (f *FlashArray) Erase(b int) {
	begin := b * f.pagesPerBlock
	end := begin + f.pagesPerBlock
	for p := begin; p < end; p++ {
		f.pages[p].Data = ' '
		f.pages[p].State = Erased
	}
	f.inUse[b] = false
	f.eraseCount[b]++
	f.EraseSum++
}

// Program writes data to physical page p and marks it Valid. It panics if p
// is not currently Erased: programming a Valid or Invalid page is a program
// fault (an FTL policy bug), not an operational error, per the erase
// discipline invariant.
func (f *FlashArray) Program(p int, data byte) {
	if f.pages[p].State != Erased {
		panic("ftl: program fault — page is not erased")
	}
	f.pages[p].Data = data
	f.pages[p].State = Valid
	b := f.blockOf(p)
	f.programCount[b]++
	f.ProgramSum++
}

// Read returns the stored byte of physical page p and counts the read. It
// does not validate state; callers only read pages they have reason to
// believe are Valid (the Simulator facade enforces that at the logical
// layer via the mapping tables).
func (f *FlashArray) Read(p int) byte {
	b := f.blockOf(p)
	f.readCount[b]++
	f.ReadSum++
	return f.pages[p].Data
}

// ForceProgram writes data to physical page p and marks it Valid without
// checking that p is Erased first. It exists only for the ideal write
// policy, which models a hypothetical device that can reprogram a page in
// place with no erase cost; every other caller must go through Program
// and respect the erase discipline.
func (f *FlashArray) ForceProgram(p int, data byte) {
	f.pages[p].Data = data
	f.pages[p].State = Valid
	b := f.blockOf(p)
	f.programCount[b]++
	f.ProgramSum++
}

// MarkInUse flags block b as claimed by the log cursor since its last
// erase.
func (f *FlashArray) MarkInUse(b int) { f.inUse[b] = true }

// InUse reports whether block b has been claimed by the cursor since its
// last erase.
func (f *FlashArray) InUse(b int) bool { return f.inUse[b] }

// BlocksInUse returns the number of blocks currently claimed by the cursor.
func (f *FlashArray) BlocksInUse() int {
	n := 0
	for _, u := range f.inUse {
		if u {
			n++
		}
	}
	return n
}

// EraseCount returns the erase counter of block b.
func (f *FlashArray) EraseCount(b int) int { return f.eraseCount[b] }

// ProgramCount returns the program counter of block b.
func (f *FlashArray) ProgramCount(b int) int { return f.programCount[b] }

// ReadCount returns the read counter of block b.
func (f *FlashArray) ReadCount(b int) int { return f.readCount[b] }
