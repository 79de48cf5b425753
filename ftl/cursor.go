package ftl

// noActiveBlock is the sentinel for Cursor.page when there is no
// currently-acquired block: the next write must search for one.
const noActiveBlock = -1

// Cursor is the moving write pointer used by the logging write policy. It
// tracks an active block and an offset within it; when a block fills, the
// cursor drops its active block and the next write re-searches for a free
// one starting where the last search left off, so the search is circular
// across invocations rather than restarting at block 0 every time.
type Cursor struct {
	array         *FlashArray
	pagesPerBlock int
	numBlocks     int

	block int
	page  int
}

// NewCursor creates a cursor with no active block, over the given array.
func NewCursor(array *FlashArray) *Cursor {
	return &Cursor{
		array:         array,
		pagesPerBlock: array.PagesPerBlock(),
		numBlocks:     array.NumBlocks(),
		page:          noActiveBlock,
	}
}

// Position returns the physical page the cursor is about to write, and
// whether a block is currently active. When false, Acquire must be
// called before Position's result is meaningful.
func (c *Cursor) Position() (int, bool) {
	if c.page == noActiveBlock {
		return 0, false
	}
	return c.page, true
}

// Block returns the index of the block the cursor is currently writing
// into. Only meaningful when Position's second return is true.
func (c *Cursor) Block() int { return c.block }

// Active reports whether the cursor currently has a block acquired.
func (c *Cursor) Active() bool { return c.page != noActiveBlock }

// Acquire scans blocks circularly starting at the cursor's last known
// block for the first one whose first page is Invalid or Erased — a
// block is only considered free by its first page, so a partially
// written block is never resumed even if GC has left trailing Erased
// pages behind in it. A block found Invalid is erased on the spot (its
// first use); a block already Erased is claimed as-is. It reports false
// if no such block exists anywhere in the device.
func (c *Cursor) Acquire() bool {
	for i := 0; i < c.numBlocks; i++ {
		b := (c.block + i) % c.numBlocks
		first := b * c.pagesPerBlock
		switch c.array.State(first) {
		case Invalid:
			c.array.Erase(b)
		case Erased:
			// already usable
		default:
			continue
		}
		c.block = b
		c.page = first
		c.array.MarkInUse(b)
		return true
	}
	return false
}

// Advance moves the cursor one page forward after a program. If that
// lands on the first page of the next block — current_page %
// pages_per_block == 0, checked only after the increment — the cursor
// drops its active block so the next write re-acquires one. This matches
// the reference simulator's arithmetic exactly: the first advance inside
// a freshly acquired block lands at offset 1, so a block takes exactly
// pagesPerBlock writes to fill, and several scenarios (including the
// device-full boundary condition) depend on that as written.
func (c *Cursor) Advance() {
	c.page++
	if c.page%c.pagesPerBlock == 0 {
		c.page = noActiveBlock
	}
}
