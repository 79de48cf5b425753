package ftl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directSim(t *testing.T, blocks, ppb, logical int) *Simulator {
	t.Helper()
	s, err := NewSimulator(Config{
		NumBlocks:       blocks,
		PagesPerBlock:   ppb,
		NumLogicalPages: logical,
		Policy:          PolicyDirect,
	})
	require.NoError(t, err)
	return s
}

func loggingSim(t *testing.T, blocks, ppb, logical, high, low int) *Simulator {
	t.Helper()
	s, err := NewSimulator(Config{
		NumBlocks:       blocks,
		PagesPerBlock:   ppb,
		NumLogicalPages: logical,
		Policy:          PolicyLogging,
		HighWaterMark:   high,
		LowWaterMark:    low,
	})
	require.NoError(t, err)
	return s
}

func TestNewSimulatorRejectsOversizedLogicalSpaceForDirect(t *testing.T) {
	_, err := NewSimulator(Config{
		NumBlocks: 2, PagesPerBlock: 4, NumLogicalPages: 9, Policy: PolicyDirect,
	})
	assert.Error(t, err)
}

func TestNewSimulatorRejectsUnknownPolicy(t *testing.T) {
	_, err := NewSimulator(Config{NumBlocks: 1, PagesPerBlock: 4, NumLogicalPages: 4, Policy: "bogus"})
	assert.Error(t, err)
}

func TestReadIllegalAddress(t *testing.T) {
	s := directSim(t, 2, 4, 8)
	_, err := s.Read(-1)
	require.Error(t, err)
	assert.Equal(t, "fail: illegal read address", Outcome(err))
	_, err = s.Read(8)
	assert.Equal(t, "fail: illegal read address", Outcome(err))
}

func TestReadUninitialized(t *testing.T) {
	s := directSim(t, 2, 4, 8)
	_, err := s.Read(0)
	require.Error(t, err)
	assert.Equal(t, "fail: uninitialized read", Outcome(err))
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	s := directSim(t, 2, 4, 8)
	require.NoError(t, s.Write(3, 'z'))
	got, err := s.Read(3)
	require.NoError(t, err)
	assert.Equal(t, byte('z'), got)
	assert.Equal(t, "success", Outcome(nil))
}

func TestTrimIllegalAndUninitialized(t *testing.T) {
	s := directSim(t, 2, 4, 8)
	err := s.Trim(99)
	assert.Equal(t, "fail: illegal trim address", Outcome(err))

	err = s.Trim(0)
	assert.Equal(t, "fail: uninitialized trim", Outcome(err))
}

func TestTrimThenReadFailsUninitialized(t *testing.T) {
	s := directSim(t, 2, 4, 8)
	require.NoError(t, s.Write(0, 'a'))
	require.NoError(t, s.Trim(0))
	_, err := s.Read(0)
	assert.Equal(t, "fail: uninitialized read", Outcome(err))
}

func TestDirectPolicyRewritesBlockInPlaceLogically(t *testing.T) {
	s := directSim(t, 1, 4, 4)
	require.NoError(t, s.Write(0, 'a'))
	require.NoError(t, s.Write(1, 'b'))
	require.NoError(t, s.Write(0, 'A'))

	got, err := s.Read(0)
	require.NoError(t, err)
	assert.Equal(t, byte('A'), got)

	got, err = s.Read(1)
	require.NoError(t, err)
	assert.Equal(t, byte('b'), got, "sibling page in the same block must survive the rewrite's erase")
}

func TestDirectPolicyWriteAmplificationScenarioS2(t *testing.T) {
	s := directSim(t, 1, 4, 4)
	require.NoError(t, s.Write(0, 'a'))
	require.NoError(t, s.Write(1, 'b'))
	require.NoError(t, s.Write(2, 'c'))
	require.NoError(t, s.Write(3, 'd'))
	require.NoError(t, s.Write(1, 'z'))

	for l, want := range map[int]byte{0: 'a', 1: 'z', 2: 'c', 3: 'd'} {
		got, err := s.Read(l)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 5, s.Array().EraseCount(0))
}

func TestDirectPolicyRewritesValidButDeadPage(t *testing.T) {
	// A trimmed page is Valid-but-dead until its block is erased; a
	// sibling rewrite must still snapshot and reprogram it, not drop it.
	s := directSim(t, 1, 4, 4)
	require.NoError(t, s.Write(0, 'a'))
	require.NoError(t, s.Trim(0))
	require.NoError(t, s.Write(1, 'b'))

	pages := s.Pages()
	assert.Equal(t, Valid, pages[0].State, "trimmed-but-unerased page stays Valid, not Erased")
	assert.Equal(t, byte('a'), pages[0].Data)
	assert.False(t, pages[0].Live)
	// one program for the original write(0,'a'), two more for write(1,'b')'s
	// erase-and-restore of page 0 plus its own program of page 1.
	assert.Equal(t, 3, s.Array().ProgramCount(0))
}

func TestIdealPolicyOverwritesInPlace(t *testing.T) {
	s, err := NewSimulator(Config{NumBlocks: 1, PagesPerBlock: 4, NumLogicalPages: 4, Policy: PolicyIdeal})
	require.NoError(t, err)
	require.NoError(t, s.Write(0, 'a'))
	require.NoError(t, s.Write(0, 'b'))
	got, err := s.Read(0)
	require.NoError(t, err)
	assert.Equal(t, byte('b'), got)
	assert.Equal(t, 0, s.Array().EraseCount(0), "the ideal policy never erases")
}

func TestIdealBasicScenarioS1(t *testing.T) {
	s, err := NewSimulator(Config{NumBlocks: 7, PagesPerBlock: 10, NumLogicalPages: 50, Policy: PolicyIdeal})
	require.NoError(t, err)

	require.NoError(t, s.Write(3, 'A'))
	got, err := s.Read(3)
	require.NoError(t, err)
	assert.Equal(t, byte('A'), got)

	require.NoError(t, s.Trim(3))
	_, err = s.Read(3)
	assert.Equal(t, "fail: uninitialized read", Outcome(err))
	assert.Equal(t, 0, s.Array().EraseSum)
}

func TestLoggingPolicyAppendsOnFreshDeviceWithNoExplicitErase(t *testing.T) {
	// S3 (LOGGING append): a fresh device acquires and erases its first
	// block on demand; the caller never has to erase ahead of it.
	s := loggingSim(t, 2, 4, 50, 100, 0)
	require.NoError(t, s.Write(5, 'a'))
	require.NoError(t, s.Write(5, 'b'))

	got, err := s.Read(5)
	require.NoError(t, err)
	assert.Equal(t, byte('b'), got)

	valid, live := 0, 0
	for _, pv := range s.Pages() {
		if pv.State == Valid {
			valid++
		}
		if pv.Live {
			live++
		}
	}
	assert.Equal(t, 2, valid)
	assert.Equal(t, 1, live)
}

func TestLoggingPolicyDeviceFullScenarioS5(t *testing.T) {
	s := loggingSim(t, 2, 2, 5, 99, 0) // high=99 disables GC
	require.NoError(t, s.Write(0, 'a'))
	require.NoError(t, s.Write(1, 'b'))
	require.NoError(t, s.Write(2, 'c'))
	require.NoError(t, s.Write(3, 'd'))

	err := s.Write(4, 'e')
	assert.Equal(t, "failure: device full", Outcome(err))
	assert.Equal(t, 1, s.WriteFailOps)
}

func TestUpkeepNoopWithoutLoggingPolicy(t *testing.T) {
	s := directSim(t, 1, 4, 4)
	assert.Equal(t, 0, s.Upkeep())
}

func TestGCReclaimsDeadPagesAndKeepsLiveDataReadable(t *testing.T) {
	// S4 (LOGGING GC reclaims dead pages): repeatedly overwriting the same
	// logical page on a small device forces reclaims once blocks-in-use
	// crosses the high water mark, and the latest value must survive.
	s := loggingSim(t, 3, 4, 50, 2, 1)

	var traced []string
	s.Trace = func(line string) { traced = append(traced, line) }

	for _, b := range []byte{'a', 'b', 'c', 'd', 'e'} {
		require.NoError(t, s.Write(0, b))
		s.Upkeep()
		assert.LessOrEqual(t, s.Array().BlocksInUse(), s.Array().NumBlocks())
	}

	got, err := s.Read(0)
	require.NoError(t, err)
	assert.Equal(t, byte('e'), got)
	assert.GreaterOrEqual(t, s.Array().EraseSum, 1)
}

func TestGCNeverReclaimsTheActiveBlock(t *testing.T) {
	s := loggingSim(t, 2, 2, 2, 1, 0)
	require.NoError(t, s.Write(0, 'a'))
	// Block 0 is still active (one page written of two); a reclaim pass
	// may erase the untouched sibling block, but must leave block 0 and
	// its data alone.
	s.Upkeep()

	// Block 0's one erase is the cursor's first-use erase on Acquire; the
	// reclaim pass adds none.
	assert.Equal(t, 1, s.Array().EraseCount(0))
	got, err := s.Read(0)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), got)
}

func TestTrimFreesBlockForGCScenarioS6(t *testing.T) {
	s := loggingSim(t, 3, 2, 10, 2, 1)
	require.NoError(t, s.Write(0, 'a'))
	require.NoError(t, s.Write(1, 'b'))
	require.NoError(t, s.Trim(0))
	require.NoError(t, s.Trim(1))

	s.Upkeep()
	assert.LessOrEqual(t, s.Array().BlocksInUse(), 1)

	_, err := s.Read(0)
	assert.Equal(t, "fail: uninitialized read", Outcome(err))
}

func TestCursorAcquireErasesFreshBlockOnFirstUse(t *testing.T) {
	array := NewFlashArray(2, 4)
	c := NewCursor(array)
	assert.False(t, c.Active())
	require.True(t, c.Acquire())
	assert.Equal(t, Erased, array.State(0))
	assert.True(t, array.InUse(0))
}

func TestCursorAdvanceDropsActiveBlockAfterFillingIt(t *testing.T) {
	array := NewFlashArray(2, 4)
	array.Erase(0)
	c := NewCursor(array)
	require.True(t, c.Acquire())

	for i := 0; i < 3; i++ {
		c.Advance()
		assert.True(t, c.Active(), "block has room for %d more pages", 4-i-1)
	}
	c.Advance()
	assert.False(t, c.Active(), "the fourth Advance fills the block and forces a re-acquire")
}

func TestCursorAcquireSkipsPartiallyWrittenBlockEvenIfTrailingPagesAreErased(t *testing.T) {
	array := NewFlashArray(2, 4)
	array.Erase(0)
	array.Program(0, 'x') // block 0's first page is now Valid, not resumable
	array.Erase(1)

	c := NewCursor(array)
	require.True(t, c.Acquire())
	assert.Equal(t, 1, c.Block(), "block 0 is partially written; only block 1's first page qualifies")
}
