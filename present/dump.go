// Package present renders a Simulator's state for human and machine
// consumption: the text dump and stats formats, a JSON dump, a content
// checksum for diffing two runs, and an interactive inspector.
package present

import (
	"fmt"
	"io"

	"ftlsim/ftl"
)

// Dump writes the full device state to w: the logical->physical map,
// then one line per physical page (its state, stored byte, and whether
// it is live), then one line per block of erase/program/read counters.
func Dump(s *ftl.Simulator, w io.Writer) error {
	fmt.Fprintf(w, "policy: %s\n", s.PolicyName())
	fmt.Fprintln(w, "logical map:")
	for l, p := range s.ForwardMap() {
		if p < 0 {
			fmt.Fprintf(w, "  L%-4d -> (unmapped)\n", l)
			continue
		}
		fmt.Fprintf(w, "  L%-4d -> P%d\n", l, p)
	}

	fmt.Fprintln(w, "pages:")
	for _, pv := range s.Pages() {
		data := " "
		if pv.State == ftl.Valid {
			data = string(pv.Data)
		}
		live := "-"
		if pv.Live {
			live = fmt.Sprintf("L%d", pv.Logical)
		}
		fmt.Fprintf(w, "  P%-4d state=%c data=%q live=%s\n", pv.Physical, pv.StateRune(), data, live)
	}

	fmt.Fprintln(w, "blocks:")
	for _, bv := range s.Blocks() {
		fmt.Fprintf(w, "  B%-4d erase=%-4d program=%-4d read=%-4d in_use=%v\n",
			bv.Block, bv.EraseCount, bv.ProgramCount, bv.ReadCount, bv.InUse)
	}
	return nil
}

// Stats writes the device's aggregate counters to w: total erase,
// program and read operations over the flash array, and total logical
// read, write and trim operations (with their failure counts) served
// through the Simulator facade.
func Stats(s *ftl.Simulator, w io.Writer) error {
	a := s.Array()
	fmt.Fprintf(w, "erases=%d programs=%d reads=%d\n", a.EraseSum, a.ProgramSum, a.ReadSum)
	fmt.Fprintf(w, "logical read count %d (%d failed)\n", s.ReadOps, s.ReadFailOps)
	fmt.Fprintf(w, "logical write count %d (%d failed)\n", s.WriteOps, s.WriteFailOps)
	fmt.Fprintf(w, "logical trim count %d (%d failed)\n", s.TrimOps, s.TrimFailOps)
	fmt.Fprintf(w, "blocks_in_use=%d/%d\n", a.BlocksInUse(), a.NumBlocks())
	fmt.Fprintf(w, "gc_count=%d\n", s.GCCount())
	return nil
}
