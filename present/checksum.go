package present

import (
	"ftlsim/ftl"
	"ftlsim/util"
)

// Checksum returns a content fingerprint of the device's live logical
// data, in logical address order, with unmapped pages contributing a
// single zero byte placeholder. Two simulator runs that reach the same
// logical contents after a different sequence of internal moves (a
// direct rewrite versus a logging relocation by the garbage collector,
// say) produce the same checksum, which is the point: it lets a test or
// a human diff two runs without caring which write policy produced the
// state. It reads through Pages, not Simulator.Read, so taking a
// checksum never perturbs the read counters it is being used to explain.
func Checksum(s *ftl.Simulator) uint64 {
	live := make(map[int]byte, s.NumLogicalPages())
	for _, pv := range s.Pages() {
		if pv.Live {
			live[pv.Logical] = pv.Data
		}
	}

	buf := make([]byte, 0, s.NumLogicalPages())
	for l := 0; l < s.NumLogicalPages(); l++ {
		if b, ok := live[l]; ok {
			buf = append(buf, b)
		} else {
			buf = append(buf, 0)
		}
	}
	return util.HashCode(buf)
}
