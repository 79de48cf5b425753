package present

import (
	"encoding/json"

	"ftlsim/ftl"
)

// jsonPage and jsonBlock mirror ftl.PageView/ftl.BlockView but with
// exported, stable field names independent of the ftl package's own
// naming, so the wire shape doesn't shift if the core types are
// refactored.
//
// encoding/json is used here deliberately rather than a third-party
// codec: nothing in the retrieved stack offers a JSON marshaler actually
// exercised anywhere (easyjson only ever arrived as an indirect,
// never-imported dependency), and the dump format is small and produced
// at most once per run, not on a hot path where generated marshaling would
// pay for itself.
type jsonPage struct {
	Physical int    `json:"physical"`
	State    string `json:"state"`
	Data     string `json:"data,omitempty"`
	Live     bool   `json:"live"`
	Logical  int    `json:"logical,omitempty"`
}

type jsonBlock struct {
	Block        int  `json:"block"`
	EraseCount   int  `json:"erase_count"`
	ProgramCount int  `json:"program_count"`
	ReadCount    int  `json:"read_count"`
	InUse        bool `json:"in_use"`
}

type jsonDump struct {
	Policy       string      `json:"policy"`
	ForwardMap   []int       `json:"forward_map"`
	Pages        []jsonPage  `json:"pages"`
	Blocks       []jsonBlock `json:"blocks"`
	ReadOps      int         `json:"read_ops"`
	WriteOps     int         `json:"write_ops"`
	TrimOps      int         `json:"trim_ops"`
	ReadFailOps  int         `json:"read_fail_ops"`
	WriteFailOps int         `json:"write_fail_ops"`
	TrimFailOps  int         `json:"trim_fail_ops"`
	Checksum     uint64      `json:"checksum"`
}

func stateName(s ftl.PageState) string {
	switch s {
	case ftl.Invalid:
		return "invalid"
	case ftl.Erased:
		return "erased"
	case ftl.Valid:
		return "valid"
	default:
		return "unknown"
	}
}

// DumpJSON renders the same information as Dump, structured for
// machine consumption.
func DumpJSON(s *ftl.Simulator) ([]byte, error) {
	d := jsonDump{
		Policy:       s.PolicyName(),
		ForwardMap:   s.ForwardMap(),
		ReadOps:      s.ReadOps,
		WriteOps:     s.WriteOps,
		TrimOps:      s.TrimOps,
		ReadFailOps:  s.ReadFailOps,
		WriteFailOps: s.WriteFailOps,
		TrimFailOps:  s.TrimFailOps,
		Checksum:     Checksum(s),
	}
	for _, pv := range s.Pages() {
		jp := jsonPage{Physical: pv.Physical, State: stateName(pv.State), Live: pv.Live}
		if pv.State == ftl.Valid {
			jp.Data = string(pv.Data)
		}
		if pv.Live {
			jp.Logical = pv.Logical
		}
		d.Pages = append(d.Pages, jp)
	}
	for _, bv := range s.Blocks() {
		d.Blocks = append(d.Blocks, jsonBlock{
			Block:        bv.Block,
			EraseCount:   bv.EraseCount,
			ProgramCount: bv.ProgramCount,
			ReadCount:    bv.ReadCount,
			InUse:        bv.InUse,
		})
	}
	return json.MarshalIndent(d, "", "  ")
}
