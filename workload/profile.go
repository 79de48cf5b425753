package workload

import (
	"github.com/juju/errors"
	"github.com/pelletier/go-toml"
)

// Profile is a named, on-disk workload scenario: a declarative form of
// Params that a run can be reproduced from without repeating flags on
// the command line.
type Profile struct {
	Name            string `toml:"name"`
	NumLogicalPages int    `toml:"num_logical_pages"`
	ReadPercent     int    `toml:"read_percent"`
	WritePercent    int    `toml:"write_percent"`
	TrimPercent     int    `toml:"trim_percent"`
	UpkeepPercent   int    `toml:"upkeep_percent"`
	SkewPercent     int    `toml:"skew_percent"`
	SkewWidth       int    `toml:"skew_width"`
	ReadFailPercent int    `toml:"read_fail_percent"`
	Seed            int64  `toml:"seed"`
	Commands        int    `toml:"commands"`
}

// Params converts the profile into generator Params.
func (p Profile) Params() Params {
	return Params{
		NumLogicalPages: p.NumLogicalPages,
		Mix: Mix{
			ReadPercent:   p.ReadPercent,
			WritePercent:  p.WritePercent,
			TrimPercent:   p.TrimPercent,
			UpkeepPercent: p.UpkeepPercent,
		},
		SkewPercent:     p.SkewPercent,
		SkewWidth:       p.SkewWidth,
		ReadFailPercent: p.ReadFailPercent,
		Seed:            p.Seed,
	}
}

// LoadProfile parses a TOML scenario file's contents into a Profile.
func LoadProfile(data []byte) (Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, errors.Annotate(err, "workload: parse profile")
	}
	if p.Commands <= 0 {
		p.Commands = 1000
	}
	return p, nil
}
