// Package simconf loads device and garbage-collector configuration from
// an ini file, with command-line flags layered on top as overrides. It
// never terminates the process on a bad value; every failure comes back
// as an error for the caller (cmd/ftlsim) to report and exit on.
package simconf

import (
	"github.com/juju/errors"
	"gopkg.in/ini.v1"

	"ftlsim/ftl"
)

// Config is the fully resolved set of values a Simulator and a workload
// Generator are built from.
type Config struct {
	NumBlocks       int
	PagesPerBlock   int
	NumLogicalPages int
	Policy          ftl.PolicyKind
	HighWaterMark   int
	LowWaterMark    int

	Seed            int64
	Commands        int
	ReadPercent     int
	WritePercent    int
	TrimPercent     int
	UpkeepPercent   int
	SkewPercent     int
	SkewWidth       int
	ReadFailPercent int

	ProfilePath string
	CommandFile string
	Quiet       bool
}

// Default returns the built-in baseline configuration, matching the
// reference simulator's default geometry: a small device exercised
// heavily enough that garbage collection actually triggers.
func Default() Config {
	return Config{
		NumBlocks:       32,
		PagesPerBlock:   8,
		NumLogicalPages: 200,
		Policy:          ftl.PolicyLogging,
		HighWaterMark:   28,
		LowWaterMark:    20,

		Seed:          1,
		Commands:      1000,
		ReadPercent:   40,
		WritePercent:  40,
		TrimPercent:   15,
		UpkeepPercent: 5,
	}
}

// The sectionInt/sectionInt64/sectionString/sectionBool helpers keep the repeated ini.Section.Key(...)
// dance in one place instead of scattered across every field.
func sectionInt(section *ini.Section, key string, fallback int) (int, error) {
	if !section.HasKey(key) {
		return fallback, nil
	}
	v, err := section.Key(key).Int()
	if err != nil {
		return 0, errors.Annotatef(err, "simconf: parse %s", key)
	}
	return v, nil
}

func sectionInt64(section *ini.Section, key string, fallback int64) (int64, error) {
	if !section.HasKey(key) {
		return fallback, nil
	}
	v, err := section.Key(key).Int64()
	if err != nil {
		return 0, errors.Annotatef(err, "simconf: parse %s", key)
	}
	return v, nil
}

func sectionString(section *ini.Section, key, fallback string) string {
	if !section.HasKey(key) {
		return fallback
	}
	return section.Key(key).String()
}

func sectionBool(section *ini.Section, key string, fallback bool) (bool, error) {
	if !section.HasKey(key) {
		return fallback, nil
	}
	v, err := section.Key(key).Bool()
	if err != nil {
		return false, errors.Annotatef(err, "simconf: parse %s", key)
	}
	return v, nil
}

// Load reads an ini file at path, overlaying its [device] and [workload]
// sections onto Default(). A missing file is not an error — it is
// treated the same as an empty file, so a bare invocation with only CLI
// flags still works.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := ini.LoadSources(ini.LoadOptions{Loose: true, AllowBooleanKeys: true}, path)
	if err != nil {
		return Config{}, errors.Annotatef(err, "simconf: load %s", path)
	}

	device := raw.Section("device")
	var parseErr error
	if cfg.NumBlocks, parseErr = sectionInt(device, "num_blocks", cfg.NumBlocks); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.PagesPerBlock, parseErr = sectionInt(device, "pages_per_block", cfg.PagesPerBlock); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.NumLogicalPages, parseErr = sectionInt(device, "num_logical_pages", cfg.NumLogicalPages); parseErr != nil {
		return Config{}, parseErr
	}
	cfg.Policy = ftl.PolicyKind(sectionString(device, "policy", string(cfg.Policy)))
	if cfg.HighWaterMark, parseErr = sectionInt(device, "high_water_mark", cfg.HighWaterMark); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.LowWaterMark, parseErr = sectionInt(device, "low_water_mark", cfg.LowWaterMark); parseErr != nil {
		return Config{}, parseErr
	}

	wl := raw.Section("workload")
	if cfg.Seed, parseErr = sectionInt64(wl, "seed", cfg.Seed); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.Commands, parseErr = sectionInt(wl, "commands", cfg.Commands); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.ReadPercent, parseErr = sectionInt(wl, "read_percent", cfg.ReadPercent); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.WritePercent, parseErr = sectionInt(wl, "write_percent", cfg.WritePercent); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.TrimPercent, parseErr = sectionInt(wl, "trim_percent", cfg.TrimPercent); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.UpkeepPercent, parseErr = sectionInt(wl, "upkeep_percent", cfg.UpkeepPercent); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.SkewPercent, parseErr = sectionInt(wl, "skew_percent", cfg.SkewPercent); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.SkewWidth, parseErr = sectionInt(wl, "skew_width", cfg.SkewWidth); parseErr != nil {
		return Config{}, parseErr
	}
	if cfg.ReadFailPercent, parseErr = sectionInt(wl, "read_fail_percent", cfg.ReadFailPercent); parseErr != nil {
		return Config{}, parseErr
	}
	cfg.ProfilePath = sectionString(wl, "profile", cfg.ProfilePath)
	cfg.CommandFile = sectionString(wl, "command_file", cfg.CommandFile)
	if cfg.Quiet, parseErr = sectionBool(wl, "quiet", cfg.Quiet); parseErr != nil {
		return Config{}, parseErr
	}

	return cfg, nil
}

// Validate checks the resolved config for internal consistency before
// it is handed to ftl.NewSimulator, so a bad ini value or flag produces a
// clear message instead of a confusing construction-time error three
// layers down.
func (c Config) Validate() error {
	if c.NumBlocks <= 0 {
		return errors.New("simconf: num_blocks must be positive")
	}
	if c.PagesPerBlock <= 0 {
		return errors.New("simconf: pages_per_block must be positive")
	}
	if c.NumLogicalPages <= 0 {
		return errors.New("simconf: num_logical_pages must be positive")
	}
	switch c.Policy {
	case ftl.PolicyDirect, ftl.PolicyIdeal, ftl.PolicyLogging:
	default:
		return errors.Errorf("simconf: unknown policy %q", c.Policy)
	}
	if c.Policy == ftl.PolicyLogging && c.HighWaterMark <= c.LowWaterMark {
		return errors.Errorf("simconf: high_water_mark (%d) must exceed low_water_mark (%d)", c.HighWaterMark, c.LowWaterMark)
	}
	return nil
}

// SimulatorConfig converts Config into the ftl package's construction
// arguments.
func (c Config) SimulatorConfig() ftl.Config {
	return ftl.Config{
		NumBlocks:       c.NumBlocks,
		PagesPerBlock:   c.PagesPerBlock,
		NumLogicalPages: c.NumLogicalPages,
		Policy:          c.Policy,
		HighWaterMark:   c.HighWaterMark,
		LowWaterMark:    c.LowWaterMark,
	}
}
