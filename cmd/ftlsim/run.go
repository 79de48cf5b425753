package main

import (
	"fmt"

	"ftlsim/ftl"
	"ftlsim/logger"
	"ftlsim/simconf"
	"ftlsim/workload"
)

// run bundles a Simulator with the generator driving it, so both the
// headless loop and the interactive inspector can share one command
// source.
type run struct {
	sim *ftl.Simulator
	gen *workload.Generator
	cfg simconf.Config
}

func newRun(cfg simconf.Config) (*run, error) {
	sim, err := ftl.NewSimulator(cfg.SimulatorConfig())
	if err != nil {
		return nil, err
	}
	gen, err := workload.NewGenerator(workload.Params{
		NumLogicalPages: cfg.NumLogicalPages,
		Mix: workload.Mix{
			ReadPercent:   cfg.ReadPercent,
			WritePercent:  cfg.WritePercent,
			TrimPercent:   cfg.TrimPercent,
			UpkeepPercent: cfg.UpkeepPercent,
		},
		SkewPercent:     cfg.SkewPercent,
		SkewWidth:       cfg.SkewWidth,
		ReadFailPercent: cfg.ReadFailPercent,
		Seed:            cfg.Seed,
	})
	if err != nil {
		return nil, err
	}
	return &run{sim: sim, gen: gen, cfg: cfg}, nil
}

// execute applies one workload command to the simulator and returns a
// one-line description of what it asked for.
func (r *run) execute(cmd workload.Command) (string, error) {
	switch cmd.Kind {
	case workload.KindRead:
		_, err := r.sim.Read(cmd.Logical)
		return fmt.Sprintf("read(logical=%d)", cmd.Logical), err
	case workload.KindWrite:
		err := r.sim.Write(cmd.Logical, cmd.Data)
		return fmt.Sprintf("write(logical=%d, data=%q)", cmd.Logical, cmd.Data), err
	case workload.KindTrim:
		err := r.sim.Trim(cmd.Logical)
		return fmt.Sprintf("trim(logical=%d)", cmd.Logical), err
	case workload.KindUpkeep:
		erased := r.sim.Upkeep()
		return fmt.Sprintf("upkeep() reclaimed %d block(s)", erased), nil
	default:
		return "unknown", nil
	}
}

// step advances the simulator by one generated command, for use by the
// interactive inspector.
func (r *run) step() (string, error) {
	return r.execute(r.gen.Next())
}

func (r *run) runAll(n int) {
	if n <= 0 {
		n = 1000
	}
	for i := 0; i < n; i++ {
		desc, err := r.execute(r.gen.Next())
		if !r.cfg.Quiet {
			logger.Infof("%s -> %s", desc, ftl.Outcome(err))
		}
	}
}

func applyProfile(cfg *simconf.Config, p workload.Profile) {
	if p.NumLogicalPages > 0 {
		cfg.NumLogicalPages = p.NumLogicalPages
	}
	cfg.ReadPercent = p.ReadPercent
	cfg.WritePercent = p.WritePercent
	cfg.TrimPercent = p.TrimPercent
	cfg.UpkeepPercent = p.UpkeepPercent
	cfg.SkewPercent = p.SkewPercent
	cfg.SkewWidth = p.SkewWidth
	cfg.ReadFailPercent = p.ReadFailPercent
	cfg.Seed = p.Seed
	cfg.Commands = p.Commands
}

func parsePolicyFlag(s string) ftl.PolicyKind {
	switch s {
	case "direct":
		return ftl.PolicyDirect
	case "ideal":
		return ftl.PolicyIdeal
	case "logging":
		return ftl.PolicyLogging
	default:
		return ftl.PolicyKind(s)
	}
}
