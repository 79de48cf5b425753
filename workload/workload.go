// Package workload generates the command streams the simulator executes:
// a seeded random mix of read/write/trim/upkeep operations. ParseKind maps
// a single command keyword to its Kind; the package has no parser for a
// whole explicit command list.
package workload

import (
	"fmt"
	"math/rand"

	"github.com/juju/errors"
)

// Kind names a simulator operation a Command asks for.
type Kind int

const (
	KindRead Kind = iota
	KindWrite
	KindTrim
	KindUpkeep
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	case KindTrim:
		return "trim"
	case KindUpkeep:
		return "upkeep"
	default:
		return "unknown"
	}
}

// Command is one operation drawn from a workload, ready to hand to the
// simulator.
type Command struct {
	Kind    Kind
	Logical int
	Data    byte
}

// Mix gives the relative weight of each operation kind in a generated
// workload. Weights need not sum to 100; they are normalized against
// their total.
type Mix struct {
	ReadPercent   int
	WritePercent  int
	TrimPercent   int
	UpkeepPercent int
}

// Params configures a random command generator.
type Params struct {
	NumLogicalPages int
	Mix             Mix

	// SkewPercent biases address selection toward the low end of the
	// address space: SkewPercent of addresses are drawn from
	// [0, SkewWidth), and the rest from the full range. Zero disables
	// skew.
	SkewPercent int
	SkewWidth   int

	// ReadFailPercent is the percentage of generated reads that
	// deliberately target an address in [SkewWidth, NumLogicalPages),
	// outside the skewed hot range, to exercise the uninitialized-read
	// failure path more often. Such an address may still have been
	// written, so the failure rate is not guaranteed. It has no effect
	// when SkewWidth equals NumLogicalPages.
	ReadFailPercent int

	Seed int64
}

// Generator produces a bounded or unbounded stream of random Commands
// from a fixed Params and a private random source, so two generators
// built from the same Params and Seed produce identical streams.
type Generator struct {
	p    Params
	rng  *rand.Rand
	total int
}

// NewGenerator validates params and builds a Generator seeded
// deterministically from params.Seed.
func NewGenerator(p Params) (*Generator, error) {
	if p.NumLogicalPages <= 0 {
		return nil, errors.New("workload: NumLogicalPages must be positive")
	}
	total := p.Mix.ReadPercent + p.Mix.WritePercent + p.Mix.TrimPercent + p.Mix.UpkeepPercent
	if total <= 0 {
		return nil, errors.New("workload: mix percentages must sum to a positive total")
	}
	if p.SkewWidth < 0 || p.SkewWidth > p.NumLogicalPages {
		return nil, errors.Errorf("workload: skew width %d out of range [0, %d]", p.SkewWidth, p.NumLogicalPages)
	}
	return &Generator{p: p, rng: rand.New(rand.NewSource(p.Seed)), total: total}, nil
}

// Next produces the next pseudo-random Command.
func (g *Generator) Next() Command {
	roll := g.rng.Intn(g.total)
	switch {
	case roll < g.p.Mix.ReadPercent:
		return g.readCommand()
	case roll < g.p.Mix.ReadPercent+g.p.Mix.WritePercent:
		return Command{Kind: KindWrite, Logical: g.address(), Data: g.dataByte()}
	case roll < g.p.Mix.ReadPercent+g.p.Mix.WritePercent+g.p.Mix.TrimPercent:
		return Command{Kind: KindTrim, Logical: g.address()}
	default:
		return Command{Kind: KindUpkeep}
	}
}

func (g *Generator) readCommand() Command {
	if g.p.ReadFailPercent > 0 && g.rng.Intn(100) < g.p.ReadFailPercent && g.p.SkewWidth < g.p.NumLogicalPages {
		l := g.p.SkewWidth + g.rng.Intn(g.p.NumLogicalPages-g.p.SkewWidth)
		return Command{Kind: KindRead, Logical: l}
	}
	return Command{Kind: KindRead, Logical: g.address()}
}

func (g *Generator) address() int {
	if g.p.SkewPercent > 0 && g.p.SkewWidth > 0 && g.rng.Intn(100) < g.p.SkewPercent {
		return g.rng.Intn(g.p.SkewWidth)
	}
	return g.rng.Intn(g.p.NumLogicalPages)
}

func (g *Generator) dataByte() byte {
	return byte('a' + g.rng.Intn(26))
}

// NextN returns the next n commands.
func (g *Generator) NextN(n int) []Command {
	cmds := make([]Command, n)
	for i := range cmds {
		cmds[i] = g.Next()
	}
	return cmds
}

// ParseKind parses a command kind keyword ("read", "write", "trim",
// "upkeep") as used by explicit command-list scripts.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "read":
		return KindRead, nil
	case "write":
		return KindWrite, nil
	case "trim":
		return KindTrim, nil
	case "upkeep":
		return KindUpkeep, nil
	default:
		return 0, errors.Annotatef(fmt.Errorf("unrecognized command %q", s), "workload: parse command")
	}
}
