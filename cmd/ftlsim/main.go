package main

import (
	"flag"
	"fmt"
	"os"

	"ftlsim/logger"
	"ftlsim/present"
	"ftlsim/simconf"
	"ftlsim/workload"
)

const help = `
******************************************************************************************

  _____ _______ _      _____ _____ __  __
 |  ___|_   _| |  ___|_   _|  _ \|  \/  |
 | |_    | | | | / __|  | | | |_) | |\/| |
 |  _|   | | | | \__ \  | | |  __/| |  | |
 |_|     |_| |_|___/  |_| |_|    |_|  |_|

******************************************************************************************
* usage:
*   -config      ini file with [device]/[workload] sections
*   -profile     TOML workload scenario file (overrides [workload] in -config)
*   -policy      direct | ideal | logging  (overrides config)
*   -commands    number of random commands to run
*   -seed        PRNG seed for the random workload
*   -tui         launch the interactive inspector instead of running headless
*   -dump        print a full state dump after the run
*   -json        print the state dump as JSON instead of text
******************************************************************************************
`

func main() {
	var (
		configPath  string
		profilePath string
		policy      string
		commands    int
		seed        int64
		tui         bool
		dump        bool
		asJSON      bool
		quiet       bool
	)
	flag.StringVar(&configPath, "config", "", "ini configuration file")
	flag.StringVar(&profilePath, "profile", "", "TOML workload profile")
	flag.StringVar(&policy, "policy", "", "write policy override: direct, ideal, logging")
	flag.IntVar(&commands, "commands", 0, "number of commands to run (0 keeps config default)")
	flag.Int64Var(&seed, "seed", 0, "PRNG seed override (0 keeps config default)")
	flag.BoolVar(&tui, "tui", false, "launch the interactive inspector")
	flag.BoolVar(&dump, "dump", false, "print a full state dump after the run")
	flag.BoolVar(&asJSON, "json", false, "render the dump as JSON")
	flag.BoolVar(&quiet, "quiet", false, "suppress the per-command trace log")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, help)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := simconf.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ftlsim: %v\n", err)
		os.Exit(1)
	}
	if policy != "" {
		cfg.Policy = parsePolicyFlag(policy)
	}
	if commands > 0 {
		cfg.Commands = commands
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if quiet {
		cfg.Quiet = true
	}

	if err := logger.InitLogger(logger.LogConfig{LogLevel: "info"}); err != nil {
		fmt.Fprintf(os.Stderr, "ftlsim: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		logger.Errorf("invalid configuration: %v", err)
		os.Exit(1)
	}

	if profilePath != "" {
		data, err := os.ReadFile(profilePath)
		if err != nil {
			logger.Errorf("failed to read profile %s: %v", profilePath, err)
			os.Exit(1)
		}
		profile, err := workload.LoadProfile(data)
		if err != nil {
			logger.Errorf("failed to parse profile %s: %v", profilePath, err)
			os.Exit(1)
		}
		applyProfile(&cfg, profile)
	}

	logger.Infof("starting device: blocks=%d pages_per_block=%d logical_pages=%d policy=%s",
		cfg.NumBlocks, cfg.PagesPerBlock, cfg.NumLogicalPages, cfg.Policy)

	run, err := newRun(cfg)
	if err != nil {
		logger.Errorf("failed to build simulator: %v", err)
		os.Exit(1)
	}

	if tui {
		if err := present.Inspect(run.sim, run.step); err != nil {
			logger.Errorf("inspector exited with error: %v", err)
			os.Exit(1)
		}
	} else {
		run.runAll(cfg.Commands)
	}

	if dump {
		if asJSON {
			data, err := present.DumpJSON(run.sim)
			if err != nil {
				logger.Errorf("failed to render dump: %v", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		} else {
			present.Dump(run.sim, os.Stdout)
		}
	}
	present.Stats(run.sim, os.Stdout)
	fmt.Printf("checksum=%016x\n", present.Checksum(run.sim))
}
