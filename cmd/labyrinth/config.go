// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/labyrinth/signature"
	"github.com/katalvlaran/labyrinth/solver"
)

type fileConfig struct {
	MaxRounds int `toml:"max_rounds"`
	MaxPlans  int `toml:"max_plans"`
	Budget    struct {
		Ratio   int `toml:"ratio"`
		Markers int `toml:"markers"`
	} `toml:"budget"`
	Walk struct {
		Seed        int64   `toml:"seed"`
		TargetRatio float64 `toml:"target_ratio"`
	} `toml:"walk"`
	Signature struct {
		BucketCap int   `toml:"bucket_cap"`
		Mixed     bool  `toml:"mixed"`
		Seed      int64 `toml:"seed"`
	} `toml:"signature"`
	Candidate struct {
		Weights    map[string]float64 `toml:"weights"`
		IDFScale   float64            `toml:"idf_scale"`
		IDFPower   float64            `toml:"idf_power"`
		PerNodeCap int                `toml:"per_node_cap"`
		MaxPairs   int                `toml:"max_pairs"`
		MinScore   float64            `toml:"min_score"`
	} `toml:"candidate"`
	Identify struct {
		Overselect    float64 `toml:"overselect"`
		MaxTasks      int     `toml:"max_tasks"`
		MinSeparation int     `toml:"min_separation"`
	} `toml:"identify"`
	Explore struct {
		Mode    string `toml:"mode"`
		TailMin int    `toml:"tail_min"`
		TailMax int    `toml:"tail_max"`
		Seed    int64  `toml:"seed"`
	} `toml:"explore"`
	Reverse struct {
		MaxProbes int `toml:"max_probes"`
	} `toml:"reverse"`
}

// loadEngineConfig overlays the keys present in path on DefaultConfig.
func loadEngineConfig(path string) (solver.Config, error) {
	cfg := solver.DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return solver.Config{}, fmt.Errorf("load engine config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return solver.Config{}, fmt.Errorf("load engine config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("max_rounds") {
		cfg.MaxRounds = raw.MaxRounds
	}
	if meta.IsDefined("max_plans") {
		cfg.MaxPlans = raw.MaxPlans
	}

	if meta.IsDefined("budget", "ratio") {
		cfg.Budget.Ratio = raw.Budget.Ratio
	}
	if meta.IsDefined("budget", "markers") {
		cfg.Budget.Markers = raw.Budget.Markers
	}

	if meta.IsDefined("walk", "seed") {
		cfg.Walk.Seed = raw.Walk.Seed
	}
	if meta.IsDefined("walk", "target_ratio") {
		cfg.Walk.TargetRatio = raw.Walk.TargetRatio
	}

	if meta.IsDefined("signature", "bucket_cap") {
		cfg.Signature.BucketCap = raw.Signature.BucketCap
	}
	if meta.IsDefined("signature", "mixed") {
		cfg.Signature.Mixed = raw.Signature.Mixed
	}
	if meta.IsDefined("signature", "seed") {
		cfg.Signature.Seed = raw.Signature.Seed
	}

	for name, w := range raw.Candidate.Weights {
		k, ok := kindByName(name)
		if !ok {
			return solver.Config{}, fmt.Errorf("load engine config: unknown signature kind %q", name)
		}
		cfg.Candidate.Weights[k] = w
	}
	if meta.IsDefined("candidate", "idf_scale") {
		cfg.Candidate.IDFScale = raw.Candidate.IDFScale
	}
	if meta.IsDefined("candidate", "idf_power") {
		cfg.Candidate.IDFPower = raw.Candidate.IDFPower
	}
	if meta.IsDefined("candidate", "per_node_cap") {
		cfg.Candidate.PerNodeCap = raw.Candidate.PerNodeCap
	}
	if meta.IsDefined("candidate", "max_pairs") {
		cfg.Candidate.MaxPairs = raw.Candidate.MaxPairs
	}
	if meta.IsDefined("candidate", "min_score") {
		cfg.Candidate.MinScore = raw.Candidate.MinScore
	}

	if meta.IsDefined("identify", "overselect") {
		cfg.Identify.Overselect = raw.Identify.Overselect
	}
	if meta.IsDefined("identify", "max_tasks") {
		cfg.Identify.MaxTasks = raw.Identify.MaxTasks
	}
	if meta.IsDefined("identify", "min_separation") {
		cfg.Identify.MinSeparation = raw.Identify.MinSeparation
	}

	if meta.IsDefined("explore", "mode") {
		cfg.Explore.Mode = strings.ToLower(strings.TrimSpace(raw.Explore.Mode))
	}
	if meta.IsDefined("explore", "tail_min") {
		cfg.Explore.TailMin = raw.Explore.TailMin
	}
	if meta.IsDefined("explore", "tail_max") {
		cfg.Explore.TailMax = raw.Explore.TailMax
	}
	if meta.IsDefined("explore", "seed") {
		cfg.Explore.Seed = raw.Explore.Seed
	}

	if meta.IsDefined("reverse", "max_probes") {
		cfg.Reverse.MaxProbes = raw.Reverse.MaxProbes
	}

	if err := cfg.Validate(); err != nil {
		return solver.Config{}, fmt.Errorf("load engine config: %w", err)
	}

	return cfg, nil
}

// kindByName maps the short kind names (f1, b1, f2, b2, mix) used as
// weight keys.
func kindByName(name string) (signature.Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := signature.Kind(0); k < signature.KindCount; k++ {
		if k.String() == name {
			return k, true
		}
	}

	return 0, false
}
