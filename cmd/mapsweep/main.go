// Command mapsweep generates maps over a grid of seeds and land fractions and
// reports how the resulting terrain is distributed.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"toromap/internal/config"
	"toromap/internal/logger"
	"toromap/internal/worldgen"
)

type scenario struct {
	seed int64
	land float64
}

func (s scenario) String() string {
	return fmt.Sprintf("seed=%d land=%.2f", s.seed, s.land)
}

type scenarioResult struct {
	scenario
	stats worldgen.Stats
	err   error
}

func main() {
	flags := config.Register(flag.CommandLine)
	seeds := flag.Int("seeds", 8, "number of consecutive seeds per land fraction")
	lands := flag.String("lands", "0.3,0.45,0.6", "comma separated land fractions")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	fractions, err := parseFractions(*lands)
	if err != nil {
		logger.Log.Fatal("bad -lands", zap.Error(err))
	}
	base := cfg.Map
	// each sweep run already uses its own goroutine
	base.Workers = 1
	first := base.Seed
	if first == 0 {
		first = 1
	}

	var sets []scenario
	for _, land := range fractions {
		for i := 0; i < *seeds; i++ {
			sets = append(sets, scenario{seed: first + int64(i), land: land})
		}
	}
	if *workers <= 0 {
		*workers = 1
	}
	logger.Log.Info("sweeping", zap.Int("scenarios", len(sets)), zap.Int("workers", *workers))

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- runScenario(base, s)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		for _, s := range sets {
			jobs <- s
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	failed := 0
	for res := range results {
		if res.err != nil {
			failed++
			logger.Log.Warn("scenario failed", zap.Stringer("scenario", res.scenario), zap.Error(res.err))
			continue
		}
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].land != all[j].land {
			return all[i].land < all[j].land
		}
		return all[i].seed < all[j].seed
	})

	fmt.Printf("%-26s %8s %8s %8s %8s %10s\n", "scenario", "land", "coast", "joints", "rivers", "took")
	for _, res := range all {
		st := res.stats
		fmt.Printf("%-26s %8.3f %8.3f %8d %8d %10s\n", res.scenario, st.LandRatio, st.CoastRatio, st.Joints, st.RiverEdges, st.Took.Round(time.Millisecond))
	}
	fmt.Println()
	for _, land := range fractions {
		var sum float64
		n := 0
		for _, res := range all {
			if res.land == land {
				sum += res.stats.LandRatio
				n++
			}
		}
		if n > 0 {
			fmt.Printf("land=%.2f mean land ratio %.3f over %d maps\n", land, sum/float64(n), n)
		}
	}
	logger.Log.Info("sweep done", zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)), zap.Int("failed", failed))
	if failed > 0 {
		logger.Sync()
		os.Exit(1)
	}
}

func runScenario(base worldgen.Config, s scenario) scenarioResult {
	cfg := base
	cfg.LandProb = s.land
	cfg.Seed = s.seed
	gen, err := worldgen.NewGenerator(cfg)
	if err != nil {
		return scenarioResult{scenario: s, err: err}
	}
	m, err := gen.Generate(s.seed)
	if err != nil {
		return scenarioResult{scenario: s, err: err}
	}
	return scenarioResult{scenario: s, stats: m.Stats}
}

func parseFractions(raw string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("land fraction %g outside [0, 1]", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no land fractions in %q", raw)
	}
	return out, nil
}
