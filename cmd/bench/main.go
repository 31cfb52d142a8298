// Command bench drives a synthetic lexer workload against the string and
// keyed pools and exposes optional Prometheus, stats and pprof endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/IvanBrykalov/textcache/cache"
	pmet "github.com/IvanBrykalov/textcache/metrics/prom"
)

var (
	// Version is set via ldflags when building.
	Version = ""

	cli CLI
)

// CLI holds the command line. Fields that a --profile file sets to a
// non-zero value are overridden by it.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information."`

	Workers    int           `help:"Worker goroutines (0 = 2*GOMAXPROCS)." default:"0"`
	Duration   time.Duration `help:"Benchmark duration." default:"10s"`
	Idents     int           `help:"Distinct identifiers in the synthetic corpus." default:"50000"`
	FileTokens int           `name:"file-tokens" help:"Tokens per synthetic file; tables are released and reacquired between files." default:"4096"`
	MetaPct    int           `name:"meta-pct" help:"Percentage of tokens decoded through the table-less InternUTF8 path [0..100]." default:"5"`
	ZipfS      float64       `name:"zipf-s" help:"Zipf s > 1 (skew)." default:"1.1"`
	ZipfV      float64       `name:"zipf-v" help:"Zipf v >= 1." default:"1.0"`
	Seed       int64         `help:"Random seed (0 = time based)." default:"0"`

	HTTP     string `name:"http" help:"Serve /metrics, /stats and /debug/pprof at addr; empty disables." default:":8080"`
	LogLevel string `name:"log-level" help:"Log level." enum:"debug,info,warn,error" default:"info"`
	Profile  string `help:"YAML workload profile." type:"existingfile"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("bench"),
		kong.Description("Synthetic lexer workload against textcache pools."),
		kong.UsageOnError(),
		kong.Vars{"version": buildVersion()},
	)
	ctx.FatalIfErrorf(cli.Run())
}

func buildVersion() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// Run executes one benchmark run and prints a report to stdout.
func (c *CLI) Run() error {
	if c.Profile != "" {
		p, err := LoadProfile(c.Profile)
		if err != nil {
			return err
		}
		p.Apply(c)
	}
	if err := c.normalize(); err != nil {
		return err
	}

	logger, err := newLogger(c.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	cache.SetLogger(logger)

	runID := uuid.NewString()
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	labels := prometheus.Labels{"run": runID}
	strs := cache.NewStringPool(cache.Options{Metrics: pmet.New(reg, "textcache", "strings", labels)})
	kinds := cache.NewKeyedPool[tokenKind](strs, cache.Options{Metrics: pmet.New(reg, "textcache", "kinds", labels)})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if c.HTTP != "" {
		srv := newServer(reg, func() statsReport {
			return statsReport{RunID: runID, Strings: strs.Stats(), Kinds: kinds.Stats()}
		})
		go func() {
			logger.Info("http: serving", "addr", c.HTTP)
			if err := srv.Start(c.HTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http: server stopped", "err", err)
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	w := &workload{
		corpus:     newCorpus(c.Idents),
		strings:    strs,
		kinds:      kinds,
		seed:       c.Seed,
		zipfS:      c.ZipfS,
		zipfV:      c.ZipfV,
		fileTokens: c.FileTokens,
		metaPct:    c.MetaPct,
	}
	logger.Info("bench: starting",
		"run", runID, "workers", c.Workers, "duration", c.Duration,
		"corpus", len(w.corpus.tokens), "seed", c.Seed)

	start := time.Now()
	t, err := w.run(ctx, c.Workers, c.Duration)
	if err != nil {
		return fmt.Errorf("workload: %w", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("run=%s workers=%d corpus=%d dur=%v seed=%d\n",
		runID, c.Workers, len(w.corpus.tokens), elapsed.Round(time.Millisecond), c.Seed)
	fmt.Printf("tokens=%d (%.0f tok/s)  idents=%d  keywords=%d  meta=%d  files=%d\n",
		t.tokens, float64(t.tokens)/elapsed.Seconds(), t.idents, t.keywords, t.meta, t.files)
	printStats("strings", strs.Stats())
	printStats("kinds", kinds.Stats())
	return nil
}

// normalize fills defaults that depend on the environment and rejects
// values the workload cannot run with.
func (c *CLI) normalize() error {
	if c.Workers <= 0 {
		c.Workers = 2 * runtime.GOMAXPROCS(0)
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	switch {
	case c.Duration <= 0:
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	case c.Idents <= 0:
		return fmt.Errorf("idents must be positive, got %d", c.Idents)
	case c.FileTokens <= 0:
		return fmt.Errorf("file-tokens must be positive, got %d", c.FileTokens)
	case c.MetaPct < 0 || c.MetaPct > 100:
		return fmt.Errorf("meta-pct must be in [0,100], got %d", c.MetaPct)
	case c.ZipfS <= 1:
		return fmt.Errorf("zipf-s must be > 1, got %v", c.ZipfS)
	case c.ZipfV < 1:
		return fmt.Errorf("zipf-v must be >= 1, got %v", c.ZipfV)
	}
	return nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func printStats(name string, st cache.Stats) {
	hitRate := 0.0
	if n := st.Lookups(); n > 0 {
		hitRate = float64(st.LocalHits+st.SharedHits) / float64(n) * 100
	}
	fmt.Printf("%-8s local-hits=%d shared-hits=%d misses=%d hit-rate=%.2f%%  evictions local=%d shared=%d\n",
		name, st.LocalHits, st.SharedHits, st.Misses, hitRate, st.LocalEvictions, st.SharedEvictions)
}
