// Command hashbench drives every table variant through a synthetic
// insert/lookup/remove workload and reports wall-clock timings and heap
// usage, on stdout and as report files under ./output.
package main

import (
	"os"

	flags "github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type options struct {
	NumKeys   int     `long:"numKeys" default:"100000" description:"Number of distinct keys to drive through the table"`
	Load      float64 `long:"load" default:"0.5" description:"Target load factor used to size capacity-budget tables"`
	Type      string  `long:"type" default:"int" choice:"int" choice:"string" description:"Key type"`
	Hashtable string  `long:"hashtable" default:"all" description:"Variant to benchmark (linear, chain, cuckoo, perfect, iceberg, funnel, elastic, ipbt) or all"`
	Config    string  `long:"config" description:"Optional TOML file overriding per-variant construction parameters"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		// go-flags already printed the parse error
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if opts.NumKeys <= 0 {
		logger.Error("numKeys must be positive", zap.Int("numKeys", opts.NumKeys))
		os.Exit(1)
	}
	if opts.Load <= 0 || opts.Load > 1 {
		logger.Error("load must be in range (0, 1]", zap.Float64("load", opts.Load))
		os.Exit(1)
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		logger.Error("cannot load config", zap.String("path", opts.Config), zap.Error(err))
		os.Exit(1)
	}

	if err := run(logger, opts, cfg); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		os.Exit(1)
	}
}
