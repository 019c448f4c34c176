package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	hashing "github.com/XinyaoQiu/modern-hashing"
	"github.com/XinyaoQiu/modern-hashing/chain"
	"github.com/XinyaoQiu/modern-hashing/cuckoo"
	"github.com/XinyaoQiu/modern-hashing/elastic"
	"github.com/XinyaoQiu/modern-hashing/funnel"
	"github.com/XinyaoQiu/modern-hashing/iceberg"
	"github.com/XinyaoQiu/modern-hashing/ipbt"
	"github.com/XinyaoQiu/modern-hashing/linear"
	"github.com/XinyaoQiu/modern-hashing/perfect"
)

var variantNames = []string{
	"linear", "chain", "cuckoo", "perfect", "iceberg", "funnel", "elastic", "ipbt",
}

// fileConfig carries per-variant construction overrides from the optional
// TOML config.
type fileConfig struct {
	Chain struct {
		Buckets int `toml:"buckets"`
	} `toml:"chain"`
	Perfect struct {
		Buckets int `toml:"buckets"`
	} `toml:"perfect"`
	Funnel struct {
		Delta float64 `toml:"delta"`
	} `toml:"funnel"`
	Elastic struct {
		Delta float64 `toml:"delta"`
	} `toml:"elastic"`
	IPBT struct {
		Shape float64 `toml:"shape"`
	} `toml:"ipbt"`
}

func loadConfig(path string) (fileConfig, error) {
	cfg := fileConfig{}
	cfg.Funnel.Delta = 0.1
	cfg.Elastic.Delta = 0.1
	cfg.IPBT.Shape = 2.0
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// build constructs a variant sized so that numKeys entries land near the
// requested load factor where the variant has a capacity budget to size.
func build[K comparable](name string, numKeys int, load float64, cfg fileConfig) (hashing.Table[K, uint64], error) {
	budget := int(float64(numKeys) / load)
	switch name {
	case "linear":
		return linear.NewHashTableDefault[K, uint64](), nil
	case "chain":
		buckets := cfg.Chain.Buckets
		if buckets == 0 {
			buckets = budget
		}
		return chain.NewHashTable[K, uint64](buckets), nil
	case "cuckoo":
		perTable := budget / 2
		if perTable < 1 {
			perTable = 1
		}
		return cuckoo.NewHashTable[K, uint64](perTable), nil
	case "perfect":
		buckets := cfg.Perfect.Buckets
		if buckets == 0 {
			buckets = numKeys / 32
			if buckets < 16 {
				buckets = 16
			}
		}
		return perfect.NewHashTable[K, uint64](buckets), nil
	case "iceberg":
		blocks := budget / (64 + 8)
		if blocks < 1 {
			blocks = 1
		}
		return iceberg.NewHashTable[K, uint64](blocks), nil
	case "funnel":
		return funnel.NewHashTable[K, uint64](budget, cfg.Funnel.Delta), nil
	case "elastic":
		return elastic.NewHashTable[K, uint64](budget, cfg.Elastic.Delta), nil
	case "ipbt":
		return ipbt.NewHashTable[K, uint64](budget, cfg.IPBT.Shape), nil
	}
	return nil, fmt.Errorf("unknown hashtable %q", name)
}

func run(logger *zap.Logger, opts options, cfg fileConfig) error {
	names := variantNames
	if opts.Hashtable != "all" {
		names = []string{opts.Hashtable}
	}

	for _, name := range names {
		var (
			rep result
			err error
		)
		switch opts.Type {
		case "int":
			rep, err = benchVariant(name, opts, cfg, intKeys(opts.NumKeys))
		case "string":
			rep, err = benchVariant(name, opts, cfg, stringKeys(opts.NumKeys))
		}
		if err != nil {
			return err
		}

		logger.Info("variant done",
			zap.String("hashtable", name),
			zap.String("type", opts.Type),
			zap.Int("numKeys", opts.NumKeys),
			zap.Duration("insert", rep.insert),
			zap.Duration("lookup", rep.lookup),
			zap.Duration("remove", rep.remove),
			zap.Uint64("heapBytes", rep.heapBytes),
		)
		if err := writeReports(name, opts, rep); err != nil {
			return err
		}
	}
	return nil
}

func benchVariant[K comparable](name string, opts options, cfg fileConfig, keys []K) (result, error) {
	tbl, err := build[K](name, opts.NumKeys, opts.Load, cfg)
	if err != nil {
		return result{}, err
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	start := time.Now()
	for i, k := range keys {
		tbl.Insert(k, uint64(i))
	}
	insertTime := time.Since(start)

	runtime.GC()
	runtime.ReadMemStats(&after)
	var heap uint64
	if after.HeapAlloc > before.HeapAlloc {
		heap = after.HeapAlloc - before.HeapAlloc
	}

	start = time.Now()
	for _, k := range keys {
		if _, ok := tbl.Lookup(k); !ok {
			return result{}, fmt.Errorf("%s: lost a key during the lookup pass", name)
		}
	}
	lookupTime := time.Since(start)

	start = time.Now()
	for _, k := range keys {
		if !tbl.Remove(k) {
			return result{}, fmt.Errorf("%s: lost a key during the remove pass", name)
		}
	}
	removeTime := time.Since(start)

	if tbl.Len() != 0 {
		return result{}, fmt.Errorf("%s: %d entries left after removing all keys", name, tbl.Len())
	}

	return result{
		insert:    insertTime,
		lookup:    lookupTime,
		remove:    removeTime,
		heapBytes: heap,
	}, nil
}

// intKeys spreads the key space with the mixing finalizer so the workload
// does not favor tables that like sequential keys.
func intKeys(n int) []uint64 {
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = hashing.Mix64(uint64(i))
	}
	return keys
}

func stringKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%016x", hashing.Mix64(uint64(i)))
	}
	return keys
}
