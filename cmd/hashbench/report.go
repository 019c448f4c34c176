package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const outputDir = "output"

type result struct {
	insert    time.Duration
	lookup    time.Duration
	remove    time.Duration
	heapBytes uint64
}

// writeReports prints the time and space reports to stdout and writes them
// to ./output/time_<variant>_<type>_<numKeys>_<load>.txt and the matching
// space_ file.
func writeReports(name string, opts options, rep result) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	suffix := fmt.Sprintf("%s_%s_%d_%g.txt", name, opts.Type, opts.NumKeys, opts.Load)
	perOp := func(d time.Duration) float64 {
		return float64(d.Nanoseconds()) / float64(opts.NumKeys)
	}

	timeReport := fmt.Sprintf(
		"hashtable: %s\nkeys: %d (%s)\ntarget load: %g\n"+
			"insert: %v (%.1f ns/op)\nlookup: %v (%.1f ns/op)\nremove: %v (%.1f ns/op)\n",
		name, opts.NumKeys, opts.Type, opts.Load,
		rep.insert, perOp(rep.insert),
		rep.lookup, perOp(rep.lookup),
		rep.remove, perOp(rep.remove),
	)
	fmt.Print(timeReport)
	if err := os.WriteFile(filepath.Join(outputDir, "time_"+suffix), []byte(timeReport), 0o644); err != nil {
		return err
	}

	spaceReport := fmt.Sprintf(
		"hashtable: %s\nkeys: %d (%s)\ntarget load: %g\nheap: %d bytes (%.1f bytes/key)\n",
		name, opts.NumKeys, opts.Type, opts.Load,
		rep.heapBytes, float64(rep.heapBytes)/float64(opts.NumKeys),
	)
	fmt.Print(spaceReport)
	return os.WriteFile(filepath.Join(outputDir, "space_"+suffix), []byte(spaceReport), 0o644)
}
