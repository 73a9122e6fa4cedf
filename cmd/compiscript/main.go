// Command compiscript is the CLI driver around internal/pipeline,
// grounded on the teacher's cmd/funxy/main.go (panic recovery, a
// subcommand dispatch table, os.Exit on failure) but scoped to this
// analyzer's three commands: check, dump, and cache info.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cslang/compiscript/internal/cache"
	"github.com/cslang/compiscript/internal/cliutil"
	"github.com/cslang/compiscript/internal/config"
	"github.com/cslang/compiscript/internal/pipeline"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a bug, please report it")
			os.Exit(1)
		}
	}()

	if len(os.Args) < 3 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		runCheck(os.Args[2])
	case "dump":
		runDump(os.Args[2])
	case "cache":
		if len(os.Args) < 4 || os.Args[2] != "info" {
			usage()
			os.Exit(1)
		}
		runCacheInfo(os.Args[3])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: compiscript check <file>")
	fmt.Fprintln(os.Stderr, "       compiscript dump <file>")
	fmt.Fprintln(os.Stderr, "       compiscript cache info <file>")
}

func readSource(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
		os.Exit(1)
	}
	return string(data)
}

func analyze(path string) *pipeline.Context {
	source := readSource(path)
	ctx := pipeline.NewContext(path, source)
	return pipeline.Standard().Run(ctx)
}

func runCheck(path string) {
	ctx := analyze(path)
	color := cliutil.ColorEnabled(os.Stdout)
	cliutil.PrintDiagnostics(os.Stdout, ctx.Diagnostics, color)
	fmt.Println(cliutil.Summary(ctx.Diagnostics))

	if c, err := openCache(); err == nil {
		defer c.Close()
		hash := cache.HashContent(ctx.SourceCode)
		_ = c.Put(absPath(path), hash, ctx.RunID.String(), ctx.Diagnostics)
	}

	if len(ctx.Diagnostics) > 0 {
		os.Exit(1)
	}
}

func runDump(path string) {
	ctx := analyze(path)
	if len(ctx.Diagnostics) > 0 {
		color := cliutil.ColorEnabled(os.Stdout)
		cliutil.PrintDiagnostics(os.Stdout, ctx.Diagnostics, color)
		os.Exit(1)
	}
	for _, line := range ctx.SymbolTable.ExportLines() {
		fmt.Println(line)
	}
}

func runCacheInfo(path string) {
	c, err := openCache()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cache unavailable: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	entry, ok, err := c.LatestFor(absPath(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "cache error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("no cached run for", path)
		return
	}
	fmt.Printf("last run:   %s (%s)\n", cliutil.FormatTimestamp(entry.RanAt), cliutil.ElapsedSince(entry.RanAt))
	fmt.Printf("run id:     %s\n", entry.RunID)
	fmt.Printf("diagnostics: %s\n", cliutil.Summary(entry.Diagnostics))
}

func openCache() (*cache.DiagnosticsCache, error) {
	return cache.Open(config.CacheFileName)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
