package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jfpardy/s3dx-viewer/internal/batch"
	"github.com/jfpardy/s3dx-viewer/internal/config"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory of .s3dx files (default: current directory)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	size := flag.Int("size", 0, "Snapshot size in pixels (default: 512)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	view := flag.String("view", "", "View: persp, top, side or scene (default: scene)")
	testN := flag.Int("test", 0, "Render only first N files for testing")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Size:      *size,
		Workers:   *workers,
		View:      *view,
	})

	files, err := collectFiles(cfg.InputDir, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *testN > 0 && *testN < len(files) {
		files = files[:*testN]
	}
	if len(files) == 0 {
		fmt.Println("No .s3dx files to render.")
		os.Exit(0)
	}

	fmt.Printf("s3dx board renderer → WebP\n")
	fmt.Printf("Files: %d, Workers: %d, View: %s\n", len(files), cfg.Workers, cfg.View)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(cfg, files)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(files))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.File, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// collectFiles returns explicit positional arguments when given, else
// every .s3dx file in the input directory.
func collectFiles(dir string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".s3dx") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
