// Package batch runs the decode→synthesize→render pipeline over many
// design files with a worker pool.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"github.com/jfpardy/s3dx-viewer/internal/config"
	"github.com/jfpardy/s3dx-viewer/internal/mathutil"
	"github.com/jfpardy/s3dx-viewer/internal/mesh"
	"github.com/jfpardy/s3dx-viewer/internal/model"
	"github.com/jfpardy/s3dx-viewer/internal/postprocess"
	"github.com/jfpardy/s3dx-viewer/internal/raster"
	"github.com/jfpardy/s3dx-viewer/internal/s3dx"
)

// Result holds the outcome of processing one design file.
type Result struct {
	File    string `json:"file"`
	Board   string `json:"board,omitempty"`
	Output  string `json:"output,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Run processes all files using a worker pool and reports progress
// every two seconds.
func Run(cfg config.Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f boards/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg config.Config, path string) Result {
	res := Result{File: path}

	doc, err := os.ReadFile(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	design, err := s3dx.Decode(doc)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Board = design.Board.Name

	buf, err := mesh.BuildWithOptions(design, mesh.Options{
		LengthSteps: cfg.LengthSteps,
		GirthSteps:  cfg.GirthSteps,
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}

	img := raster.RenderMesh(buf, design, viewMatrix(cfg, design), cfg.RenderSize, cfg.Supersample)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(cfg.OutputDir, base+".webp")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("webp encode: %v", err)
		return res
	}

	res.Output = outPath
	res.Success = true
	return res
}

// viewMatrix resolves the configured view name, deferring to the
// document's own scene record for "scene".
func viewMatrix(cfg config.Config, design *model.Design) mathutil.Mat3 {
	switch cfg.View {
	case "top":
		return mathutil.TopView
	case "side":
		return mathutil.SideView
	case "persp":
		return mathutil.PerspView
	default:
		return mathutil.ViewForMode(design.Scene.View.Mode)
	}
}
