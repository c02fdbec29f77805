package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"tomorings/internal/models"
	"tomorings/pkg/config"
	"tomorings/pkg/huber"
	"tomorings/pkg/quality"
	"tomorings/pkg/ringweights"
	"tomorings/pkg/volio"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "", "Optional YAML configuration file")
	inputPath := flag.String("input", "", "Raw float32 residual volume (little-endian)")
	outputPath := flag.String("output", "weights.raw", "Output weights filename")
	angles := flag.Int("angles", 0, "Number of projection angles")
	detectors := flag.Int("detectors", 0, "Number of detector elements")
	slices := flag.Int("slices", 1, "Number of sinograms in the stack (1 for 2D)")
	winDetectors := flag.Int("win-detectors", -1, "Median half-window across detectors (approximate ring thickness)")
	winAngles := flag.Int("win-angles", -1, "Median half-window across angles")
	winSlices := flag.Int("win-slices", -1, "Median half-window across slices (3D only)")
	numCores := flag.Int("cores", 0, "Number of CPU cores to use (default: all available)")
	huberThreshold := flag.Float64("huber", 0, "Huber threshold; when > 0, multipliers are written next to the weights")
	multipliersPath := flag.String("multipliers", "multipliers.raw", "Output filename for Huber multipliers")
	flag.Parse()

	// Load configuration, then let explicit flags override it
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *angles != 0 {
		cfg.Geometry.Angles = *angles
	}
	if *detectors != 0 {
		cfg.Geometry.Detectors = *detectors
	}
	if *slices != 1 || cfg.Geometry.Slices == 0 {
		cfg.Geometry.Slices = *slices
	}
	if *winDetectors >= 0 {
		cfg.Window.Detectors = *winDetectors
	}
	if *winAngles >= 0 {
		cfg.Window.Angles = *winAngles
	}
	if *winSlices >= 0 {
		cfg.Window.Slices = *winSlices
	}
	if *numCores > 0 {
		cfg.Processing.NumCores = *numCores
	}
	if cfg.Processing.NumCores <= 0 {
		cfg.Processing.NumCores = runtime.NumCPU()
	}
	if *huberThreshold > 0 {
		cfg.Processing.HuberThreshold = *huberThreshold
		cfg.Output.SaveMultipliers = true
	}

	// Validate inputs
	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	geom := models.Geometry{
		Angles:    cfg.Geometry.Angles,
		Detectors: cfg.Geometry.Detectors,
		Slices:    cfg.Geometry.Slices,
	}
	win := models.HalfSizes{
		Detectors: cfg.Window.Detectors,
		Angles:    cfg.Window.Angles,
		Slices:    cfg.Window.Slices,
	}

	if cfg.Output.Verbose {
		fmt.Println("================================")
		fmt.Println("RING ARTIFACT WEIGHTS ESTIMATION")
		fmt.Println("================================")
		fmt.Printf("Geometry: %d angles x %d detectors x %d slices\n", geom.Angles, geom.Detectors, geom.Slices)
		fmt.Printf("Window half-sizes: detectors=%d angles=%d slices=%d\n", win.Detectors, win.Angles, win.Slices)
		fmt.Printf("Using %d cores\n", cfg.Processing.NumCores)
	}

	residual, err := volio.ReadVolume(*inputPath, geom)
	if err != nil {
		log.Fatalf("Failed to read residual volume: %v", err)
	}

	startTime := time.Now()
	weights, err := ringweights.Compute(residual, geom, win, cfg.Processing.NumCores)
	if err != nil {
		log.Fatalf("Weights estimation failed: %v", err)
	}
	processingTime := time.Since(startTime)

	if err := volio.WriteVolume(*outputPath, weights); err != nil {
		log.Fatalf("Failed to write weights volume: %v", err)
	}

	if cfg.Output.Verbose {
		fmt.Printf("\nWeights computed in %.3f seconds\n", processingTime.Seconds())
		fmt.Printf("Weights saved to: %s\n\n", *outputPath)

		resStats := quality.Summarize(residual)
		wStats := quality.Summarize(weights)
		fmt.Println("Summary statistics:")
		fmt.Println("===================")
		fmt.Printf("Residual: mean=%.6f stddev=%.6f min=%.6f max=%.6f\n",
			resStats.Mean, resStats.StdDev, resStats.Min, resStats.Max)
		fmt.Printf("Weights:  mean=%.6f stddev=%.6f min=%.6f max=%.6f\n",
			wStats.Mean, wStats.StdDev, wStats.Min, wStats.Max)

		if corr, err := quality.Correlation(residual, weights); err == nil {
			fmt.Printf("Residual/weights correlation: %.3f\n", corr)
		}
	}

	// Optionally derive Huber data-fidelity multipliers from the weighted residual
	if cfg.Output.SaveMultipliers && cfg.Processing.HuberThreshold > 0 {
		mult, err := huber.Multipliers(residual, weights, float32(cfg.Processing.HuberThreshold))
		if err != nil {
			log.Fatalf("Huber multipliers failed: %v", err)
		}
		if err := volio.WriteVolume(*multipliersPath, mult); err != nil {
			log.Fatalf("Failed to write multipliers volume: %v", err)
		}
		if cfg.Output.Verbose {
			fmt.Printf("\nHuber multipliers (threshold %.2f) saved to: %s\n",
				cfg.Processing.HuberThreshold, *multipliersPath)
		}
	}
}
