package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"dungeoncore/pkg/dungeon"
	"dungeoncore/pkg/dungeon/director"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// timeNow is the function used to get the current time.
// It defaults to time.Now but can be overridden in tests for reproducibility.
var timeNow = time.Now

// timeSince returns the duration since the given time.
// It defaults to time.Since but can be overridden in tests for reproducibility.
var timeSince = time.Since

// DemoConfig holds configuration for dungeon demo generation.
type DemoConfig struct {
	// Seed for reproducible random generation.
	Seed int64 `yaml:"seed"`
	// StartDepth is the first depth generated.
	StartDepth int `yaml:"start_depth"`
	// DepthCount is how many consecutive depths to generate.
	DepthCount int `yaml:"depth_count"`
	// Logger for structured logging output. If nil, a default logger is created.
	Logger *logrus.Logger `yaml:"-"`
}

// LoadDemoConfig reads a DemoConfig from a YAML file, starting from
// DefaultDemoConfig so a partial file only overrides the fields it sets.
func LoadDemoConfig(path string) (DemoConfig, error) {
	config := DefaultDemoConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return config, nil
}

// DefaultDemoConfig returns a DemoConfig with sensible defaults.
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		Seed:       12345,
		StartDepth: 1,
		DepthCount: 3,
	}
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file overriding the demo defaults")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the dungeon demo and returns any errors encountered. An empty
// configPath runs with DefaultDemoConfig; otherwise the named YAML file is
// loaded via LoadDemoConfig.
func run(configPath string) error {
	fmt.Println("dungeoncore - Level Director Demo")
	fmt.Println(strings.Repeat("=", 55))

	config := DefaultDemoConfig()
	if configPath != "" {
		loaded, err := LoadDemoConfig(configPath)
		if err != nil {
			return err
		}
		config = loaded
	}

	levels, err := GenerateLevels(config)
	if err != nil {
		return err
	}

	DisplayLevels(levels, config)
	return nil
}

// GenerateLevels builds director.Director and produces DepthCount
// consecutive levels starting at StartDepth. It returns the generated
// levels and any error encountered. Exported for reuse by other packages.
func GenerateLevels(config DemoConfig) ([]*director.Level, error) {
	logger := config.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.InfoLevel)
	}

	d, err := director.NewDirector(nil, nil, nil, nil, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("building director: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"seed":        config.Seed,
		"start_depth": config.StartDepth,
		"depth_count": config.DepthCount,
	}).Info("starting level generation")

	start := timeNow()
	var levels []*director.Level
	for depth := config.StartDepth; depth < config.StartDepth+config.DepthCount; depth++ {
		level, err := d.GenerateCave(dungeon.GenerationParams{
			Seed:  config.Seed,
			Depth: depth,
		})
		if err != nil {
			logger.WithFields(logrus.Fields{"depth": depth, "error": err.Error()}).Error("level generation failed")
			return nil, fmt.Errorf("generating depth %d: %w", depth, err)
		}
		levels = append(levels, level)
	}
	duration := timeSince(start)

	logger.WithFields(logrus.Fields{
		"levels":   len(levels),
		"duration": duration,
	}).Info("level generation completed")

	return levels, nil
}

// DisplayLevels prints the generated levels to stdout. Exported for reuse
// by other packages.
func DisplayLevels(levels []*director.Level, config DemoConfig) {
	fmt.Printf("Seed: %d\n", config.Seed)
	fmt.Println()

	for _, level := range levels {
		upCount, downCount := countStairs(level.Grid)
		fmt.Printf("Depth %d: %dx%d, rating %d, destroyed=%t, guards=%d, up-stairs=%d, down-stairs=%d\n",
			level.Depth, level.Grid.Width, level.Grid.Height, level.Rating, level.Destroyed,
			len(level.GuardRecords), upCount, downCount)
		fmt.Printf("  player origin: (%d,%d)\n", level.PlayerOriginX, level.PlayerOriginY)
	}

	fmt.Println()
	fmt.Printf("Demo completed. Seed %d reproduces these levels exactly.\n", config.Seed)
}

func countStairs(grid *dungeon.Grid) (up, down int) {
	grid.Each(func(x, y int, c dungeon.Cell) {
		switch c.Feature {
		case dungeon.FeatureStairsUp:
			up++
		case dungeon.FeatureStairsDown:
			down++
		}
	})
	return up, down
}
