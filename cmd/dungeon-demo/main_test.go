package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestGenerateLevels_ProducesRequestedDepthRange(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	config := DemoConfig{Seed: 12345, StartDepth: 1, DepthCount: 2, Logger: logger}
	levels, err := GenerateLevels(config)
	require.NoError(t, err)
	require.Len(t, levels, 2)

	assert.Equal(t, 1, levels[0].Depth)
	assert.Equal(t, 2, levels[1].Depth)
	for _, level := range levels {
		assert.True(t, level.Published)
		assert.NotNil(t, level.Grid)
	}
}

func TestGenerateLevels_DeterministicAcrossRuns(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	config := DemoConfig{Seed: 777, StartDepth: 5, DepthCount: 1, Logger: logger}

	a, err := GenerateLevels(config)
	require.NoError(t, err)
	b, err := GenerateLevels(config)
	require.NoError(t, err)

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].Grid, b[0].Grid)
	assert.Equal(t, a[0].Rating, b[0].Rating)
}

func TestGenerateLevels_TownDepthHasNoUpStairs(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	config := DemoConfig{Seed: 1, StartDepth: 0, DepthCount: 1, Logger: logger}
	levels, err := GenerateLevels(config)
	require.NoError(t, err)
	require.Len(t, levels, 1)

	up, _ := countStairs(levels[0].Grid)
	assert.Zero(t, up)
}

func TestDisplayLevels_PrintsSeedAndPerLevelStats(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	config := DemoConfig{Seed: 42, StartDepth: 1, DepthCount: 1, Logger: logger}
	levels, err := GenerateLevels(config)
	require.NoError(t, err)

	output := captureStdout(t, func() { DisplayLevels(levels, config) })
	assert.Contains(t, output, "Seed: 42")
	assert.Contains(t, output, "Depth 1")
	assert.Contains(t, output, "player origin")
}

func TestRun_SucceedsWithDefaultConfig(t *testing.T) {
	_ = captureStdout(t, func() {
		err := run("")
		require.NoError(t, err)
	})
}

func TestRun_SucceedsWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 99\nstart_depth: 2\ndepth_count: 1\n"), 0o644))

	output := captureStdout(t, func() {
		err := run(path)
		require.NoError(t, err)
	})
	assert.Contains(t, output, "Seed: 99")
	assert.Contains(t, output, "Depth 2")
}

func TestLoadDemoConfig_MissingFileReturnsError(t *testing.T) {
	_, err := LoadDemoConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDemoConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 555\n"), 0o644))

	config, err := LoadDemoConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(555), config.Seed)
	assert.Equal(t, DefaultDemoConfig().StartDepth, config.StartDepth)
	assert.Equal(t, DefaultDemoConfig().DepthCount, config.DepthCount)
}

func TestCountStairs_CountsEachKindSeparately(t *testing.T) {
	cfg := DefaultDemoConfig()
	cfg.DepthCount = 1
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	cfg.Logger = logger

	levels, err := GenerateLevels(cfg)
	require.NoError(t, err)
	require.Len(t, levels, 1)

	up, down := countStairs(levels[0].Grid)
	assert.GreaterOrEqual(t, up, 0)
	assert.GreaterOrEqual(t, down, 0)
}
