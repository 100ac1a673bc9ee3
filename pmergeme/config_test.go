package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rlaau/pmergeme/kvdb"
	"github.com/rlaau/pmergeme/mergeinsert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newViper())
	require.NoError(t, err)

	require.Equal(t, kvdb.KindMemory, cfg.Store)
	require.Equal(t, []int{1000, 3000, 10000}, cfg.Sizes)
	require.Equal(t, 3, cfg.Runs)
	require.EqualValues(t, 42, cfg.Seed)
	require.Equal(t, mergeinsert.WindowBounded, cfg.Window)
	require.False(t, cfg.Parallel)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PMERGEME_STORE", "pebble")
	t.Setenv("PMERGEME_SIZES", "21, 500")
	t.Setenv("PMERGEME_RUNS", "5")
	t.Setenv("PMERGEME_WINDOW", "full")
	t.Setenv("PMERGEME_DATA_DIR", "/tmp/pmergeme")
	t.Setenv("PMERGEME_PARALLEL", "true")

	cfg, err := loadConfig(newViper())
	require.NoError(t, err)

	require.Equal(t, kvdb.KindPebble, cfg.Store)
	require.Equal(t, []int{21, 500}, cfg.Sizes)
	require.Equal(t, 5, cfg.Runs)
	require.Equal(t, mergeinsert.WindowFull, cfg.Window)
	require.Equal(t, "/tmp/pmergeme", cfg.DataDir)
	require.True(t, cfg.Parallel)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := map[string]string{
		"PMERGEME_STORE":  "redis",
		"PMERGEME_WINDOW": "narrow",
		"PMERGEME_SIZES":  "10,x",
		"PMERGEME_RUNS":   "0",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := loadConfig(newViper())
			require.Error(t, err)
		})
	}
}

func TestParseSizesSkipsBlanks(t *testing.T) {
	sizes, err := parseSizes("1, ,2,")
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, sizes)

	_, err = parseSizes(" , ")
	require.Error(t, err)
}
