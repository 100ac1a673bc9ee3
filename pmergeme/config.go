package main

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/rlaau/pmergeme/kvdb"
	"github.com/rlaau/pmergeme/mergeinsert"
)

const envPrefix = "PMERGEME"

// Config 플래그 > 환경변수(PMERGEME_*) > .env > 기본값
type Config struct {
	Store       kvdb.Kind
	DataDir     string
	Sizes       []int
	Runs        int
	Seed        int64
	Window      mergeinsert.Window
	Parallel    bool
	ReportDir   string
	MetricsFile string
	Verbose     bool
}

var defaults = map[string]any{
	"store":        string(kvdb.KindMemory),
	"data-dir":     "bench_data",
	"sizes":        "1000,3000,10000",
	"runs":         3,
	"seed":         42,
	"window":       mergeinsert.WindowBounded.String(),
	"parallel":     false,
	"report-dir":   ".",
	"metrics-file": "",
	"verbose":      false,
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

func loadConfig(v *viper.Viper) (Config, error) {
	kind, err := kvdb.ParseKind(v.GetString("store"))
	if err != nil {
		return Config{}, err
	}
	window, err := parseWindow(v.GetString("window"))
	if err != nil {
		return Config{}, err
	}
	sizes, err := parseSizes(v.GetString("sizes"))
	if err != nil {
		return Config{}, err
	}
	runs := v.GetInt("runs")
	if runs < 1 {
		return Config{}, errors.Newf("runs must be at least 1, got %d", runs)
	}

	return Config{
		Store:       kind,
		DataDir:     v.GetString("data-dir"),
		Sizes:       sizes,
		Runs:        runs,
		Seed:        v.GetInt64("seed"),
		Window:      window,
		Parallel:    v.GetBool("parallel"),
		ReportDir:   v.GetString("report-dir"),
		MetricsFile: v.GetString("metrics-file"),
		Verbose:     v.GetBool("verbose"),
	}, nil
}

func parseWindow(s string) (mergeinsert.Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bounded":
		return mergeinsert.WindowBounded, nil
	case "full":
		return mergeinsert.WindowFull, nil
	default:
		return 0, errors.Newf("unknown window %q (want bounded or full)", s)
	}
}

// parseSizes "1000,3000,10000"
func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, errors.Newf("invalid size %q", part)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.New("no benchmark sizes")
	}
	return sizes, nil
}
