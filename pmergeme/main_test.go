package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootSortsArguments(t *testing.T) {
	out, err := executeRoot(t, "3", "5", "9", "7", "4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "Before: 3 5 9 7 4", lines[0])
	require.Equal(t, "After:  3 4 5 7 9", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "Time to process a range of 5 elements with vector : "))
	require.True(t, strings.HasSuffix(lines[2], " us"))
	require.True(t, strings.HasPrefix(lines[3], "Time to process a range of 5 elements with deque : "))
}

func TestRootLongInputPreview(t *testing.T) {
	args := strings.Fields("21 20 19 18 17 16 15 14 13 12 11 10 9 8 7 6 5 4 3 2 1")
	out, err := executeRoot(t, append([]string{"--parallel", "--window", "full"}, args...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Before: 21 20 19 18 17 [...]\n")
	require.Contains(t, out, "After:  1 2 3 4 5 [...]\n")
	require.Contains(t, out, "range of 21 elements with deque")
}

func TestRootRejectsInput(t *testing.T) {
	_, err := executeRoot(t)
	require.True(t, errors.Is(err, ErrNoInput))

	_, err = executeRoot(t, "3", "abc")
	require.True(t, errors.Is(err, ErrInvalidInput))

	_, err = executeRoot(t, "3", "-5")
	require.True(t, errors.Is(err, ErrInvalidInput))

	_, err = executeRoot(t, "0")
	require.True(t, errors.Is(err, ErrInvalidInput))
}

func TestBenchCommandWritesReports(t *testing.T) {
	dir := t.TempDir()
	metrics := filepath.Join(dir, "pmergeme.prom")

	out, err := executeRoot(t, "bench",
		"--store", "file",
		"--data-dir", filepath.Join(dir, "data"),
		"--report-dir", filepath.Join(dir, "report"),
		"--metrics-file", metrics,
		"--sizes", "21,200",
		"--runs", "2",
	)
	require.NoError(t, err)
	require.Contains(t, out, "벤치마크 완료!")

	md, err := os.ReadFile(filepath.Join(dir, "report", "benchmark_results.md"))
	require.NoError(t, err)
	require.Contains(t, string(md), "## 요약 통계")

	_, err = os.Stat(filepath.Join(dir, "report", "benchmark_results.json"))
	require.NoError(t, err)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	require.Contains(t, string(prom), `pmergeme_sorted_elements_total{container="deque",window="bounded"} 442`)
}

func TestBenchRejectsArgs(t *testing.T) {
	_, err := executeRoot(t, "bench", "extra")
	require.Error(t, err)
}

func TestFormatPreview(t *testing.T) {
	require.Equal(t, "", formatPreview(nil))
	require.Equal(t, "1", formatPreview([]int32{1}))
	require.Equal(t, "1 2 3 4 5", formatPreview([]int32{1, 2, 3, 4, 5}))
	require.Equal(t, "1 2 3 4 5 [...]", formatPreview([]int32{1, 2, 3, 4, 5, 6}))
}
