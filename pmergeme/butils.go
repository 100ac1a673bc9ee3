package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/rlaau/pmergeme/kvdb"
	"github.com/rlaau/pmergeme/mergeinsert"
)

// container 벤치마크 대상 컨테이너
type container struct {
	name   string
	newSeq mergeinsert.Factory[int32]
}

var containers = []container{
	{name: "vector", newSeq: mergeinsert.VectorFactory[int32]()},
	{name: "deque", newSeq: mergeinsert.DequeFactory[int32]()},
}

// BenchmarkResult 벤치마크 결과를 저장하는 구조체
type BenchmarkResult struct {
	Container    string        `json:"container"`
	Window       string        `json:"window"`
	DataSize     int           `json:"data_size"`
	StorageType  string        `json:"storage_type"`
	TestRun      int           `json:"test_run"`
	Duration     time.Duration `json:"duration"`
	LoadTime     time.Duration `json:"load_time"`
	MemoryUsage  uint64        `json:"memory_usage_bytes"`
	Comparisons  uint64        `json:"comparisons"`
	GoroutineNum int           `json:"goroutine_num"`
	Verified     bool          `json:"verified"`
}

// benchReport 리포트 머리말에 들어갈 정보
type benchReport struct {
	Store      string
	StoreSize  int64
	Window     string
	Parallel   bool
	SaveTimes  map[int]time.Duration
	Results    []BenchmarkResult
	FinishedAt time.Time
}

// SystemStats 시스템 통계를 위한 구조체
type SystemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
	endMem    runtime.MemStats
}

// generateRandomData 시드 고정으로 재현 가능한 [1, MaxInt32] 데이터
func generateRandomData(size int, seed int64) []int32 {
	r := rand.New(rand.NewSource(seed))
	data := make([]int32, size)
	for i := range data {
		data[i] = r.Int31n(math.MaxInt32) + 1
	}
	return data
}

// startStats 측정 시작
// 병렬 모드에서는 메모리 수치에 다른 정렬의 할당이 섞인다.
func startStats(gc bool) *SystemStats {
	if gc {
		runtime.GC()
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemStats{
		startTime: time.Now(),
		startMem:  m,
	}
}

// endStats 경과 시간과 할당 바이트
func (s *SystemStats) endStats() (time.Duration, uint64) {
	duration := time.Since(s.startTime)
	runtime.ReadMemStats(&s.endMem)
	return duration, s.endMem.TotalAlloc - s.startMem.TotalAlloc
}

// runBenchmark 컨테이너 하나로 data 를 정렬하고 결과를 검증한다.
func runBenchmark(c container, data []int32, window mergeinsert.Window, gc bool) (BenchmarkResult, []int32) {
	result := BenchmarkResult{
		Container:    c.name,
		Window:       window.String(),
		DataSize:     len(data),
		GoroutineNum: runtime.NumGoroutine(),
	}

	sorter := mergeinsert.New(c.newSeq, mergeinsert.WithWindow(window))
	input := mergeinsert.FromSlice(c.newSeq, data)

	stats := startStats(gc)
	sorted := mergeinsert.Values(sorter.Sort(input))
	result.Duration, result.MemoryUsage = stats.endStats()

	result.Comparisons = sorter.Comparisons()
	result.Verified = slices.IsSorted(sorted) && kvdb.FingerprintOf(sorted) == kvdb.FingerprintOf(data)
	return result, sorted
}

// runBench 크기별로 데이터셋을 저장소에 넣고 다시 읽어 두 컨테이너로 정렬한다.
func runBench(ctx context.Context, cfg Config, out io.Writer, logger *log.Logger) (*benchReport, error) {
	fmt.Fprintln(out, "병합-삽입 정렬 컨테이너 벤치마크 시작...")
	fmt.Fprintf(out, "CPU 코어 수: %d\n", runtime.NumCPU())
	fmt.Fprintf(out, "GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Fprintf(out, "저장소: %s, 탐색 범위: %s\n\n", cfg.Store, cfg.Window)

	store, err := kvdb.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	report := &benchReport{
		Store:     string(cfg.Store),
		Window:    cfg.Window.String(),
		Parallel:  cfg.Parallel,
		SaveTimes: make(map[int]time.Duration),
	}

	for _, size := range cfg.Sizes {
		name := fmt.Sprintf("random-%d", size)
		fmt.Fprintf(out, "%s개 데이터 (%s) 테스트 중...\n", humanize.Comma(int64(size)), cfg.Store)

		start := time.Now()
		if err := store.Save(name, generateRandomData(size, cfg.Seed)); err != nil {
			return nil, err
		}
		report.SaveTimes[size] = time.Since(start)

		for run := 1; run <= cfg.Runs; run++ {
			// 매번 저장소에서 읽기
			start := time.Now()
			data, err := store.Load(name)
			if err != nil {
				return nil, err
			}
			loadTime := time.Since(start)

			results := make([]BenchmarkResult, len(containers))
			jobs := make([]func(context.Context) error, len(containers))
			for i, c := range containers {
				jobs[i] = func(context.Context) error {
					results[i], _ = runBenchmark(c, data, cfg.Window, !cfg.Parallel)
					return nil
				}
			}
			if err := runJobs(ctx, cfg.Parallel, jobs); err != nil {
				return nil, err
			}

			for _, r := range results {
				r.StorageType = string(cfg.Store)
				r.TestRun = run
				r.LoadTime = loadTime
				if !r.Verified {
					return nil, errors.Newf("%s: %s run %d produced an unsorted or altered result", name, r.Container, run)
				}
				fmt.Fprintf(out, "  %s - 테스트 %d: %v (비교 %s회)\n",
					r.Container, run, r.Duration, humanize.Comma(int64(r.Comparisons)))
				if logger != nil {
					logger.Printf("size=%d run=%d container=%s duration=%v load=%v alloc=%s",
						size, run, r.Container, r.Duration, loadTime, humanize.Bytes(r.MemoryUsage))
				}
				report.Results = append(report.Results, r)
			}
		}
	}

	if report.StoreSize, err = store.Size(); err != nil {
		return nil, err
	}
	report.FinishedAt = time.Now()
	return report, nil
}

// renderMarkdown 결과 표 + 요약 통계
func renderMarkdown(report *benchReport) string {
	var builder strings.Builder

	builder.WriteString("# 병합-삽입 정렬 컨테이너 벤치마크 결과\n\n")
	builder.WriteString(fmt.Sprintf("실행 시간: %s\n", report.FinishedAt.Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("CPU 코어 수: %d\n", runtime.NumCPU()))
	builder.WriteString(fmt.Sprintf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0)))
	builder.WriteString(fmt.Sprintf("저장소: %s (%s)\n", report.Store, humanize.Bytes(uint64(report.StoreSize))))
	builder.WriteString(fmt.Sprintf("탐색 범위: %s, 병렬: %t\n\n", report.Window, report.Parallel))

	bySize := lo.GroupBy(report.Results, func(r BenchmarkResult) int { return r.DataSize })
	sizes := lo.Keys(bySize)
	slices.Sort(sizes)

	for _, size := range sizes {
		builder.WriteString(fmt.Sprintf("## %s개 데이터 (저장 %v)\n\n",
			humanize.Comma(int64(size)), report.SaveTimes[size]))

		builder.WriteString("| 컨테이너 | 테스트 | 실행시간 | 읽기시간 | 메모리사용량 | 비교횟수 | 고루틴수 |\n")
		builder.WriteString("|----------|--------|----------|----------|--------------|----------|----------|\n")

		for _, r := range bySize[size] {
			builder.WriteString(fmt.Sprintf("| %s | %d | %v | %v | %s | %s | %d |\n",
				r.Container, r.TestRun, r.Duration, r.LoadTime, humanize.Bytes(r.MemoryUsage),
				humanize.Comma(int64(r.Comparisons)), r.GoroutineNum))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## 요약 통계\n\n")
	builder.WriteString("| 데이터 | 컨테이너 | 평균 실행시간 | 평균 메모리사용량 | 평균 비교횟수 |\n")
	builder.WriteString("|--------|----------|---------------|-------------------|---------------|\n")

	for _, size := range sizes {
		for _, c := range containers {
			runs := lo.Filter(bySize[size], func(r BenchmarkResult, _ int) bool { return r.Container == c.name })
			if len(runs) == 0 {
				continue
			}

			n := len(runs)
			avgDuration := lo.SumBy(runs, func(r BenchmarkResult) time.Duration { return r.Duration }) / time.Duration(n)
			avgMemory := lo.SumBy(runs, func(r BenchmarkResult) uint64 { return r.MemoryUsage }) / uint64(n)
			avgComparisons := lo.SumBy(runs, func(r BenchmarkResult) uint64 { return r.Comparisons }) / uint64(n)

			builder.WriteString(fmt.Sprintf("| %s | %s | %v | %s | %s |\n",
				humanize.Comma(int64(size)), c.name, avgDuration, humanize.Bytes(avgMemory),
				humanize.Comma(int64(avgComparisons))))
		}
	}
	builder.WriteString("\n")

	return builder.String()
}

// saveResultsToMarkdown benchmark_results.md
func saveResultsToMarkdown(dir string, report *benchReport) error {
	path := filepath.Join(dir, "benchmark_results.md")
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "report: create %s", path)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)
	if _, err := writer.WriteString(renderMarkdown(report)); err != nil {
		return errors.Wrapf(err, "report: write %s", path)
	}
	return errors.Wrapf(writer.Flush(), "report: write %s", path)
}

// saveResultsToJSON benchmark_results.json
func saveResultsToJSON(dir string, results []BenchmarkResult) error {
	path := filepath.Join(dir, "benchmark_results.json")
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "report: create %s", path)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return errors.Wrapf(err, "report: encode %s", path)
	}
	return errors.Wrapf(writer.Flush(), "report: write %s", path)
}
