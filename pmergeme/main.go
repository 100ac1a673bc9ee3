package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rlaau/pmergeme/mergeinsert"
)

const previewLimit = 5

func main() {
	log.SetPrefix("[pmergeme] ")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf(".env 로드 실패: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		switch {
		case errors.Is(err, ErrNoInput):
			fmt.Fprintln(os.Stderr, "Error: no input provided")
		case errors.Is(err, ErrInvalidInput):
			fmt.Fprintln(os.Stderr, "Error")
		default:
			log.Printf("%v", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := newViper()

	root := &cobra.Command{
		Use:           "pmergeme <positive integer>...",
		Short:         "Ford-Johnson merge-insert sort over a vector and a deque",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			values, err := ParseValues(args)
			if err != nil {
				return err
			}
			return runSort(cmd.Context(), cmd.OutOrStdout(), values, cfg)
		},
	}
	// "-5" 같은 음수는 플래그로 읽히므로 입력 오류로 본다.
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if c.HasParent() {
			return err
		}
		return errors.Wrap(ErrInvalidInput, err.Error())
	})

	pf := root.PersistentFlags()
	pf.String("window", defaults["window"].(string), "binary search window: bounded or full")
	pf.Bool("parallel", false, "sort the vector and the deque concurrently")
	pf.BoolP("verbose", "v", false, "log every run")
	lo.Must0(v.BindPFlags(pf))

	root.AddCommand(newBenchCmd(v))
	return root
}

func newBenchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark both containers on datasets loaded from a store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			var logger *log.Logger
			if cfg.Verbose {
				logger = log.New(cmd.ErrOrStderr(), "[pmergeme] ", log.LstdFlags)
			}
			return bench(cmd.Context(), cmd.OutOrStdout(), cfg, logger)
		},
	}

	f := cmd.Flags()
	f.String("store", defaults["store"].(string), "dataset store: memory, file, bbolt, badger, pebble")
	f.String("data-dir", defaults["data-dir"].(string), "directory for on-disk stores")
	f.String("sizes", defaults["sizes"].(string), "comma separated dataset sizes")
	f.Int("runs", defaults["runs"].(int), "runs per dataset size")
	f.Int64("seed", int64(defaults["seed"].(int)), "random data seed")
	f.String("report-dir", defaults["report-dir"].(string), "directory for benchmark_results.{md,json}")
	f.String("metrics-file", "", "write Prometheus metrics in textfile format")
	lo.Must0(v.BindPFlags(f))

	return cmd
}

func bench(ctx context.Context, out io.Writer, cfg Config, logger *log.Logger) error {
	report, err := runBench(ctx, cfg, out, logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "결과 저장 중...")
	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		return errors.Wrapf(err, "report: create %s", cfg.ReportDir)
	}
	if err := saveResultsToMarkdown(cfg.ReportDir, report); err != nil {
		return err
	}
	if err := saveResultsToJSON(cfg.ReportDir, report.Results); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		m := newSortMetrics()
		for _, r := range report.Results {
			m.observe(r)
		}
		m.setStoreSize(report.Store, report.StoreSize)
		if err := m.writeTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "벤치마크 완료!")
	return nil
}

// runSort 원래 프로그램 출력: 정렬 전/후 미리보기와 컨테이너별 처리 시간
func runSort(ctx context.Context, out io.Writer, values []int32, cfg Config) error {
	fmt.Fprintf(out, "Before: %s\n", formatPreview(values))

	type timed struct {
		sorted  []int32
		elapsed time.Duration
	}
	results := make([]timed, len(containers))
	jobs := make([]func(context.Context) error, len(containers))
	for i, c := range containers {
		jobs[i] = func(context.Context) error {
			sorter := mergeinsert.New(c.newSeq, mergeinsert.WithWindow(cfg.Window))
			input := mergeinsert.FromSlice(c.newSeq, values)

			start := time.Now()
			sorted := sorter.Sort(input)
			results[i] = timed{sorted: mergeinsert.Values(sorted), elapsed: time.Since(start)}

			if cfg.Verbose {
				log.Printf("%s: %d comparisons", c.name, sorter.Comparisons())
			}
			return nil
		}
	}
	if err := runJobs(ctx, cfg.Parallel, jobs); err != nil {
		return err
	}

	fmt.Fprintf(out, "After:  %s\n", formatPreview(results[0].sorted))
	for i, c := range containers {
		fmt.Fprintf(out, "Time to process a range of %d elements with %s : %.5f us\n",
			len(values), c.name, float64(results[i].elapsed.Nanoseconds())/1e3)
	}
	return nil
}

// formatPreview 앞 5개만, 더 있으면 "[...]"
func formatPreview(values []int32) string {
	shown := lo.Map(values[:min(len(values), previewLimit)], func(v int32, _ int) string {
		return strconv.Itoa(int(v))
	})
	if len(values) > previewLimit {
		shown = append(shown, "[...]")
	}
	return strings.Join(shown, " ")
}
