package main

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// runJobs jobs 를 실행한다. parallel 이면 CPU 수만큼 동시에 돌린다.
// 각 job 은 자기 결과 칸에만 쓰므로 공유 상태가 없다.
func runJobs(ctx context.Context, parallel bool, jobs []func(context.Context) error) error {
	if !parallel {
		for _, job := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := job(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, job := range jobs {
		g.Go(func() error { return job(ctx) })
	}
	return g.Wait()
}
