package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"code-analyzer/pkg/logger"
)

// ErrPoolClosed 提交到已关闭的池
var ErrPoolClosed = errors.New("task pool is closed")

// Task 是一次解析任务，taskID 由池按提交顺序分配，从 1 开始
type Task func(ctx context.Context, taskID uint64) error

// Stats 汇总池的执行情况
type Stats struct {
	Submitted uint64
	Succeeded uint64
	Failed    uint64
	Cancelled uint64
}

type job struct {
	ctx  context.Context
	id   uint64
	task Task
}

// TaskPool 固定数量 worker 的任务池。任务的 panic 会被转为错误，不影响其它任务。
type TaskPool struct {
	logger         logger.Logger
	maxConcurrency int
	jobs           chan job
	wg             sync.WaitGroup
	mu             sync.Mutex
	closed         bool

	nextID    atomic.Uint64
	succeeded atomic.Uint64
	failed    atomic.Uint64
	cancelled atomic.Uint64

	errMu sync.Mutex
	errs  []error
}

// NewTaskPool 创建并启动任务池，maxConcurrency <= 0 时按 1 处理
func NewTaskPool(maxConcurrency int, logger logger.Logger) *TaskPool {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	p := &TaskPool{
		logger:         logger,
		maxConcurrency: maxConcurrency,
		jobs:           make(chan job, maxConcurrency*2),
	}
	for i := 0; i < maxConcurrency; i++ {
		go p.work(i)
	}
	return p
}

func (p *TaskPool) work(workerID int) {
	p.logger.Debug("resolve worker %d started", workerID)
	for j := range p.jobs {
		p.run(workerID, j)
		p.wg.Done()
	}
	p.logger.Debug("resolve worker %d exited", workerID)
}

func (p *TaskPool) run(workerID int, j job) {
	// 排队期间已取消的任务不再执行
	if err := j.ctx.Err(); err != nil {
		p.cancelled.Add(1)
		p.logger.Info("task %d cancelled before execution: %v", j.id, err)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			p.failed.Add(1)
			p.record(fmt.Errorf("task %d panicked: %v", j.id, r))
			p.logger.Error("worker %d task %d panicked: %v", workerID, j.id, r)
		}
	}()

	p.logger.Debug("worker %d starting task %d", workerID, j.id)
	if err := j.task(j.ctx, j.id); err != nil {
		p.failed.Add(1)
		p.record(fmt.Errorf("task %d: %w", j.id, err))
		return
	}
	p.succeeded.Add(1)
}

func (p *TaskPool) record(err error) {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	p.errs = append(p.errs, err)
}

// Submit 提交任务并返回其 ID。队列满时阻塞，直到有空位或 ctx 结束。
func (p *TaskPool) Submit(ctx context.Context, task Task) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrPoolClosed
	}

	id := p.nextID.Add(1)
	p.wg.Add(1)
	select {
	case p.jobs <- job{ctx: ctx, id: id, task: task}:
		return id, nil
	case <-ctx.Done():
		p.wg.Done()
		p.cancelled.Add(1)
		return id, ctx.Err()
	}
}

// Wait 等待已提交的任务全部结束，返回这一批任务的错误（errors.Join）并清空
func (p *TaskPool) Wait() error {
	p.wg.Wait()
	p.errMu.Lock()
	defer p.errMu.Unlock()
	err := errors.Join(p.errs...)
	p.errs = nil
	return err
}

func (p *TaskPool) Stats() Stats {
	return Stats{
		Submitted: p.nextID.Load(),
		Succeeded: p.succeeded.Load(),
		Failed:    p.failed.Load(),
		Cancelled: p.cancelled.Load(),
	}
}

// Close 停止接收任务，已入队的任务仍会执行完
func (p *TaskPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	close(p.jobs)
	p.closed = true
	s := p.Stats()
	p.logger.Info("task pool closed, submitted %d, succeeded %d, failed %d, cancelled %d",
		s.Submitted, s.Succeeded, s.Failed, s.Cancelled)
}
