package async

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// ErrClosed 处理器已进入退出流程
var ErrClosed = errors.New("processor is shutting down")

// Task 应答后执行的后台任务
type Task struct {
	ID  string
	Ctx context.Context // 已与请求解绑，只携带日志字段
	Run func(ctx context.Context)
}

// Processor 后台任务处理器
// 固定数量的协程消费缓冲队列；队列满时单独起协程，保证已应答的投递一定被处理
type Processor struct {
	threads    int
	timeout    time.Duration
	inputCh    chan *Task
	shutdownCh chan struct{}
	closing    *atomic.Bool
	inflight   *atomic.Int64
	mu         sync.RWMutex
	wg         sync.WaitGroup
	logger     logger.Logger
}

// NewProcessor 创建处理器
func NewProcessor(cfg config.ProcessorConfig, log logger.Logger) *Processor {
	threads := cfg.Threads
	if threads <= 0 {
		threads = 1
	}
	buffer := cfg.BufferSize
	if buffer < 0 {
		buffer = 0
	}
	return &Processor{
		threads:    threads,
		timeout:    cfg.TaskTimeout,
		inputCh:    make(chan *Task, buffer),
		shutdownCh: make(chan struct{}),
		closing:    atomic.NewBool(false),
		inflight:   atomic.NewInt64(0),
		logger:     log,
	}
}

// Start 启动处理协程
func (p *Processor) Start() {
	p.logger.Infof(context.Background(), "[Processor] Starting with %d workers", p.threads)
	for i := 0; i < p.threads; i++ {
		p.wg.Add(1)
		go p.loop(i)
	}
}

// Submit 提交任务，退出流程开始后返回 ErrClosed
func (p *Processor) Submit(task *Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closing.Load() {
		return ErrClosed
	}

	select {
	case p.inputCh <- task:
	default:
		p.logger.Warnf(task.Ctx, "[Processor] queue full, running task %s inline", task.ID)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.process(task, -1)
		}()
	}
	return nil
}

// Inflight 正在执行的任务数
func (p *Processor) Inflight() int64 {
	return p.inflight.Load()
}

// Shutdown 停止接收新任务，处理完队列中的剩余任务后返回
func (p *Processor) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closing.CAS(false, true) {
		p.mu.Unlock()
		return nil
	}
	close(p.shutdownCh)
	p.mu.Unlock()

	p.logger.Infof(ctx, "[Processor] Shutdown signal received, draining")

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Infof(ctx, "[Processor] All workers exited")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("processor drain interrupted with %d tasks in flight: %w", p.inflight.Load(), ctx.Err())
	}
}

func (p *Processor) loop(workerID int) {
	defer p.wg.Done()

	for {
		select {
		case task := <-p.inputCh:
			p.process(task, workerID)

		case <-p.shutdownCh:
			count := 0
			for {
				select {
				case task := <-p.inputCh:
					p.process(task, workerID)
					count++
				default:
					p.logger.Infof(context.Background(), "[Processor-%d] Drained %d tasks, exiting", workerID, count)
					return
				}
			}
		}
	}
}

func (p *Processor) process(task *Task, workerID int) {
	if task == nil || task.Run == nil {
		return
	}

	ctx := task.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.inflight.Inc()
	defer p.inflight.Dec()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf(ctx, "[Processor-%d] task %s panicked: %v\n%s", workerID, task.ID, r, debug.Stack())
		}
	}()

	task.Run(ctx)
	p.logger.Debugf(ctx, "[Processor-%d] task %s done in %v", workerID, task.ID, time.Since(start))
}
