package queue

import (
	"context"
	"errors"
	"sync/atomic"

	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrQueueFull 等待中的請求已達上限
var ErrQueueFull = errors.New("llm queue is full")

// Status 隊列狀態
type Status struct {
	Active        int   `json:"active"`
	Waiting       int64 `json:"waiting"`
	Processed     int64 `json:"processed"`
	Rejected      int64 `json:"rejected"`
	MaxConcurrent int   `json:"max_concurrent"`
	MaxWaiting    int   `json:"max_waiting"`
}

// Manager 限制對 LLM 的同時呼叫數；名額用盡時排隊，隊列滿則立即失敗
type Manager struct {
	slots      chan struct{}
	maxWaiting int64

	waiting   atomic.Int64
	processed atomic.Int64
	rejected  atomic.Int64
}

// NewManager 創建新的隊列管理器；Workers <= 0 時回傳 nil，代表不限制
func NewManager(cfg config.QueueConfig) *Manager {
	if cfg.Workers <= 0 {
		return nil
	}
	common.LogInfo("LLM 隊列已初始化",
		zap.Int("workers", cfg.Workers),
		zap.Int("max_size", cfg.MaxSize),
	)
	return &Manager{
		slots:      make(chan struct{}, cfg.Workers),
		maxWaiting: int64(cfg.MaxSize),
	}
}

// Do 取得名額後執行 fn
func (m *Manager) Do(ctx context.Context, fn func(context.Context) error) error {
	if m == nil {
		return fn(ctx)
	}

	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer func() {
		<-m.slots
		m.processed.Add(1)
	}()
	return fn(ctx)
}

func (m *Manager) acquire(ctx context.Context) error {
	select {
	case m.slots <- struct{}{}:
		return nil
	default:
	}

	if m.waiting.Add(1) > m.maxWaiting {
		m.waiting.Add(-1)
		m.rejected.Add(1)
		common.LogWarn("LLM 隊列已滿", zap.Int64("max_size", m.maxWaiting))
		return ErrQueueFull
	}
	defer m.waiting.Add(-1)

	select {
	case m.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() Status {
	if m == nil {
		return Status{}
	}
	return Status{
		Active:        len(m.slots),
		Waiting:       m.waiting.Load(),
		Processed:     m.processed.Load(),
		Rejected:      m.rejected.Load(),
		MaxConcurrent: cap(m.slots),
		MaxWaiting:    int(m.maxWaiting),
	}
}
