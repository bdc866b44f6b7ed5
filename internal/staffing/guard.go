package staffing

import (
	"context"
	"strconv"
	"sync"
)

// Guard 保证同一实体同时最多只有一个写操作在进行，只是客户端层面的礼貌锁，
// 真正的串行化由持久化层负责
type Guard interface {
	TryAcquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

type MemoryGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		inFlight: make(map[string]struct{}),
	}
}

func (g *MemoryGuard) TryAcquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[key]; busy {
		return false, nil
	}
	g.inFlight[key] = struct{}{}
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inFlight, key)
}

func ShiftKey(id int64) string {
	return "shift:" + strconv.FormatInt(id, 10)
}

func ApplicationKey(id int64) string {
	return "application:" + strconv.FormatInt(id, 10)
}

func TimesheetKey(id int64) string {
	return "timesheet:" + strconv.FormatInt(id, 10)
}
