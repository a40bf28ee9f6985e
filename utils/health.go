package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthMonitor keeps the latest health snapshot.
type HealthMonitor struct {
	redis *redis.Client

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(client *redis.Client) *HealthMonitor {
	return &HealthMonitor{redis: client}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check pings the dependencies once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	pingCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now().UTC()}
	if m.redis != nil {
		status.Redis = m.redis.Ping(pingCtx).Err() == nil
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}
