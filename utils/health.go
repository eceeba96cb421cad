package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services. It is a
// plain measurement: nothing overrides a failing check to report healthy.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	LLM       bool      `json:"llm"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Pinger is anything with a liveness probe (the LLM fallback chain).
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client, llm Pinger) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			var redisHealth []bool

			for _, client := range redisClients {
				err := client.Ping(ctx).Err()
				redisHealth = append(redisHealth, err == nil)
			}

			mongoHealthy := mongoClient.Ping(ctx, nil) == nil

			llmHealthy := false
			if llm != nil {
				pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				llmHealthy = llm.Ping(pingCtx) == nil
				cancel()
			}

			mu.Lock()
			currentHealth = HealthStatus{
				Mongo:     mongoHealthy,
				Redis:     redisHealth,
				LLM:       llmHealthy,
				CheckedAt: time.Now(),
			}
			mu.Unlock()
		}
	}()
}
