package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"webcraft/utils"
)

const healthSpec = "@every 60s"

// StartHealthMonitor checks the dependencies once right away and then on a
// schedule, logging every transition. Stop the returned scheduler on exit.
func StartHealthMonitor(monitor *utils.HealthMonitor, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	last := monitor.Check(context.Background())
	if !last.Redis {
		logger.Warn("Redis unreachable at startup")
	}

	_, err := c.AddFunc(healthSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status := monitor.Check(ctx)
		if status.Redis != last.Redis {
			if status.Redis {
				logger.Info("Redis connection restored")
			} else {
				logger.Warn("Redis connection lost")
			}
		}
		last = status
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
