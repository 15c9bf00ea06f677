package reports

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const pruneTimeout = 5 * time.Minute

// Schedule runs the pruner on a cron spec with a seconds field, e.g.
// "0 0 0 * * *" for nightly at midnight. Stop the returned cron on shutdown.
func Schedule(p *Pruner, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		defer cancel()

		n, err := p.Prune(ctx)
		if err != nil {
			zap.L().Error("report prune failed", zap.Error(err), zap.Int("removed", n))
			return
		}
		zap.L().Info("report prune completed", zap.Int("removed", n))
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	zap.L().Info("report retention scheduler started", zap.String("schedule", spec))
	return c, nil
}
