package msgcache

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepSpec = "@every 10m"

// StartJanitor sweeps store periodically. The caller stops the returned
// scheduler on shutdown.
func StartJanitor(store *MemoryStore, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(sweepSpec, func() {
		if n := store.Sweep(); n > 0 {
			log.Debug("message cache swept", zap.Int("removed", n))
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
