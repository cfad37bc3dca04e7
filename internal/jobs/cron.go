package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronManager owns the scheduled maintenance jobs.
type CronManager struct {
	cron   *cron.Cron
	scorer *Scorer
	logger *log.Logger
}

func NewCronManager(scorer *Scorer) *CronManager {
	return &CronManager{
		cron:   cron.New(),
		scorer: scorer,
		logger: log.Default(),
	}
}

// Setup registers the jobs. scoringSpec is a standard cron expression,
// e.g. "0 3 * * *" for nightly at 3 AM.
func (cm *CronManager) Setup(scoringSpec string) error {
	_, err := cm.cron.AddFunc(scoringSpec, func() {
		cm.logger.Println("Running lead scoring refresh...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := cm.scorer.RefreshScores(ctx); err != nil {
			cm.logger.Printf("lead scoring refresh failed: %v", err)
		}
	})
	return err
}

func (cm *CronManager) Start() {
	cm.cron.Start()
}

func (cm *CronManager) Stop() {
	cm.cron.Stop()
}
