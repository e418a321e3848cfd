package cron

import (
	"context"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartIntegrityCronJobs schedules the nightly observation integrity scan.
func StartIntegrityCronJobs(scanner *jobs.IntegrityScanner) {
	c := cron.New()

	// Nightly, after the day's entries have settled
	c.AddFunc("0 3 * * *", func() {
		if err := scanner.RunDailyScan(context.Background()); err != nil {
			logrus.WithError(err).Error("Observation integrity scan failed")
		}
	})

	c.Start()
}
