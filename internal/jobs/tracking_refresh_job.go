package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// trackingRefreshSchedule runs the refresh every five minutes. Carrier
// tracking states move on the scale of hours; polling harder only burns API
// quota.
const trackingRefreshSchedule = "0 */5 * * * *"

// TrackingRefreshJob manages the scheduled refresh of in-flight order
// statuses from carrier tracking states.
type TrackingRefreshJob struct {
	handler commands.RefreshTrackingCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTrackingRefreshJob creates a new job for refreshing tracking statuses.
func NewTrackingRefreshJob(handler commands.RefreshTrackingCommandHandler, logger *slog.Logger) *TrackingRefreshJob {
	return &TrackingRefreshJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "tracking_refresh_job"),
	}
}

// Start begins the tracking refresh job on its five minute schedule.
func (j *TrackingRefreshJob) Start() error {
	_, err := j.cron.AddFunc(trackingRefreshSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewRefreshTrackingCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Tracking refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking refresh job started (running every five minutes)")
	return nil
}

// Stop stops the tracking refresh job.
func (j *TrackingRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking refresh job stopped")
}
