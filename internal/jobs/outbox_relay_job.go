package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const outboxRelaySchedule = "* * * * * *"

type outboxRelayer interface {
	Handle(ctx context.Context, command commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes recorded order.changed messages to the broker every second.
// A tick drains full batches until the outbox has no more pending messages.
type OutboxRelayJob struct {
	handler   outboxRelayer
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates a new job relaying up to batchSize messages per round.
func NewOutboxRelayJob(handler outboxRelayer, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the job.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(outboxRelaySchedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the scheduler and waits for a running tick to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) run(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return
	}

	total := 0
	for {
		n, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err, "published", total)
			return
		}
		total += n
		if n < j.batchSize {
			break
		}
	}

	if total > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "count", total)
	}
}
