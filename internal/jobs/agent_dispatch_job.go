package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

const agentDispatchSchedule = "*/5 * * * * *"

type agentAssigner interface {
	Handle(ctx context.Context, command commands.AssignAgentCommand) (*order.Order, error)
}

// AgentDispatchJob push-assigns orders that have waited in ready longer than delay.
// Runs every five seconds, one order per tick.
type AgentDispatchJob struct {
	handler agentAssigner
	delay   time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAgentDispatchJob creates a new job for assigning agents to stale ready orders.
func NewAgentDispatchJob(handler agentAssigner, delay time.Duration, logger *slog.Logger) *AgentDispatchJob {
	return &AgentDispatchJob{
		handler: handler,
		delay:   delay,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "agent_dispatch_job"),
	}
}

// Start schedules the job.
func (j *AgentDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(agentDispatchSchedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Agent dispatch job started", "delay", j.delay.String())
	return nil
}

// Stop stops the scheduler and waits for a running tick to finish.
func (j *AgentDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Agent dispatch job stopped")
}

func (j *AgentDispatchJob) run(ctx context.Context) {
	cmd, err := commands.NewAssignAgentCommand(j.delay)
	if err != nil {
		j.logger.ErrorContext(ctx, "Agent dispatch job misconfigured", "error", err)
		return
	}

	claimed, err := j.handler.Handle(ctx, cmd)
	switch {
	case err == nil:
		j.logger.InfoContext(ctx, "Order dispatched",
			"order_id", claimed.ID().String(),
			"agent_id", claimed.Assignment().AgentID().String())
	// Nothing waiting, nobody on shift, or manual claims won every race.
	case errors.Is(err, commands.ErrNoOrderFound),
		errors.Is(err, commands.ErrNoAvailableAgentsFound),
		errors.Is(err, order.ErrAlreadyClaimed),
		errors.Is(err, errs.ErrConcurrentModification):
	default:
		j.logger.ErrorContext(ctx, "Agent dispatch job failed", "error", err)
	}
}
