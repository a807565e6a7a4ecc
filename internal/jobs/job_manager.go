package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob   *OutboxRelayJob
	agentDispatchJob *AgentDispatchJob
}

// NewJobManager creates a new job manager. A zero dispatchDelay turns auto-dispatch off.
func NewJobManager(
	relayHandler outboxRelayer,
	batchSize int,
	assignHandler agentAssigner,
	dispatchDelay time.Duration,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relayHandler, batchSize, logger),
	}
	if dispatchDelay > 0 {
		jm.agentDispatchJob = NewAgentDispatchJob(assignHandler, dispatchDelay, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if jm.agentDispatchJob == nil {
		return nil
	}
	if err := jm.agentDispatchJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start agent dispatch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.agentDispatchJob != nil {
		jm.agentDispatchJob.Stop()
	}
	jm.outboxRelayJob.Stop()
}
