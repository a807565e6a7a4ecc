// Package jobs provides scheduled background tasks for the marketplace.
//
// The jobs are built on github.com/robfig/cron/v3 with second resolution. A tick that is still
// running when the next one fires is skipped.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second and publishes pending order.changed messages
// 2. AgentDispatchJob - Runs every five seconds and push-assigns one order that has been ready
// and unclaimed for longer than the configured delay
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, 100, assignHandler, 2*time.Minute, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Dispatch ignores the expected outcomes: nothing waiting, no agent on shift, or a manual
//     claim that got there first
//   - Relay logs every error; unpublished messages are retried on the next tick
package jobs
