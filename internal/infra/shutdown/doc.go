// Package shutdown ties command execution to process signals.
//
// A Handler derives a context canceled on SIGINT or SIGTERM, so a running
// proof-of-work search stops promptly, and runs registered exit hooks
// (such as writing the metrics file) exactly once:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	ctx, stop := h.NotifyContext(context.Background())
//	defer stop()
//	h.OnShutdown(writeMetrics)
//	defer h.Run()
package shutdown
