// Package serverrun exposes a shared Run entrypoint used by the CLI to start
// the ringd runtime with the TCP daemon and HTTP control plane, handling
// lifecycle and shutdown.
//
// Example:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = serverrun.Run(ctx, serverrun.Options{Config: config.Default()})
package serverrun
