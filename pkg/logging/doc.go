// Package logging provides the structured logger used by ftpprobe.
//
// It is a thin layer over log/slog. Every entry carries a subsystem attribute
// so output from the process runner, the scenario orchestrator and the release
// helper can be told apart in one stream.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Scenario", "starting %s cycle", tag)
//	logging.Debug("Verify", "checking home listing\n%s", text)
//	logging.Error("Device", err, "port forwarding failed")
//
// Messages below the configured level are dropped before formatting.
package logging
