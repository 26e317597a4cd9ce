package device

import (
	"context"
	"fmt"

	"ftpprobe/internal/process"
	"ftpprobe/pkg/logging"
)

// Forwarder sets up adb port forwarding from the host to the device.
type Forwarder struct {
	runner process.Runner
	adb    string
	// Serial selects the device when more than one is attached.
	Serial string
}

// NewForwarder creates a forwarder running adb binary adb.
func NewForwarder(runner process.Runner, adb string) *Forwarder {
	return &Forwarder{runner: runner, adb: adb}
}

// ForwardCommand returns the adb invocation forwarding host port to the
// same device port.
func (f *Forwarder) ForwardCommand(port int) process.Command {
	spec := fmt.Sprintf("tcp:%d", port)
	cmd := process.NewCommand(f.adb)
	if f.Serial != "" {
		cmd = cmd.With("-s", f.Serial)
	}
	return cmd.With("forward", spec, spec)
}

// Forward forwards every port in order. The first failure stops and is
// returned as is, typically a *process.ExecutionError.
func (f *Forwarder) Forward(ctx context.Context, ports ...int) error {
	for _, port := range ports {
		logging.Info("Device", "forwarding port %d", port)
		if _, err := f.runner.Run(ctx, f.ForwardCommand(port), true); err != nil {
			return fmt.Errorf("failed to forward port %d: %w", port, err)
		}
	}
	return nil
}

// RemoveCommand returns the adb invocation dropping the forward of port.
func (f *Forwarder) RemoveCommand(port int) process.Command {
	cmd := process.NewCommand(f.adb)
	if f.Serial != "" {
		cmd = cmd.With("-s", f.Serial)
	}
	return cmd.With("forward", "--remove", fmt.Sprintf("tcp:%d", port))
}

// Remove drops the forwards of ports. Failures are logged and ignored since
// a forward may already be gone.
func (f *Forwarder) Remove(ctx context.Context, ports ...int) {
	for _, port := range ports {
		if _, err := f.runner.Run(ctx, f.RemoveCommand(port), false); err != nil {
			logging.Warn("Device", "failed to remove forward of port %d: %v", port, err)
		}
	}
}
