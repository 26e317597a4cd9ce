package device

import (
	"context"
	"testing"

	"ftpprobe/internal/process"
	"ftpprobe/internal/process/processtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForward(t *testing.T) {
	rec := processtest.NewRecorder()
	f := NewForwarder(rec, "adb")

	require.NoError(t, f.Forward(context.Background(), 1234, 12345, 5678))

	assert.Equal(t, []string{
		"adb forward tcp:1234 tcp:1234",
		"adb forward tcp:12345 tcp:12345",
		"adb forward tcp:5678 tcp:5678",
	}, rec.Lines())
	for _, c := range rec.Calls() {
		assert.True(t, c.Check)
	}
}

func TestForward_Serial(t *testing.T) {
	f := NewForwarder(processtest.NewRecorder(), "/opt/android/adb")
	f.Serial = "emulator-5554"

	assert.Equal(t, "/opt/android/adb -s emulator-5554 forward tcp:1234 tcp:1234", f.ForwardCommand(1234).String())
	assert.Equal(t, "/opt/android/adb -s emulator-5554 forward --remove tcp:1234", f.RemoveCommand(1234).String())
}

func TestForward_StopsOnFailure(t *testing.T) {
	execErr := &process.ExecutionError{Command: process.NewCommand("adb", "forward", "tcp:12345", "tcp:12345"), ExitCode: 1, Stderr: "error: no devices/emulators found"}
	rec := processtest.NewRecorder().On(processtest.LastArg("tcp:12345"), processtest.Response{Err: execErr})
	f := NewForwarder(rec, "adb")

	err := f.Forward(context.Background(), 1234, 12345, 5678)
	require.Error(t, err)
	assert.ErrorIs(t, err, execErr)
	assert.Len(t, rec.Calls(), 2)
}

func TestRemove_IgnoresFailures(t *testing.T) {
	rec := processtest.NewRecorder().On(processtest.Any, processtest.Response{Err: assert.AnError})
	f := NewForwarder(rec, "adb")

	f.Remove(context.Background(), 1234, 12345)
	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.False(t, calls[0].Check)
}
