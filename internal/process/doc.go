// Package process runs the external clients (curl, scp, adb, git, gradle)
// that ftpprobe drives.
//
// Commands are argument vectors, never shell strings, so a remote command
// such as `RENAME a b` travels to the client as one argument. Standard output
// is captured and returned as text; the caller decides per invocation whether
// a non-zero exit status is an error (check=true) or just an empty result.
//
// There is no retry and no timeout. A hanging client blocks the run until the
// driver itself is interrupted, at which point the child process group is
// terminated.
package process
