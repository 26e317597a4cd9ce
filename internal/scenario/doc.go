// Package scenario drives the end-to-end checks against a running file
// server.
//
// A Suite picks, once per storage backend, which scenarios run: the
// read-write Cycle over SFTP and FTP, the ReadOnlyCycle for read-only
// storage, scp upload and download, and the authentication key matrix.
// Scenarios never stop on a failed check. Every failure lands in the Run's
// error list, tagged with the scenario that produced it, and the suite
// carries on so one invocation reports as many problems as possible.
//
// A client call that fails outright (curl or scp exiting non-zero on a
// checked action) is recorded the same way. Only local infrastructure
// problems, such as a temp dir that cannot be recreated or an interrupted
// context, end a suite early.
package scenario
