// Package verify holds the assertions made on client output.
//
// Checks never stop a run. Each failure is appended to an Errors value owned
// by the caller, tagged with the scenario it came from, and the run goes on so
// a single pass reports as much as possible.
//
// The listing checks work on literal names only. Nothing models the server's
// filesystem; every expectation is derived from the Fixture names and the
// flags describing where in the lifecycle the scenario is.
package verify
