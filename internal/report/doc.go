// Package report renders the outcome of a run for people and for tools.
package report
