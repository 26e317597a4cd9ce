// Package strings holds string helpers for console output.
package strings
