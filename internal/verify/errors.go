package verify

import (
	"fmt"
)

// Error is one assertion failure. Tag identifies the storage backend,
// protocol and scenario it belongs to, e.g. "[fs sftp]".
type Error struct {
	Tag     string `json:"tag" yaml:"tag"`
	Message string `json:"message" yaml:"message"`
}

// String renders the error as "<tag> <message>".
func (e Error) String() string {
	return fmt.Sprintf("%s %s", e.Tag, e.Message)
}

// Errors accumulates assertion failures of a run. Records are only ever
// appended. The zero value is ready to use.
type Errors struct {
	list []Error
}

// Append records a failure. An empty tag is replaced by "[untagged]" so every
// record stays attributable.
func (e *Errors) Append(tag, message string) {
	if tag == "" {
		tag = "[untagged]"
	}
	e.list = append(e.list, Error{Tag: tag, Message: message})
}

// Len returns the number of recorded failures.
func (e *Errors) Len() int {
	return len(e.list)
}

// Empty reports whether nothing failed.
func (e *Errors) Empty() bool {
	return len(e.list) == 0
}

// All returns a copy of the recorded failures in order.
func (e *Errors) All() []Error {
	return append([]Error(nil), e.list...)
}

// Since returns the failures recorded after the first n.
func (e *Errors) Since(n int) []Error {
	if n >= len(e.list) {
		return nil
	}
	return append([]Error(nil), e.list[n:]...)
}
