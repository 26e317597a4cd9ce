package verify

import (
	"regexp"
	"strings"

	"ftpprobe/pkg/logging"
)

// Contains records "<prefix><value>" unless text contains value.
func (e *Errors) Contains(tag, text, value, prefix string) {
	if !strings.Contains(text, value) {
		e.Append(tag, prefix+value)
	}
}

// NotContains records "<prefix><value>" if text contains value.
func (e *Errors) NotContains(tag, text, value, prefix string) {
	if strings.Contains(text, value) {
		e.Append(tag, prefix+value)
	}
}

// Matches records "<prefix><expr>" unless expr matches at the start of text.
// An invalid expression is recorded as a failure too.
func (e *Errors) Matches(tag, text, expr, prefix string) {
	re, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		e.Append(tag, prefix+expr+" (invalid pattern: "+err.Error()+")")
		return
	}
	if !re.MatchString(text) {
		e.Append(tag, prefix+expr)
	}
}

// ExpectEmpty records "not empty" unless text has zero length.
func (e *Errors) ExpectEmpty(tag, text string) {
	logging.Debug("Verify", "checking if empty\n%s", text)
	if len(text) > 0 {
		e.Append(tag, "not empty")
	}
}
