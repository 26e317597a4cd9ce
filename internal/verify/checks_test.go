package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AppendOnly(t *testing.T) {
	var errs Errors
	assert.True(t, errs.Empty())

	errs.Append("[fs sftp]", "missing dir in home: DCIM")
	errs.Append("", "no tag")

	all := errs.All()
	assert.Equal(t, 2, errs.Len())
	assert.Equal(t, Error{Tag: "[fs sftp]", Message: "missing dir in home: DCIM"}, all[0])
	assert.Equal(t, "[untagged]", all[1].Tag)
	assert.Equal(t, "[fs sftp] missing dir in home: DCIM", all[0].String())

	// mutating the copy does not touch the accumulator
	all[0].Message = "changed"
	assert.Equal(t, "missing dir in home: DCIM", errs.All()[0].Message)

	assert.Len(t, errs.Since(1), 1)
	assert.Nil(t, errs.Since(2))
}

func TestContainsAndNotContains(t *testing.T) {
	var errs Errors
	text := "drwx Android\ndrwx DCIM\n"

	errs.Contains("[t]", text, "Android", "missing: ")
	errs.NotContains("[t]", text, "test-dir-auto", "present: ")
	assert.True(t, errs.Empty())

	errs.Contains("[t]", text, "Music", "missing: ")
	errs.NotContains("[t]", text, "DCIM", "present: ")
	assert.Equal(t, []Error{
		{Tag: "[t]", Message: "missing: Music"},
		{Tag: "[t]", Message: "present: DCIM"},
	}, errs.All())
}

func TestMatches_AnchoredAtStart(t *testing.T) {
	var errs Errors

	errs.Matches("[t]", "abc def", "abc", "no match: ")
	assert.True(t, errs.Empty())

	errs.Matches("[t]", "xabc", "abc", "no match: ")
	assert.Equal(t, []Error{{Tag: "[t]", Message: "no match: abc"}}, errs.All())
}

func TestMatches_InvalidPattern(t *testing.T) {
	var errs Errors
	errs.Matches("[t]", "text", "(", "bad: ")
	assert.Equal(t, 1, errs.Len())
	assert.Contains(t, errs.All()[0].Message, "invalid pattern")
}

func TestExpectEmpty(t *testing.T) {
	var errs Errors
	errs.ExpectEmpty("[key bad rsa]", "")
	assert.True(t, errs.Empty())

	errs.ExpectEmpty("[key bad rsa]", "drwx Android\n")
	assert.Equal(t, []Error{{Tag: "[key bad rsa]", Message: "not empty"}}, errs.All())
}
