package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{"empty", nil, ""},
		{"single", []string{"test-dir-auto"}, "test-dir-auto"},
		{"nested", []string{"test-dir-auto", "sub-dir"}, "test-dir-auto/sub-dir"},
		{"three", []string{"a", "b", "c"}, "a/b/c"},
		{"empty segments skipped", []string{"", "a", "", "b"}, "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinPath(tt.segments)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.HasPrefix(got, "/"))
			assert.False(t, strings.HasSuffix(got, "/"))
			assert.NotContains(t, got, "//")
		})
	}
}

func TestParseBaseURL(t *testing.T) {
	b, err := ParseBaseURL("sftp://localhost:1234/storage/emulated/0/")
	require.NoError(t, err)
	assert.Equal(t, BaseURL{Protocol: SFTP, Host: "localhost", Port: 1234, Root: "storage/emulated/0"}, b)
	assert.Equal(t, "sftp://localhost:1234/storage/emulated/0/", b.String())
	assert.Equal(t, "sftp://localhost:1234/storage/emulated/0/test-dir-auto/sub-dir/", b.Dir("test-dir-auto", "sub-dir"))

	b, err = ParseBaseURL("ftp://localhost:12345/")
	require.NoError(t, err)
	assert.Equal(t, "", b.Root)
	assert.Equal(t, "ftp://localhost:12345/", b.String())
	assert.Equal(t, "ftp://localhost:12345/test-dir/", b.Dir("test-dir"))
}

func TestParseBaseURL_Errors(t *testing.T) {
	for _, raw := range []string{
		"http://localhost:80/",
		"sftp:///path",
		"sftp://localhost/",
		"::not a url",
	} {
		_, err := ParseBaseURL(raw)
		assert.Error(t, err, raw)
	}
}

func TestProtocol_String(t *testing.T) {
	assert.Equal(t, "ftp", FTP.String())
	assert.Equal(t, "sftp", SFTP.String())
	assert.Equal(t, "Protocol(9)", Protocol(9).String())

	p, err := ParseProtocol("SFTP")
	require.NoError(t, err)
	assert.Equal(t, SFTP, p)
	_, err = ParseProtocol("scp")
	assert.Error(t, err)
}
