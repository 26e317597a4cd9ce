package scenario

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"ftpprobe/internal/process"
	"ftpprobe/internal/process/processtest"
)

// fakeServer answers curl and scp commands from an in-memory file tree,
// printing listings in the format the file server uses.
type fakeServer struct {
	mu       sync.Mutex
	entries  map[string]int64 // path -> size, -1 for directories
	fileSize int64
	// readOnly rejects every mutation.
	readOnly bool
}

const sftpRoot = "storage/emulated/0"

func newFakeServer(fileSize int64) *fakeServer {
	return &fakeServer{
		fileSize: fileSize,
		entries: map[string]int64{
			"Android":                   -1,
			"DCIM":                      -1,
			"test-dir":                  -1,
			"test-dir/sub-dir":          -1,
			"test-dir/sub-dir/testfile": fileSize,
		},
	}
}

// recorder returns a recorder answering every command from the server.
func (s *fakeServer) recorder() *processtest.Recorder {
	return processtest.NewRecorder().OnFunc(processtest.Any, s.handle)
}

func (s *fakeServer) snapshot() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

func (s *fakeServer) handle(cmd process.Command) processtest.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Name {
	case "curl":
		return s.curl(cmd)
	case "scp":
		return s.scp(cmd)
	}
	return processtest.Response{Err: fmt.Errorf("unexpected command %s", cmd)}
}

func failure(cmd process.Command, msg string) processtest.Response {
	return processtest.Response{Err: &process.ExecutionError{Command: cmd, ExitCode: 78, Stderr: msg}}
}

func (s *fakeServer) curl(cmd process.Command) processtest.Response {
	var quotes []string
	var upload, output, rawURL string
	args := cmd.Args
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-Q", "-T", "-o", "--key", "--user":
			if i+1 == len(args) {
				return failure(cmd, "missing value for "+args[i])
			}
			opt, val := args[i], args[i+1]
			i++
			switch opt {
			case "-Q":
				quotes = append(quotes, val)
			case "-T":
				upload = val
			case "-o":
				output = val
			case "--key":
				// curl prints nothing when the server refuses the key
				if strings.Contains(val, ".bad.") {
					return processtest.Response{}
				}
			}
		default:
			if strings.Contains(args[i], "://") {
				rawURL = args[i]
			}
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return processtest.Response{Err: err}
	}
	target := strings.Trim(u.Path, "/")
	target = strings.Trim(strings.TrimPrefix(target, sftpRoot), "/")

	for i := 0; i < len(quotes); i++ {
		if err := s.quote(quotes, &i); err != nil {
			return failure(cmd, err.Error())
		}
	}

	switch {
	case upload != "":
		if s.readOnly {
			return failure(cmd, "read-only")
		}
		if s.entries[target] != -1 {
			return failure(cmd, "no such dir "+target)
		}
		s.entries[path.Join(target, filepath.Base(upload))] = s.fileSize
		return processtest.Response{}
	case output != "":
		size, ok := s.entries[target]
		if !ok || size < 0 {
			return failure(cmd, "no such file "+target)
		}
		if err := os.WriteFile(output, make([]byte, size), 0600); err != nil {
			return processtest.Response{Err: err}
		}
		return processtest.Response{}
	}
	return processtest.Response{Output: s.listing(target)}
}

func (s *fakeServer) quote(quotes []string, i *int) error {
	verb, arg, _ := strings.Cut(quotes[*i], " ")
	if s.readOnly {
		return errors.New("read-only")
	}
	switch verb {
	case "MKDIR", "MKD":
		s.entries[arg] = -1
	case "RMDIR", "RMD", "RM", "DELE":
		delete(s.entries, arg)
	case "RENAME":
		from, to, _ := strings.Cut(arg, " ")
		s.rename(from, to)
	case "RNFR":
		*i++
		_, to, _ := strings.Cut(quotes[*i], " ")
		s.rename(arg, to)
	default:
		return fmt.Errorf("unknown command %s", verb)
	}
	return nil
}

func (s *fakeServer) rename(from, to string) {
	moved := map[string]int64{}
	for p, size := range s.entries {
		if p == from || strings.HasPrefix(p, from+"/") {
			moved[to+strings.TrimPrefix(p, from)] = size
			delete(s.entries, p)
		}
	}
	for p, size := range moved {
		s.entries[p] = size
	}
}

func (s *fakeServer) listing(dir string) string {
	var names []string
	for p := range s.entries {
		if path.Dir(p) == dir || (dir == "" && path.Dir(p) == ".") {
			names = append(names, p)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, p := range names {
		size := s.entries[p]
		if size < 0 {
			fmt.Fprintf(&b, "drwxrwx---   2 user  group      4096 Jan 10 10:02 %s\n", path.Base(p))
		} else {
			fmt.Fprintf(&b, "-rw-rw----   1 user  group  %8d Jan 10 10:02 %s\n", size, path.Base(p))
		}
	}
	return b.String()
}

func (s *fakeServer) scp(cmd process.Command) processtest.Response {
	args := cmd.Args
	src, dst := args[len(args)-2], args[len(args)-1]

	if remote, ok := strings.CutPrefix(src, "localhost:"); ok {
		size, exists := s.entries[remote]
		if !exists || size < 0 {
			return failure(cmd, "no such file "+remote)
		}
		if err := os.WriteFile(dst, make([]byte, size), 0600); err != nil {
			return processtest.Response{Err: err}
		}
		return processtest.Response{}
	}

	remote, _ := strings.CutPrefix(dst, "localhost:")
	if s.readOnly {
		return failure(cmd, "read-only")
	}
	if s.entries[remote] != -1 {
		return failure(cmd, "no such dir "+remote)
	}
	s.entries[path.Join(remote, filepath.Base(src))] = s.fileSize
	return processtest.Response{}
}
