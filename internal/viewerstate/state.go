package viewerstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gofrs/flock"
)

// FormatVersion is the version written to new state files.
const FormatVersion = 2

const (
	lockRetryDelay = 500 * time.Millisecond
	lockTimeout    = 7 * lockRetryDelay
)

// ErrLockTimeout is returned when the state file stays locked too long.
var ErrLockTimeout = errors.New("timed out waiting for viewer state lock")

// File is the decoded state file.
type File struct {
	Version  int               `json:"version"`
	Services map[string]string `json:"services"`
}

// Store accesses one state file.
type Store struct {
	path string
}

// New returns a Store for the state file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the state file location in the user's home directory.
func DefaultPath(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, name), nil
}

// Path returns the state file path.
func (s *Store) Path() string { return s.path }

// LockPath returns the path of the lock file guarding the state file.
func (s *Store) LockPath() string { return s.path + ".lock" }

// Ports returns the registered ports, numeric ports first in ascending order.
func (s *Store) Ports(ctx context.Context) ([]string, error) {
	var ports []string
	err := s.locked(ctx, func(f *File) (bool, error) {
		for port := range f.Services {
			ports = append(ports, port)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	sortPorts(ports)
	return ports, nil
}

// Services returns a copy of the port to connection file mapping.
func (s *Store) Services(ctx context.Context) (map[string]string, error) {
	services := make(map[string]string)
	err := s.locked(ctx, func(f *File) (bool, error) {
		for k, v := range f.Services {
			services[k] = v
		}
		return false, nil
	})
	return services, err
}

// Register records that a viewer listens on port.
func (s *Store) Register(ctx context.Context, port, connectionFile string) error {
	if _, err := strconv.Atoi(port); err != nil {
		return fmt.Errorf("invalid port %q", port)
	}
	return s.locked(ctx, func(f *File) (bool, error) {
		f.Services[port] = connectionFile
		return true, nil
	})
}

// Unregister removes port. Removing an unknown port is not an error.
func (s *Store) Unregister(ctx context.Context, port string) error {
	return s.locked(ctx, func(f *File) (bool, error) {
		if _, ok := f.Services[port]; !ok {
			return false, nil
		}
		delete(f.Services, port)
		return true, nil
	})
}

// locked runs fn on the decoded file while holding the lock and writes the
// file back when fn reports a change.
func (s *Store) locked(ctx context.Context, fn func(*File) (bool, error)) error {
	lock := flock.New(s.LockPath())

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	ok, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrLockTimeout
		}
		return fmt.Errorf("locking %s: %w", s.LockPath(), err)
	}
	if !ok {
		return ErrLockTimeout
	}
	defer lock.Unlock()

	f, err := s.read()
	if err != nil {
		return err
	}
	changed, err := fn(f)
	if err != nil || !changed {
		return err
	}
	return s.write(f)
}

func (s *Store) read() (*File, error) {
	f := &File{Version: FormatVersion}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		f.Services = make(map[string]string)
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if f.Services == nil {
		f.Services = make(map[string]string)
	}
	return f, nil
}

func (s *Store) write(f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding viewer state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

func sortPorts(ports []string) {
	sort.Slice(ports, func(i, j int) bool {
		a, errA := strconv.Atoi(ports[i])
		b, errB := strconv.Atoi(ports[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return ports[i] < ports[j]
		}
	})
}
