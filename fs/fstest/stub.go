package fstest

import (
	"sync"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
)

// StubHost is a scriptable core.Host for testing decorators. Every
// fallible operation fails with Err when it is set and otherwise succeeds
// with the matching canned value.
type StubHost struct {
	// Caps is returned by Capabilities.
	Caps core.Capabilities
	// Err fails every operation except Exists and Watch.
	Err error
	// NoStat makes Stat return nil, signalling no stat support.
	NoStat bool
	// Pending leaves every future unsettled until Release is called,
	// simulating a host that lies about being synchronous.
	Pending bool

	Content   []byte
	Fragments []vpath.Fragment
	Flag      bool
	Info      core.Stats
	Stream    core.WatchStream

	mu      sync.Mutex
	calls   []string
	release chan struct{}
	once    sync.Once
}

// Calls returns the names of the operations invoked, in order.
func (s *StubHost) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Release settles every pending future.
func (s *StubHost) Release() {
	s.gate()
	s.once.Do(func() { close(s.release) })
}

func (s *StubHost) gate() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.release == nil {
		s.release = make(chan struct{})
	}
	return s.release
}

func stubResult[T any](s *StubHost, op string, value T, err error) *core.Future[T] {
	s.mu.Lock()
	s.calls = append(s.calls, op)
	s.mu.Unlock()

	if s.Pending {
		release := s.gate()
		return core.Go(func() (T, error) {
			<-release
			return value, err
		})
	}
	return core.Settle(value, err)
}

// Capabilities returns Caps.
func (s *StubHost) Capabilities() core.Capabilities {
	return s.Caps
}

// Read returns Content or Err.
func (s *StubHost) Read(vpath.Path) *core.Future[[]byte] {
	return stubResult(s, "read", s.Content, s.Err)
}

// List returns Fragments or Err.
func (s *StubHost) List(vpath.Path) *core.Future[[]vpath.Fragment] {
	return stubResult(s, "list", s.Fragments, s.Err)
}

// Exists returns Flag and never fails.
func (s *StubHost) Exists(vpath.Path) *core.Future[bool] {
	return stubResult(s, "exists", s.Flag, nil)
}

// IsDirectory returns Flag or Err.
func (s *StubHost) IsDirectory(vpath.Path) *core.Future[bool] {
	return stubResult(s, "isDirectory", s.Flag, s.Err)
}

// IsFile returns Flag or Err.
func (s *StubHost) IsFile(vpath.Path) *core.Future[bool] {
	return stubResult(s, "isFile", s.Flag, s.Err)
}

// Stat returns Info or Err, or nil when NoStat is set.
func (s *StubHost) Stat(vpath.Path) *core.Future[core.Stats] {
	if s.NoStat {
		s.mu.Lock()
		s.calls = append(s.calls, "stat")
		s.mu.Unlock()
		return nil
	}
	return stubResult(s, "stat", s.Info, s.Err)
}

// Write succeeds or fails with Err.
func (s *StubHost) Write(vpath.Path, []byte) *core.Future[struct{}] {
	return stubResult(s, "write", struct{}{}, s.Err)
}

// Delete succeeds or fails with Err.
func (s *StubHost) Delete(vpath.Path) *core.Future[struct{}] {
	return stubResult(s, "delete", struct{}{}, s.Err)
}

// Rename succeeds or fails with Err.
func (s *StubHost) Rename(_, _ vpath.Path) *core.Future[struct{}] {
	return stubResult(s, "rename", struct{}{}, s.Err)
}

// Watch returns Stream, which may be nil.
func (s *StubHost) Watch(vpath.Path, core.WatchOptions) core.WatchStream {
	s.mu.Lock()
	s.calls = append(s.calls, "watch")
	s.mu.Unlock()
	return s.Stream
}

var _ core.Host = (*StubHost)(nil)
