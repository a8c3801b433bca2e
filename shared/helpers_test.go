package shared

import (
	"testing"

	"github.com/wippyai/ownership/alloc"
)

type session struct {
	id    int
	name  string
	drops *int
}

func (s *session) Drop() {
	if s.drops != nil {
		*s.drops++
	}
}

// newTracker installs a Tracker as the default allocator for the duration of
// the test and fails the test if anything leaks.
func newTracker(t *testing.T) *alloc.Tracker {
	t.Helper()
	tr := alloc.NewTracker(nil)
	restore := alloc.SetDefault(tr)
	t.Cleanup(func() {
		restore()
		if err := tr.Leaks(); err != nil {
			t.Errorf("leaks: %v", err)
		}
	})
	return tr
}

func newSession(tr *alloc.Tracker, id int, drops *int) *session {
	s := alloc.New[session](tr)
	s.id = id
	s.drops = drops
	return s
}
