package usecases

import (
	"strconv"
	"sync"
	"time"
)

// idSource hands out "<prefix>_<unix ms>" ids. Ids minted within the same
// millisecond are bumped forward so they never collide.
type idSource struct {
	prefix string
	now    func() time.Time

	mu   sync.Mutex
	last int64
}

func newIDSource(prefix string, now func() time.Time) *idSource {
	return &idSource{prefix: prefix, now: now}
}

func (s *idSource) next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms := s.now().UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return s.prefix + "_" + strconv.FormatInt(ms, 10)
}
