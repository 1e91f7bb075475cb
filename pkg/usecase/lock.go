package usecase

import (
	"sync"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// caseLocker serializes state-changing operations per case. Selection and
// accept/reject for the same case never interleave; different cases do not
// contend.
type caseLocker struct {
	mu    sync.Mutex
	locks map[types.CaseID]*sync.Mutex
}

func newCaseLocker() *caseLocker {
	return &caseLocker{locks: make(map[types.CaseID]*sync.Mutex)}
}

// Lock acquires the mutex for one case and returns the unlock function
func (l *caseLocker) Lock(id types.CaseID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
