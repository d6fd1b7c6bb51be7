package division

import (
	"sync"

	"github.com/google/uuid"

	"jjdivide/internal/division/model"
)

// Store holds in-flight proposals keyed by a generated id, so the MCP tool
// layer can hand a caller a proposalId from division_propose and look the
// full model.CommitDivisionProposal back up on a later
// division_apply_strategy/division_realize call, without round-tripping the
// whole proposal through the wire every time.
type Store struct {
	mu        sync.RWMutex
	proposals map[string]model.CommitDivisionProposal
}

// NewStore builds an empty Store.
func NewStore() *Store {
	return &Store{proposals: make(map[string]model.CommitDivisionProposal)}
}

// Put saves proposal under a freshly generated id and returns that id.
func (s *Store) Put(proposal model.CommitDivisionProposal) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[id] = proposal
	return id
}

// Replace overwrites the proposal stored under id, leaving the id unchanged
// (used by division_apply_strategy, which transforms in place).
func (s *Store) Replace(id string, proposal model.CommitDivisionProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[id] = proposal
}

// Get returns the proposal stored under id, and whether it exists.
func (s *Store) Get(id string) (model.CommitDivisionProposal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proposals[id]
	return p, ok
}
