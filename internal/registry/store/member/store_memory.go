package member

import (
	"context"
	"sync"

	"custos/internal/registry/models"
	id "custos/pkg/domain"
)

// MemoryStore keeps member state in process memory. Values are copied on the
// way in and out so callers can only mutate registry state through Put.
type MemoryStore struct {
	mu        sync.RWMutex
	accounts  map[id.MemberID]models.MemberAccount
	byAddress map[id.Address]id.MemberID
	documents map[id.MemberID][32]byte
}

func New() *MemoryStore {
	return &MemoryStore{
		accounts:  make(map[id.MemberID]models.MemberAccount),
		byAddress: make(map[id.Address]id.MemberID),
		documents: make(map[id.MemberID][32]byte),
	}
}

func (s *MemoryStore) Get(_ context.Context, memberID id.MemberID) (*models.MemberAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[memberID]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (s *MemoryStore) Put(_ context.Context, account *models.MemberAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.ID] = *account
	return nil
}

func (s *MemoryStore) IDForAddress(_ context.Context, addr id.Address) (id.MemberID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.byAddress[addr], nil
}

func (s *MemoryStore) MapAddress(_ context.Context, addr id.Address, memberID id.MemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byAddress[addr] = memberID
	return nil
}

func (s *MemoryStore) DocumentHash(_ context.Context, memberID id.MemberID) ([32]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[memberID], nil
}

func (s *MemoryStore) SetDocumentHash(_ context.Context, memberID id.MemberID, hash [32]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[memberID] = hash
	return nil
}
