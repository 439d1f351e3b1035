package country

import (
	"context"
	"sync"

	"custos/internal/registry/models"
	id "custos/pkg/domain"
)

// MemoryStore keeps country records and the global limit table in process
// memory. Reads return copies; mutation goes through Put/PutGlobal.
type MemoryStore struct {
	mu        sync.RWMutex
	countries map[id.CountryCode]models.CountryRecord
	global    models.LimitTable
}

func New() *MemoryStore {
	return &MemoryStore{
		countries: make(map[id.CountryCode]models.CountryRecord),
	}
}

// Get returns the record for code. Unknown countries yield the zero record,
// which permits nothing; they come into existence on first Put.
func (s *MemoryStore) Get(_ context.Context, code id.CountryCode) (*models.CountryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.countries[code]
	if !ok {
		record = models.CountryRecord{Code: code}
	}
	return &record, nil
}

func (s *MemoryStore) Put(_ context.Context, record *models.CountryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.countries[record.Code] = *record
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]*models.CountryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*models.CountryRecord, 0, len(s.countries))
	for _, record := range s.countries {
		r := record
		records = append(records, &r)
	}
	return records, nil
}

func (s *MemoryStore) Global(_ context.Context) (*models.LimitTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table := s.global
	return &table, nil
}

func (s *MemoryStore) PutGlobal(_ context.Context, table *models.LimitTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.global = *table
	return nil
}
