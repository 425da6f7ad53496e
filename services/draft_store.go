package services

import (
	"context"
	"sync"

	"github.com/shaONme/padel-admin/models"
)

// DraftStore хранит черновики турниров по идентификатору оператора.
// Get возвращает (nil, nil), если черновика нет.
type DraftStore interface {
	Get(ctx context.Context, callerID int64) (*models.TournamentDraft, error)
	Save(ctx context.Context, callerID int64, draft *models.TournamentDraft) error
	Delete(ctx context.Context, callerID int64) error
}

// MemoryDraftStore — хранилище черновиков в памяти процесса.
// Используется по умолчанию: черновик живёт не дольше самого сервиса.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[int64]models.TournamentDraft
}

// NewMemoryDraftStore создаёт пустое in-memory хранилище.
func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{
		drafts: make(map[int64]models.TournamentDraft),
	}
}

func (s *MemoryDraftStore) Get(_ context.Context, callerID int64) (*models.TournamentDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.drafts[callerID]
	if !ok {
		return nil, nil
	}
	return copyDraft(&draft), nil
}

func (s *MemoryDraftStore) Save(_ context.Context, callerID int64, draft *models.TournamentDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[callerID] = *copyDraft(draft)
	return nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, callerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, callerID)
	return nil
}

// copyDraft делает копию черновика вместе со слайсом участников, чтобы
// хранилище и сессия не делили одну память.
func copyDraft(d *models.TournamentDraft) *models.TournamentDraft {
	out := *d
	if d.Participants != nil {
		out.Participants = make([]models.Player, len(d.Participants))
		copy(out.Participants, d.Participants)
	}
	return &out
}
