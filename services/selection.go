package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shaONme/padel-admin/backend"
	"github.com/shaONme/padel-admin/models"
)

// PlayerSearcher — поиск игроков на бэкенде. Матчинг и ранжирование
// полностью на стороне бэкенда, клиент ничего не дофильтровывает.
type PlayerSearcher interface {
	SearchPlayers(ctx context.Context, identity backend.Identity, query string) ([]models.Player, error)
}

// ParticipantSelection хранит состояние подбора участников турнира:
// строку поиска, результаты последнего поиска и упорядоченный список
// выбранных игроков. Инварианты:
//   - в selected нет дубликатов и не больше maxParticipants записей;
//   - Results никогда не возвращает уже выбранных игроков;
//   - результаты всегда соответствуют последнему введённому запросу —
//     устаревший ответ поиска, завершившийся после более нового запроса,
//     отбрасывается (проверка поколения при завершении).
type ParticipantSelection struct {
	searcher        PlayerSearcher
	maxParticipants int

	mu        sync.Mutex
	query     string
	searchGen uint64
	results   []models.Player
	selected  []models.Player
}

// NewParticipantSelection создаёт пустой выбор с заданным лимитом участников.
func NewParticipantSelection(searcher PlayerSearcher, maxParticipants int) *ParticipantSelection {
	return &ParticipantSelection{
		searcher:        searcher,
		maxParticipants: maxParticipants,
	}
}

// SetQuery обновляет строку поиска и возвращает видимые результаты.
// Пустой запрос очищает результаты без обращения к бэкенду.
func (s *ParticipantSelection) SetQuery(ctx context.Context, identity backend.Identity, text string) ([]models.Player, error) {
	s.mu.Lock()
	s.query = text
	s.searchGen++
	gen := s.searchGen

	if strings.TrimSpace(text) == "" {
		s.results = nil
		visible := s.visibleResultsLocked()
		s.mu.Unlock()
		return visible, nil
	}
	s.mu.Unlock()

	found, err := s.searcher.SearchPlayers(ctx, identity, text)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Пока этот поиск летал, запрос успели поменять — его результат
	// больше никому не нужен, показываем актуальное состояние.
	if s.searchGen != gen {
		return s.visibleResultsLocked(), nil
	}
	if err != nil {
		s.results = nil
		return nil, err
	}
	s.results = found
	return s.visibleResultsLocked(), nil
}

// Query возвращает текущую строку поиска.
func (s *ParticipantSelection) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Results возвращает результаты поиска без уже выбранных игроков.
func (s *ParticipantSelection) Results() []models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleResultsLocked()
}

func (s *ParticipantSelection) visibleResultsLocked() []models.Player {
	selectedIDs := make(map[int]struct{}, len(s.selected))
	for _, p := range s.selected {
		selectedIDs[p.ID] = struct{}{}
	}

	visible := make([]models.Player, 0, len(s.results))
	for _, p := range s.results {
		if _, ok := selectedIDs[p.ID]; !ok {
			visible = append(visible, p)
		}
	}
	return visible
}

// Toggle убирает игрока из выбранных, если он там есть, иначе добавляет
// в конец. При достижении лимита добавление не выполняется и возвращается
// ошибка, список остаётся без изменений.
func (s *ParticipantSelection) Toggle(player models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.selected {
		if p.ID == player.ID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return nil
		}
	}

	if len(s.selected) >= s.maxParticipants {
		return fmt.Errorf("%w: максимум %d", ErrSelectionFull, s.maxParticipants)
	}
	s.selected = append(s.selected, player)
	return nil
}

// Reorder переносит выбранного игрока с позиции from на позицию to,
// сохраняя относительный порядок остальных (remove-then-insert).
func (s *ParticipantSelection) Reorder(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from < 0 || from >= len(s.selected) || to < 0 || to >= len(s.selected) {
		return ErrReorderOutOfRange
	}
	if from == to {
		return nil
	}

	moved := s.selected[from]
	s.selected = append(s.selected[:from], s.selected[from+1:]...)
	s.selected = append(s.selected[:to], append([]models.Player{moved}, s.selected[to:]...)...)
	return nil
}

// Clear безусловно очищает список выбранных.
func (s *ParticipantSelection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected возвращает копию списка выбранных в порядке выбора.
func (s *ParticipantSelection) Selected() []models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Player, len(s.selected))
	copy(out, s.selected)
	return out
}

// setSelected заменяет список выбранных — используется при восстановлении
// черновика из хранилища. Лимит применяется и здесь.
func (s *ParticipantSelection) setSelected(players []models.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int]struct{}, len(players))
	selected := make([]models.Player, 0, len(players))
	for _, p := range players {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		if len(selected) >= s.maxParticipants {
			break
		}
		seen[p.ID] = struct{}{}
		selected = append(selected, p)
	}
	s.selected = selected
}
