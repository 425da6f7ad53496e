package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/shaONme/padel-admin/models"
)

// RatingSource — операции рейтинга на бэкенде.
type RatingSource interface {
	RatingModes(ctx context.Context) ([]models.RatingMode, error)
	RatingTable(ctx context.Context, mode models.RatingModeCode) ([]models.PlayerRatingRow, error)
}

// RatingViewState — состояние вида рейтинга для одного оператора.
type RatingViewState string

const (
	RatingStateIdle    RatingViewState = "idle"    // режим ещё не выбран
	RatingStateLoading RatingViewState = "loading" // запрос в полёте
	RatingStateLoaded  RatingViewState = "loaded"  // строки получены
	RatingStateEmpty   RatingViewState = "empty"   // режим выбран, данных нет
	RatingStateError   RatingViewState = "error"   // запрос завершился ошибкой
)

// RatingView — снимок состояния вида рейтинга.
type RatingView struct {
	State RatingViewState          `json:"state"`
	Mode  models.RatingModeCode    `json:"mode,omitempty"`
	Rows  []models.PlayerRatingRow `json:"rows"`
	Error string                   `json:"error,omitempty"`
}

// ratingView — живое состояние одного оператора. Каждый запрос таблицы
// штампуется поколением: ответ, прилетевший после более нового выбора
// режима, отбрасывается и не перетирает актуальные данные.
type ratingView struct {
	mu     sync.Mutex
	gen    uint64
	state  RatingViewState
	mode   models.RatingModeCode
	rows   []models.PlayerRatingRow
	errMsg string
}

func (v *ratingView) snapshotLocked() *RatingView {
	rows := make([]models.PlayerRatingRow, len(v.rows))
	copy(rows, v.rows)
	return &RatingView{
		State: v.state,
		Mode:  v.mode,
		Rows:  rows,
		Error: v.errMsg,
	}
}

// RatingService отдаёт список режимов и ведёт состояние таблицы рейтинга
// по каждому оператору.
type RatingService struct {
	api RatingSource

	mu    sync.Mutex
	modes []models.RatingMode
	views map[int64]*ratingView
}

// NewRatingService создаёт RatingService поверх клиента бэкенда.
func NewRatingService(api RatingSource) *RatingService {
	return &RatingService{
		api:   api,
		views: make(map[int64]*ratingView),
	}
}

// Modes возвращает закрытый список режимов. Загружается с бэкенда один
// раз и дальше не меняется на всю жизнь процесса.
func (s *RatingService) Modes(ctx context.Context) ([]models.RatingMode, error) {
	s.mu.Lock()
	if s.modes != nil {
		modes := make([]models.RatingMode, len(s.modes))
		copy(modes, s.modes)
		s.mu.Unlock()
		return modes, nil
	}
	s.mu.Unlock()

	modes, err := s.api.RatingModes(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при загрузке режимов: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modes == nil {
		s.modes = modes
	}
	out := make([]models.RatingMode, len(s.modes))
	copy(out, s.modes)
	return out, nil
}

func (s *RatingService) view(callerID int64) *ratingView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[callerID]
	if !ok {
		v = &ratingView{state: RatingStateIdle}
		s.views[callerID] = v
	}
	return v
}

// Select загружает таблицу рейтинга для выбранного режима и возвращает
// новое состояние вида. Пустой список строк — это состояние empty,
// а не ошибка.
func (s *RatingService) Select(ctx context.Context, callerID int64, mode models.RatingModeCode) (*RatingView, error) {
	if !mode.IsValid() {
		return nil, ErrUnknownRatingMode
	}

	v := s.view(callerID)

	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.state = RatingStateLoading
	v.mode = mode
	v.errMsg = ""
	v.mu.Unlock()

	rows, err := s.api.RatingTable(ctx, mode)

	v.mu.Lock()
	defer v.mu.Unlock()

	// Пока запрос летал, оператор выбрал другой режим — этот ответ
	// устарел и состояние не трогает.
	if v.gen != gen {
		return v.snapshotLocked(), nil
	}

	if err != nil {
		v.state = RatingStateError
		v.rows = nil
		v.errMsg = err.Error()
		return v.snapshotLocked(), nil
	}

	v.rows = rows
	if len(rows) == 0 {
		v.state = RatingStateEmpty
	} else {
		v.state = RatingStateLoaded
	}
	return v.snapshotLocked(), nil
}

// View возвращает текущее состояние вида рейтинга оператора.
func (s *RatingService) View(callerID int64) *RatingView {
	v := s.view(callerID)
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}
