package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shaONme/padel-admin/backend"
	"github.com/shaONme/padel-admin/models"
)

// TournamentCreator — операция создания турнира на бэкенде.
type TournamentCreator interface {
	CreateTournament(ctx context.Context, identity backend.Identity, input backend.CreateTournamentInput) (*models.Tournament, error)
}

// DraftBackend — всё, что нужно черновику от бэкенда.
type DraftBackend interface {
	TournamentCreator
	PlayerSearcher
}

// DraftView — снимок состояния черновика для выдачи наружу.
type DraftView struct {
	Draft           models.TournamentDraft `json:"draft"`
	MaxParticipants int                    `json:"max_participants"`
	Submitting      bool                   `json:"submitting"`
	LastCreated     *models.Tournament     `json:"last_created,omitempty"`
}

// draftSession — живое состояние одной сессии оператора: черновик,
// подбор участников и флаг отправки. Все переходы сериализуются мьютексом.
type draftSession struct {
	mu          sync.Mutex
	draft       *models.TournamentDraft
	selection   *ParticipantSelection
	submitting  bool
	lastCreated *models.Tournament
}

// DraftService инкапсулирует жизненный цикл черновика турнира:
// редактирование полей, подбор участников, валидация и отправка.
type DraftService struct {
	api             DraftBackend
	store           DraftStore
	maxParticipants int
	logger          *slog.Logger

	mu       sync.Mutex
	sessions map[int64]*draftSession
}

// NewDraftService создаёт DraftService с внедрением зависимостей.
func NewDraftService(api DraftBackend, store DraftStore, maxParticipants int, logger *slog.Logger) *DraftService {
	return &DraftService{
		api:             api,
		store:           store,
		maxParticipants: maxParticipants,
		logger:          logger,
		sessions:        make(map[int64]*draftSession),
	}
}

// session возвращает живую сессию оператора, при первом обращении
// восстанавливая черновик из хранилища.
func (s *DraftService) session(ctx context.Context, callerID int64) (*draftSession, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[callerID]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	s.mu.Unlock()

	stored, err := s.store.Get(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при загрузке черновика: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Пока мы ходили в хранилище, сессию мог создать параллельный запрос.
	if sess, ok := s.sessions[callerID]; ok {
		return sess, nil
	}

	draft := stored
	if draft == nil {
		draft = models.NewTournamentDraft()
	}
	selection := NewParticipantSelection(s.api, s.maxParticipants)
	selection.setSelected(draft.Participants)

	sess := &draftSession{
		draft:     draft,
		selection: selection,
	}
	s.sessions[callerID] = sess
	return sess, nil
}

// viewLocked собирает снимок; вызывается под sess.mu.
func (sess *draftSession) viewLocked(maxParticipants int) *DraftView {
	draft := *copyDraft(sess.draft)
	draft.Participants = sess.selection.Selected()
	return &DraftView{
		Draft:           draft,
		MaxParticipants: maxParticipants,
		Submitting:      sess.submitting,
		LastCreated:     sess.lastCreated,
	}
}

// View возвращает текущее состояние черновика оператора.
func (s *DraftService) View(ctx context.Context, callerID int64) (*DraftView, error) {
	sess, err := s.session(ctx, callerID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.viewLocked(s.maxParticipants), nil
}

// UpdateFieldsInput — изменяемые поля черновика. nil-поле не трогается.
type UpdateFieldsInput struct {
	Name        *string                `json:"name"`
	Mode        *models.RatingModeCode `json:"mode"`
	ScoringType *models.ScoringType    `json:"scoring_type"`
	PointsLimit *int                   `json:"points_limit"`
	SetsLimit   *int                   `json:"sets_limit"`
}

// UpdateFields изменяет поля черновика. Режим и тип подсчёта проверяются
// сразу, лимиты и имя — при отправке.
func (s *DraftService) UpdateFields(ctx context.Context, callerID int64, input UpdateFieldsInput) (*DraftView, error) {
	sess, err := s.session(ctx, callerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if input.Mode != nil && !input.Mode.IsValid() {
		return nil, ErrDraftInvalidMode
	}
	if input.ScoringType != nil && !input.ScoringType.IsValid() {
		return nil, ErrDraftInvalidScoringType
	}

	if input.Name != nil {
		sess.draft.Name = *input.Name
	}
	if input.Mode != nil {
		sess.draft.Mode = *input.Mode
	}
	if input.ScoringType != nil {
		sess.draft.ScoringType = *input.ScoringType
	}
	if input.PointsLimit != nil {
		sess.draft.PointsLimit = *input.PointsLimit
	}
	if input.SetsLimit != nil {
		sess.draft.SetsLimit = *input.SetsLimit
	}

	if err := s.saveLocked(ctx, callerID, sess); err != nil {
		return nil, err
	}
	return sess.viewLocked(s.maxParticipants), nil
}

// SearchParticipants обновляет строку поиска и возвращает игроков,
// которых ещё можно добавить (уже выбранные отфильтрованы).
func (s *DraftService) SearchParticipants(ctx context.Context, callerID int64, identity backend.Identity, query string) ([]models.Player, error) {
	sess, err := s.session(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return sess.selection.SetQuery(ctx, identity, query)
}

// ToggleParticipant добавляет игрока в выбранные или убирает его оттуда.
func (s *DraftService) ToggleParticipant(ctx context.Context, callerID int64, player models.Player) (*DraftView, error) {
	sess, err := s.session(ctx, callerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.selection.Toggle(player); err != nil {
		return nil, err
	}
	if err := s.saveLocked(ctx, callerID, sess); err != nil {
		return nil, err
	}
	return sess.viewLocked(s.maxParticipants), nil
}

// ReorderParticipants переносит выбранного игрока на новую позицию.
func (s *DraftService) ReorderParticipants(ctx context.Context, callerID int64, from, to int) (*DraftView, error) {
	sess, err := s.session(ctx, callerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.selection.Reorder(from, to); err != nil {
		return nil, err
	}
	if err := s.saveLocked(ctx, callerID, sess); err != nil {
		return nil, err
	}
	return sess.viewLocked(s.maxParticipants), nil
}

// ClearParticipants очищает список выбранных.
func (s *DraftService) ClearParticipants(ctx context.Context, callerID int64) (*DraftView, error) {
	sess, err := s.session(ctx, callerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.selection.Clear()
	if err := s.saveLocked(ctx, callerID, sess); err != nil {
		return nil, err
	}
	return sess.viewLocked(s.maxParticipants), nil
}

// Submit валидирует черновик и отправляет ровно один POST на бэкенд.
// При успехе имя и участники сбрасываются, режим и тип подсчёта остаются.
// При ошибке черновик сохраняется как есть для исправления.
func (s *DraftService) Submit(ctx context.Context, callerID int64, identity backend.Identity) (*models.Tournament, error) {
	sess, err := s.session(ctx, callerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.submitting {
		sess.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	draft := *copyDraft(sess.draft)
	draft.Participants = sess.selection.Selected()

	if err := validateDraft(&draft); err != nil {
		sess.mu.Unlock()
		return nil, err
	}

	input := backend.CreateTournamentInput{
		Name:         draft.TrimmedName(),
		Mode:         draft.Mode,
		ScoringType:  draft.ScoringType,
		Participants: draft.ParticipantIDs(),
	}
	// Заполняется только лимит активного типа подсчёта, второй уходит null.
	switch draft.ScoringType {
	case models.ScoringPoints:
		limit := draft.PointsLimit
		input.PointsLimit = &limit
	case models.ScoringSets:
		limit := draft.SetsLimit
		input.SetsLimit = &limit
	}

	sess.submitting = true
	sess.mu.Unlock()

	tournament, err := s.api.CreateTournament(ctx, identity, input)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.submitting = false

	if err != nil {
		s.logger.Error("не удалось создать турнир",
			slog.Int64("caller", callerID),
			slog.Any("error", err),
		)
		return nil, err
	}

	sess.lastCreated = tournament
	sess.draft.ResetAfterCreate()
	sess.selection.Clear()
	if err := s.saveLocked(ctx, callerID, sess); err != nil {
		// Турнир уже создан; несохранённый сброс черновика не повод
		// отдавать оператору ошибку.
		s.logger.Error("не удалось сохранить черновик после создания",
			slog.Int64("caller", callerID),
			slog.Any("error", err),
		)
	}

	s.logger.Info("турнир создан",
		slog.Int64("caller", callerID),
		slog.Int("tournament_id", tournament.ID),
		slog.String("mode", string(tournament.Mode)),
	)
	return tournament, nil
}

// saveLocked пишет текущее состояние черновика в хранилище;
// вызывается под sess.mu.
func (s *DraftService) saveLocked(ctx context.Context, callerID int64, sess *draftSession) error {
	draft := *copyDraft(sess.draft)
	draft.Participants = sess.selection.Selected()
	if err := s.store.Save(ctx, callerID, &draft); err != nil {
		return fmt.Errorf("ошибка при сохранении черновика: %w", err)
	}
	return nil
}

// validateDraft проверяет правила перед отправкой: непустое имя,
// известный режим, положительный лимит активного типа подсчёта
// и хотя бы один участник.
func validateDraft(d *models.TournamentDraft) error {
	if d.TrimmedName() == "" {
		return ErrDraftNameRequired
	}
	if d.Mode == "" {
		return ErrDraftModeRequired
	}
	if !d.Mode.IsValid() {
		return ErrDraftInvalidMode
	}
	switch d.ScoringType {
	case models.ScoringPoints:
		if d.PointsLimit <= 0 {
			return ErrDraftPointsLimitRequired
		}
	case models.ScoringSets:
		if d.SetsLimit <= 0 {
			return ErrDraftSetsLimitRequired
		}
	default:
		return ErrDraftInvalidScoringType
	}
	if len(d.Participants) == 0 {
		return ErrDraftNoParticipants
	}
	return nil
}
