package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaONme/padel-admin/backend"
	"github.com/shaONme/padel-admin/models"
)

// fakeDraftBackend фиксирует отправленные запросы создания турнира.
type fakeDraftBackend struct {
	fakeSearcher

	mu         sync.Mutex
	created    []backend.CreateTournamentInput
	createResp *models.Tournament
	createErr  error
	// block: если не nil, CreateTournament ждёт закрытия канала
	createBlock chan struct{}
}

func (f *fakeDraftBackend) CreateTournament(_ context.Context, _ backend.Identity, input backend.CreateTournamentInput) (*models.Tournament, error) {
	f.mu.Lock()
	f.created = append(f.created, input)
	block := f.createBlock
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResp, nil
}

func (f *fakeDraftBackend) createCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func newDraftService(api *fakeDraftBackend) *DraftService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDraftService(api, NewMemoryDraftStore(), 20, logger)
}

const caller = int64(42)

func fillValidDraft(t *testing.T, s *DraftService) {
	t.Helper()
	ctx := context.Background()

	name := "Cup"
	mode := models.ModeMexicanoMix
	scoring := models.ScoringPoints
	limit := 16
	_, err := s.UpdateFields(ctx, caller, UpdateFieldsInput{
		Name:        &name,
		Mode:        &mode,
		ScoringType: &scoring,
		PointsLimit: &limit,
	})
	require.NoError(t, err)

	_, err = s.ToggleParticipant(ctx, caller, player(1, "Анна"))
	require.NoError(t, err)
	_, err = s.ToggleParticipant(ctx, caller, player(2, "Борис"))
	require.NoError(t, err)
}

func TestSubmitSendsSingleRequestWithSelectionOrder(t *testing.T) {
	api := &fakeDraftBackend{
		createResp: &models.Tournament{ID: 7, Name: "Cup", Mode: models.ModeMexicanoMix, Status: "open"},
	}
	s := newDraftService(api)
	fillValidDraft(t, s)

	tournament, err := s.Submit(context.Background(), caller, backend.Identity{TgID: caller})
	require.NoError(t, err)
	assert.Equal(t, 7, tournament.ID)

	require.Equal(t, 1, api.createCalls())
	sent := api.created[0]
	assert.Equal(t, "Cup", sent.Name)
	assert.Equal(t, models.ModeMexicanoMix, sent.Mode)
	assert.Equal(t, models.ScoringPoints, sent.ScoringType)
	// участники уходят в порядке выбора
	assert.Equal(t, []int{1, 2}, sent.Participants)
	// активный лимит заполнен, неактивный — null
	require.NotNil(t, sent.PointsLimit)
	assert.Equal(t, 16, *sent.PointsLimit)
	assert.Nil(t, sent.SetsLimit)
}

func TestSubmitTrimsName(t *testing.T) {
	api := &fakeDraftBackend{createResp: &models.Tournament{ID: 1}}
	s := newDraftService(api)
	fillValidDraft(t, s)

	name := "  Найскок 21.12  "
	_, err := s.UpdateFields(context.Background(), caller, UpdateFieldsInput{Name: &name})
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), caller, backend.Identity{})
	require.NoError(t, err)
	assert.Equal(t, "Найскок 21.12", api.created[0].Name)
}

func TestSubmitResetsNameAndParticipantsKeepsModeAndScoring(t *testing.T) {
	api := &fakeDraftBackend{
		createResp: &models.Tournament{ID: 7, Status: "open"},
	}
	s := newDraftService(api)
	fillValidDraft(t, s)

	_, err := s.Submit(context.Background(), caller, backend.Identity{})
	require.NoError(t, err)

	view, err := s.View(context.Background(), caller)
	require.NoError(t, err)
	assert.Empty(t, view.Draft.Name)
	assert.Empty(t, view.Draft.Participants)
	assert.Equal(t, models.ModeMexicanoMix, view.Draft.Mode)
	assert.Equal(t, models.ScoringPoints, view.Draft.ScoringType)
	require.NotNil(t, view.LastCreated)
	assert.Equal(t, 7, view.LastCreated.ID)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	api := &fakeDraftBackend{
		createErr: &backend.APIError{StatusCode: 422, Message: "duplicate participant"},
	}
	s := newDraftService(api)
	fillValidDraft(t, s)

	_, err := s.Submit(context.Background(), caller, backend.Identity{})
	require.Error(t, err)
	// текст причины доходит до оператора как есть
	assert.Equal(t, "duplicate participant", err.Error())

	view, vErr := s.View(context.Background(), caller)
	require.NoError(t, vErr)
	assert.Equal(t, "Cup", view.Draft.Name)
	assert.Len(t, view.Draft.Participants, 2)
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(t *testing.T, s *DraftService)
		wantErr error
	}{
		{
			name: "empty name",
			mutate: func(t *testing.T, s *DraftService) {
				name := "   "
				_, err := s.UpdateFields(ctx, caller, UpdateFieldsInput{Name: &name})
				require.NoError(t, err)
			},
			wantErr: ErrDraftNameRequired,
		},
		{
			name: "no participants",
			mutate: func(t *testing.T, s *DraftService) {
				_, err := s.ClearParticipants(ctx, caller)
				require.NoError(t, err)
			},
			wantErr: ErrDraftNoParticipants,
		},
		{
			name: "points limit not positive",
			mutate: func(t *testing.T, s *DraftService) {
				limit := 0
				_, err := s.UpdateFields(ctx, caller, UpdateFieldsInput{PointsLimit: &limit})
				require.NoError(t, err)
			},
			wantErr: ErrDraftPointsLimitRequired,
		},
		{
			name: "sets limit not positive",
			mutate: func(t *testing.T, s *DraftService) {
				scoring := models.ScoringSets
				_, err := s.UpdateFields(ctx, caller, UpdateFieldsInput{ScoringType: &scoring})
				require.NoError(t, err)
			},
			wantErr: ErrDraftSetsLimitRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeDraftBackend{createResp: &models.Tournament{ID: 1}}
			s := newDraftService(api)
			fillValidDraft(t, s)
			tt.mutate(t, s)

			_, err := s.Submit(ctx, caller, backend.Identity{})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, api.createCalls(), "невалидный черновик не должен уходить на бэкенд")
		})
	}
}

func TestUpdateFieldsRejectsUnknownMode(t *testing.T) {
	s := newDraftService(&fakeDraftBackend{})
	mode := models.RatingModeCode("tennis")
	_, err := s.UpdateFields(context.Background(), caller, UpdateFieldsInput{Mode: &mode})
	require.ErrorIs(t, err, ErrDraftInvalidMode)
}

func TestSubmitInFlightRejected(t *testing.T) {
	block := make(chan struct{})
	api := &fakeDraftBackend{
		createResp:  &models.Tournament{ID: 1},
		createBlock: block,
	}
	s := newDraftService(api)
	fillValidDraft(t, s)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), caller, backend.Identity{})
		done <- err
	}()

	// Дождёмся, пока первая отправка повиснет в полёте
	for api.createCalls() == 0 {
		time.Sleep(time.Millisecond)
	}

	_, err := s.Submit(context.Background(), caller, backend.Identity{})
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.createCalls())
}

func TestDraftRestoredFromStore(t *testing.T) {
	store := NewMemoryDraftStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := &fakeDraftBackend{}

	s1 := NewDraftService(api, store, 20, logger)
	name := "Cup"
	_, err := s1.UpdateFields(context.Background(), caller, UpdateFieldsInput{Name: &name})
	require.NoError(t, err)
	_, err = s1.ToggleParticipant(context.Background(), caller, player(1, "Анна"))
	require.NoError(t, err)

	// Новый экземпляр сервиса поверх того же хранилища видит черновик
	s2 := NewDraftService(api, store, 20, logger)
	view, err := s2.View(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, "Cup", view.Draft.Name)
	require.Len(t, view.Draft.Participants, 1)
	assert.Equal(t, 1, view.Draft.Participants[0].ID)
}
