package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaONme/padel-admin/models"
)

type fakeRatingSource struct {
	mu         sync.Mutex
	modes      []models.RatingMode
	modesErr   error
	modesCalls int
	tables     map[models.RatingModeCode][]models.PlayerRatingRow
	tableErr   error
	// block: режимы, для которых ответ таблицы задерживается
	block map[models.RatingModeCode]chan struct{}
}

func (f *fakeRatingSource) RatingModes(context.Context) ([]models.RatingMode, error) {
	f.mu.Lock()
	f.modesCalls++
	f.mu.Unlock()
	if f.modesErr != nil {
		return nil, f.modesErr
	}
	return f.modes, nil
}

func (f *fakeRatingSource) RatingTable(_ context.Context, mode models.RatingModeCode) ([]models.PlayerRatingRow, error) {
	f.mu.Lock()
	block := f.block[mode]
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.tableErr != nil {
		return nil, f.tableErr
	}
	return f.tables[mode], nil
}

func ratingRow(id int, name string) models.PlayerRatingRow {
	return models.PlayerRatingRow{PlayerID: id, DisplayName: name, CurrentRating: 1500, GamesPlayed: 3}
}

func TestModesLoadedOnce(t *testing.T) {
	api := &fakeRatingSource{modes: []models.RatingMode{
		{Code: models.ModeAmericanoClassic, Name: "Americano"},
	}}
	s := NewRatingService(api)

	for i := 0; i < 3; i++ {
		modes, err := s.Modes(context.Background())
		require.NoError(t, err)
		require.Len(t, modes, 1)
	}
	assert.Equal(t, 1, api.modesCalls)
}

func TestModesErrorNotCached(t *testing.T) {
	api := &fakeRatingSource{modesErr: errors.New("backend down")}
	s := NewRatingService(api)

	_, err := s.Modes(context.Background())
	require.Error(t, err)

	api.modesErr = nil
	api.modes = []models.RatingMode{{Code: models.ModeKingOfCourt, Name: "Царь корта"}}
	modes, err := s.Modes(context.Background())
	require.NoError(t, err)
	assert.Len(t, modes, 1)
}

func TestSelectUnknownMode(t *testing.T) {
	s := NewRatingService(&fakeRatingSource{})
	_, err := s.Select(context.Background(), 1, "tennis")
	require.ErrorIs(t, err, ErrUnknownRatingMode)
}

func TestSelectEmptyRowsIsEmptyStateNotError(t *testing.T) {
	api := &fakeRatingSource{
		modes:  []models.RatingMode{{Code: models.ModeAmericanoClassic, Name: "Americano"}},
		tables: map[models.RatingModeCode][]models.PlayerRatingRow{},
	}
	s := NewRatingService(api)

	view, err := s.Select(context.Background(), 1, models.ModeAmericanoClassic)
	require.NoError(t, err)
	assert.Equal(t, RatingStateEmpty, view.State)
	assert.Empty(t, view.Rows)
	assert.Empty(t, view.Error)
}

func TestSelectLoadedState(t *testing.T) {
	api := &fakeRatingSource{
		tables: map[models.RatingModeCode][]models.PlayerRatingRow{
			models.ModeMexicanoMix: {ratingRow(1, "Анна"), ratingRow(2, "Борис")},
		},
	}
	s := NewRatingService(api)

	view, err := s.Select(context.Background(), 1, models.ModeMexicanoMix)
	require.NoError(t, err)
	assert.Equal(t, RatingStateLoaded, view.State)
	assert.Equal(t, models.ModeMexicanoMix, view.Mode)
	assert.Len(t, view.Rows, 2)
}

func TestSelectErrorState(t *testing.T) {
	api := &fakeRatingSource{tableErr: errors.New("HTTP 500")}
	s := NewRatingService(api)

	view, err := s.Select(context.Background(), 1, models.ModeAmericanoTeam)
	require.NoError(t, err)
	assert.Equal(t, RatingStateError, view.State)
	assert.Empty(t, view.Rows)
	assert.Equal(t, "HTTP 500", view.Error)
}

func TestStaleModeResponseDiscarded(t *testing.T) {
	block := make(chan struct{})
	api := &fakeRatingSource{
		tables: map[models.RatingModeCode][]models.PlayerRatingRow{
			models.ModeAmericanoClassic: {ratingRow(1, "Старый режим")},
			models.ModeMexicanoMix:      {ratingRow(2, "Новый режим")},
		},
		block: map[models.RatingModeCode]chan struct{}{
			models.ModeAmericanoClassic: block,
		},
	}
	s := NewRatingService(api)

	done := make(chan *RatingView, 1)
	go func() {
		view, _ := s.Select(context.Background(), 1, models.ModeAmericanoClassic)
		done <- view
	}()

	// Дождёмся, пока первый выбор перейдёт в loading
	for s.View(1).State != RatingStateLoading {
		time.Sleep(time.Millisecond)
	}

	view, err := s.Select(context.Background(), 1, models.ModeMexicanoMix)
	require.NoError(t, err)
	require.Equal(t, RatingStateLoaded, view.State)

	// Отпускаем устаревший ответ: он не должен перетереть новый режим
	close(block)
	<-done

	final := s.View(1)
	assert.Equal(t, models.ModeMexicanoMix, final.Mode)
	require.Len(t, final.Rows, 1)
	assert.Equal(t, 2, final.Rows[0].PlayerID)
}

func TestViewsAreIsolatedPerCaller(t *testing.T) {
	api := &fakeRatingSource{
		tables: map[models.RatingModeCode][]models.PlayerRatingRow{
			models.ModeKingOfCourt: {ratingRow(1, "Анна")},
		},
	}
	s := NewRatingService(api)

	_, err := s.Select(context.Background(), 1, models.ModeKingOfCourt)
	require.NoError(t, err)

	assert.Equal(t, RatingStateLoaded, s.View(1).State)
	assert.Equal(t, RatingStateIdle, s.View(2).State)
}
