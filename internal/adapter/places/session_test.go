package places

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yuvia/flight-results/internal/domain"
)

func TestSession_PassesThroughLatest(t *testing.T) {
	ctrl := gomock.NewController(t)
	suggester := domain.NewMockPlaceSuggester(ctrl)
	want := []domain.Place{{City: "Москва", Code: "MOW"}}
	suggester.EXPECT().Suggest(gomock.Any(), "мос").Return(want, nil)

	session := NewSession(suggester)
	got, err := session.Suggest(context.Background(), "мос")

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, uint64(1), session.Generation())
}

func TestSession_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	suggester := domain.NewMockPlaceSuggester(ctrl)
	boom := errors.New("boom")
	suggester.EXPECT().Suggest(gomock.Any(), "ber").Return(nil, boom)

	_, err := NewSession(suggester).Suggest(context.Background(), "ber")
	assert.ErrorIs(t, err, boom)
}

func TestSession_NewerQuerySupersedesOlder(t *testing.T) {
	ctrl := gomock.NewController(t)
	suggester := domain.NewMockPlaceSuggester(ctrl)

	started := make(chan struct{})
	suggester.EXPECT().Suggest(gomock.Any(), "mo").DoAndReturn(
		func(ctx context.Context, _ string) ([]domain.Place, error) {
			close(started)
			<-ctx.Done()
			return []domain.Place{{Code: "OLD"}}, nil
		})
	suggester.EXPECT().Suggest(gomock.Any(), "mow").Return([]domain.Place{{Code: "MOW"}}, nil)

	session := NewSession(suggester)

	type result struct {
		places []domain.Place
		err    error
	}
	older := make(chan result, 1)
	go func() {
		places, err := session.Suggest(context.Background(), "mo")
		older <- result{places, err}
	}()

	<-started
	latest, err := session.Suggest(context.Background(), "mow")
	require.NoError(t, err)
	assert.Equal(t, []domain.Place{{Code: "MOW"}}, latest)

	select {
	case res := <-older:
		assert.ErrorIs(t, res.err, ErrSuperseded)
		assert.Nil(t, res.places)
	case <-time.After(2 * time.Second):
		t.Fatal("older query was not cancelled")
	}
	assert.Equal(t, uint64(2), session.Generation())
}
