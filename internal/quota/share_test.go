package quota

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbecker/reloquiz/internal/quiz"
)

type stubShareStore struct {
	counts map[int64]int
	err    error
}

func (s *stubShareStore) IncrementShareCount(_ context.Context, id int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.counts == nil {
		s.counts = map[int64]int{}
	}
	s.counts[id]++
	return s.counts[id] == 1, nil
}

type stubGranter struct {
	granted map[string]int
	status  quiz.AttemptStatus
}

func (s *stubGranter) AddBonus(_ context.Context, openid string, n int) error {
	if s.granted == nil {
		s.granted = map[string]int{}
	}
	s.granted[openid] += n
	return nil
}

func (s *stubGranter) Check(_ context.Context, openid string) (quiz.AttemptStatus, error) {
	return s.status, nil
}

func TestRewardGrantsBonusOnFirstShare(t *testing.T) {
	granter := &stubGranter{status: quiz.AttemptStatus{CanAnswer: true, Remaining: 2}}
	rewarder := NewShareRewarder(&stubShareStore{}, granter, zerolog.New(io.Discard))

	result, err := rewarder.Reward(context.Background(), 7, "openid-1")
	require.NoError(t, err)
	assert.True(t, result.Rewarded)
	assert.Equal(t, 1, granter.granted["openid-1"])
	assert.Equal(t, 2, result.Status.Remaining)
}

func TestRewardIsIdempotent(t *testing.T) {
	granter := &stubGranter{}
	rewarder := NewShareRewarder(&stubShareStore{}, granter, zerolog.New(io.Discard))

	_, err := rewarder.Reward(context.Background(), 7, "openid-1")
	require.NoError(t, err)

	result, err := rewarder.Reward(context.Background(), 7, "openid-1")
	require.NoError(t, err)
	assert.False(t, result.Rewarded)
	assert.Equal(t, "share bonus already claimed", result.Message)
	assert.Equal(t, 1, granter.granted["openid-1"], "bonus granted only once")
}

func TestRewardPropagatesStoreFailure(t *testing.T) {
	rewarder := NewShareRewarder(&stubShareStore{err: errors.New("db down")}, &stubGranter{}, zerolog.New(io.Discard))

	_, err := rewarder.Reward(context.Background(), 7, "openid-1")
	assert.ErrorContains(t, err, "record share")
}
