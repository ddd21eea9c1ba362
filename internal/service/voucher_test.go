package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/srl-logistica/rotaportal/config"
	"github.com/srl-logistica/rotaportal/internal/data"
	"github.com/srl-logistica/rotaportal/internal/domain/model"
	"github.com/srl-logistica/rotaportal/internal/mocks"
	accessmocks "github.com/srl-logistica/rotaportal/internal/mocks/access"
)

func accessTestConfig() config.AccessConfig {
	return config.AccessConfig{
		SessionDuration: 6 * time.Hour,
		IssueValidity:   6 * time.Hour,
		PollInterval:    10 * time.Second,
		CodePrefix:      "ROTA",
		CodeLength:      6,
	}
}

func TestVoucherService_Issue_GeneratesPrefixedCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockVoucherRepository(ctrl)
	broadcast := accessmocks.NewMemoryBroadcaster()
	svc := NewVoucherService(VoucherServiceOptions{Repo: mockRepo, Broadcast: broadcast, Config: accessTestConfig()})

	var inserted model.Voucher
	mockRepo.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, v model.Voucher) error {
			inserted = v
			return nil
		},
	)

	before := time.Now().UTC()
	got, err := svc.Issue(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, inserted.Code, got.Code)
	assert.True(t, strings.HasPrefix(got.Code, "ROTA"))
	assert.Len(t, got.Code, len("ROTA")+6)
	for _, r := range strings.TrimPrefix(got.Code, "ROTA") {
		assert.Contains(t, codeAlphabet, string(r))
	}

	assert.False(t, got.CreatedAt.Before(before))
	assert.Equal(t, got.CreatedAt.Add(6*time.Hour), got.ExpiresAt)
	assert.Equal(t, 1, broadcast.Published())
}

func TestVoucherService_Issue_RetriesOnCodeCollision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockVoucherRepository(ctrl)
	svc := NewVoucherService(VoucherServiceOptions{Repo: mockRepo, Config: accessTestConfig()})

	first := mockRepo.EXPECT().Insert(ctx, gomock.Any()).Return(data.ErrVoucherCodeExists)
	mockRepo.EXPECT().Insert(ctx, gomock.Any()).Return(nil).After(first)

	got, err := svc.Issue(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestVoucherService_Issue_GivesUpAfterRepeatedCollisions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockVoucherRepository(ctrl)
	svc := NewVoucherService(VoucherServiceOptions{Repo: mockRepo, Config: accessTestConfig()})

	mockRepo.EXPECT().Insert(ctx, gomock.Any()).
		Return(data.ErrVoucherCodeExists).
		Times(issueCollisionRetries + 1)

	got, err := svc.Issue(ctx)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestVoucherService_Issue_PropagatesRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockVoucherRepository(ctrl)
	svc := NewVoucherService(VoucherServiceOptions{Repo: mockRepo, Config: accessTestConfig()})

	repoErr := errors.New("connection refused")
	mockRepo.EXPECT().Insert(ctx, gomock.Any()).Return(repoErr)

	got, err := svc.Issue(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
	assert.Nil(t, got)
}

func TestVoucherService_Redeem_NormalizesCodeBeforeBurn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockVoucherRepository(ctrl)
	broadcast := accessmocks.NewMemoryBroadcaster()
	svc := NewVoucherService(VoucherServiceOptions{Repo: mockRepo, Broadcast: broadcast, Config: accessTestConfig()})

	burned := &model.Voucher{Code: "ROTA1A2B3C"}
	mockRepo.EXPECT().Burn(ctx, "ROTA1A2B3C").Return(burned, nil)

	got, err := svc.Redeem(ctx, "  rota1a2b3c  ")
	require.NoError(t, err)
	assert.Equal(t, burned, got)
	assert.Equal(t, 1, broadcast.Published())
}

func TestVoucherService_Redeem_UnknownCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockVoucherRepository(ctrl)
	broadcast := accessmocks.NewMemoryBroadcaster()
	svc := NewVoucherService(VoucherServiceOptions{Repo: mockRepo, Broadcast: broadcast, Config: accessTestConfig()})

	mockRepo.EXPECT().Burn(ctx, "ROTAZZZZZZ").Return(nil, data.ErrVoucherInvalidOrUsed)

	got, err := svc.Redeem(ctx, "ROTAZZZZZZ")
	assert.ErrorIs(t, err, ErrVoucherInvalidOrUsed)
	assert.Nil(t, got)
	assert.Zero(t, broadcast.Published())
}

func TestVoucherService_Redeem_MalformedCodeSkipsRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockVoucherRepository(ctrl)
	svc := NewVoucherService(VoucherServiceOptions{Repo: mockRepo, Config: accessTestConfig()})

	// No Burn expectation: malformed input never reaches the repository,
	// and the caller sees the same answer as for an unknown code.
	for _, raw := range []string{"", "   ", "ab"} {
		got, err := svc.Redeem(ctx, raw)
		assert.ErrorIs(t, err, ErrVoucherInvalidOrUsed)
		assert.Nil(t, got)
	}
}

func TestVoucherService_Revoke_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockVoucherRepository(ctrl)
	broadcast := accessmocks.NewMemoryBroadcaster()
	svc := NewVoucherService(VoucherServiceOptions{Repo: mockRepo, Broadcast: broadcast, Config: accessTestConfig()})

	mockRepo.EXPECT().Delete(ctx, "ROTA1A2B3C").Return(true, nil)
	removed, err := svc.Revoke(ctx, "rota1a2b3c")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, broadcast.Published())

	mockRepo.EXPECT().Delete(ctx, "ROTA1A2B3C").Return(false, nil)
	removed, err = svc.Revoke(ctx, "ROTA1A2B3C")
	require.NoError(t, err)
	assert.False(t, removed)
	// Nothing changed, so no second refresh
	assert.Equal(t, 1, broadcast.Published())
}

func TestVoucherService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockVoucherRepository(ctrl)
	svc := NewVoucherService(VoucherServiceOptions{Repo: mockRepo, Config: accessTestConfig()})

	want := []*model.Voucher{{Code: "ROTAAAAAAA"}, {Code: "ROTABBBBBB"}}
	mockRepo.EXPECT().List(ctx).Return(want, nil)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVoucherService_BroadcastFailureIsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockVoucherRepository(ctrl)
	broadcast := accessmocks.NewMemoryBroadcaster()
	broadcast.PublishErr = errors.New("redis down")
	svc := NewVoucherService(VoucherServiceOptions{Repo: mockRepo, Broadcast: broadcast, Config: accessTestConfig()})

	mockRepo.EXPECT().Insert(ctx, gomock.Any()).Return(nil)

	got, err := svc.Issue(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
}
