package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/hashrest-go/internal/core/domain"
	"github.com/yndnr/hashrest-go/internal/core/service/mocks"
	"github.com/yndnr/hashrest-go/internal/telemetry/metric"
)

func TestProofService_RecordsFoundSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mocks.NewMockSearchRecorder(ctrl)

	rec.EXPECT().ObserveSearch(metric.OutcomeFound, 1, gomock.Any(), gomock.Any()).Times(1)

	svc := NewProofService(WithRecorder(rec))
	proof, err := svc.Prove(context.Background(), 1, "http://localhost:4710/greet")
	require.NoError(t, err)
	assert.Equal(t, 1, proof.Difficulty)
	assert.Equal(t, "http://localhost:4710/greet", proof.Target)
}

func TestProofService_RecordsRejectedArguments(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mocks.NewMockSearchRecorder(ctrl)

	rec.EXPECT().ObserveSearch(metric.OutcomeInvalid, 70, uint64(0), gomock.Any()).Times(1)

	_, err := NewProofService(WithRecorder(rec)).Prove(context.Background(), 70, "t")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "HR-POW-4000", de.Code)
}

func TestProofService_RecordsEveryProveAllSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mocks.NewMockSearchRecorder(ctrl)

	rec.EXPECT().ObserveSearch(metric.OutcomeFound, 0, uint64(1), gomock.Any()).Times(5)

	reqs := make([]ProofRequest, 5)
	proofs, err := NewProofService(WithRecorder(rec), WithConcurrency(3)).ProveAll(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, proofs, 5)
	for _, p := range proofs {
		assert.Equal(t, uint64(0), p.Counter)
	}
}
