package aggregate

import (
	"context"
	"errors"
	"testing"

	"recipe-aggregator/internal/core/source"
	"recipe-aggregator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRandomBatchCollectsResults(t *testing.T) {
	var calls int
	fetch := func(ctx context.Context) (*common.Recipe, error) {
		calls++
		return &common.Recipe{ID: int64(calls), Title: "Receta"}, nil
	}

	recipes, err := FetchRandomBatch(context.Background(), 5, fetch)
	require.NoError(t, err)
	assert.Len(t, recipes, 5)
	assert.Equal(t, 5, calls)
}

func TestFetchRandomBatchSkipsFailures(t *testing.T) {
	// 單次失敗不影響整批，回傳部分結果
	var calls int
	fetch := func(ctx context.Context) (*common.Recipe, error) {
		calls++
		if calls%2 == 0 {
			return nil, errors.New("upstream hiccup")
		}
		return &common.Recipe{ID: int64(calls)}, nil
	}

	recipes, err := FetchRandomBatch(context.Background(), 5, fetch)
	require.NoError(t, err)
	assert.Len(t, recipes, 3)
}

func TestFetchRandomBatchSkipsNilResults(t *testing.T) {
	fetch := func(ctx context.Context) (*common.Recipe, error) {
		return nil, nil
	}

	_, err := FetchRandomBatch(context.Background(), 5, fetch)
	require.Error(t, err)
	assert.True(t, source.IsEmpty(err))
}

func TestFetchRandomBatchAllFailures(t *testing.T) {
	cause := errors.New("connection refused")
	fetch := func(ctx context.Context) (*common.Recipe, error) {
		return nil, cause
	}

	_, err := FetchRandomBatch(context.Background(), 5, fetch)
	require.Error(t, err)
	assert.True(t, source.IsTransport(err))
	assert.ErrorIs(t, err, cause)
}
