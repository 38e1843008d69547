package aggregate

import (
	"context"

	"recipe-aggregator/internal/core/source"
	"recipe-aggregator/internal/pkg/common"

	"go.uber.org/zap"
)

// RandomFetcher 取得一筆隨機食譜；回傳 (nil, nil) 表示沒有結果
type RandomFetcher func(ctx context.Context) (*common.Recipe, error)

// FetchRandomBatch 以 n 次獨立調用組出隨機推薦批次
// 單次失敗直接跳過，只有整批一筆都沒有時才回報錯誤：
// 全部失敗於傳輸 → 傳輸錯誤；調用都成功但沒有結果 → 空結果錯誤
func FetchRandomBatch(ctx context.Context, n int, fetch RandomFetcher) ([]common.Recipe, error) {
	recipes := make([]common.Recipe, 0, n)
	var lastErr error

	for i := 0; i < n; i++ {
		recipe, err := fetch(ctx)
		if err != nil {
			lastErr = err
			common.LogWarn("隨機食譜調用失敗，跳過",
				zap.Int("迭代", i),
				zap.Error(err),
			)
			continue
		}
		if recipe == nil {
			continue
		}
		recipes = append(recipes, *recipe)
	}

	if len(recipes) == 0 {
		if lastErr != nil {
			return nil, source.NewTransport(msgRandomFailed, lastErr)
		}
		return nil, source.NewEmpty(msgRandomEmpty)
	}

	return recipes, nil
}
