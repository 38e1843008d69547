package kids

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-aggregator/internal/core/source"
	"recipe-aggregator/internal/infrastructure/config"
	"recipe-aggregator/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Client 兒童食譜來源客戶端（API Ninjas）
// 上游只支援固定查詢，搜尋靠本地過濾，因此回應走短暫快取
type Client struct {
	api   *resty.Client
	query string
	cache *source.ResponseCache
}

// kidsRecipe 上游食譜結構
type kidsRecipe struct {
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"` // 逗號分隔字串
	Servings     string `json:"servings"`
	Instructions string `json:"instructions"`
	Image        string `json:"image"`
}

// NewClient 創建兒童食譜客戶端
func NewClient(cfg *config.Config) *Client {
	api := resty.New().
		SetBaseURL(cfg.Kids.BaseURL).
		SetTimeout(cfg.Kids.Timeout).
		SetHeader("X-Api-Key", cfg.Kids.APIKey)

	return &Client{
		api:   api,
		query: cfg.Kids.Query,
		cache: source.NewResponseCache(cfg.Kids.CacheTTL),
	}
}

// Fetch 取得兒童食譜清單
func (c *Client) Fetch(ctx context.Context) ([]common.Recipe, error) {
	raw, err := c.fetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(raw), nil
}

// Search 取得清單後在本地以子字串過濾標題或食材
// 查詢為空時回傳全部
func (c *Client) Search(ctx context.Context, query string) ([]common.Recipe, error) {
	raw, err := c.fetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return mapAll(raw), nil
	}

	needle := strings.ToLower(query)
	filtered := make([]kidsRecipe, 0, len(raw))
	for _, r := range raw {
		if strings.Contains(strings.ToLower(r.Title), needle) ||
			strings.Contains(strings.ToLower(r.Ingredients), needle) {
			filtered = append(filtered, r)
		}
	}
	return mapAll(filtered), nil
}

// fetchRaw 取得上游回應，命中快取時不打外部 API
func (c *Client) fetchRaw(ctx context.Context) ([]kidsRecipe, error) {
	cacheKey := "kids:" + c.query
	if cached, ok := c.cache.Get(cacheKey); ok {
		if raw, ok := cached.([]kidsRecipe); ok {
			return raw, nil
		}
	}

	var raw []kidsRecipe
	start := time.Now()
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParam("query", c.query).
		SetResult(&raw).
		Get("/recipe")
	common.LogSourceCall("api-ninjas", "/recipe", time.Since(start), err)
	if err != nil {
		return nil, source.NewTransport("", err)
	}
	if resp.IsError() {
		return nil, source.NewTransport("", fmt.Errorf("kids API returned status %d", resp.StatusCode()))
	}

	c.cache.Set(cacheKey, raw)
	return raw, nil
}

// mapAll 將上游食譜映射到領域模型
func mapAll(raw []kidsRecipe) []common.Recipe {
	recipes := make([]common.Recipe, 0, len(raw))
	for _, r := range raw {
		recipes = append(recipes, mapRecipe(r))
	}
	return recipes
}

// mapRecipe 映射單筆食譜
// 上游沒有 id，一律補 0；食材逗號字串切成清單
func mapRecipe(r kidsRecipe) common.Recipe {
	return common.Recipe{
		ID:           0,
		Title:        common.OrDefault(r.Title, common.DefaultTitle),
		Description:  common.DescriptionKids,
		Ingredients:  common.SplitList(r.Ingredients),
		Instructions: common.OrDefault(r.Instructions, common.DefaultInstructions),
		ImageURL:     r.Image,
	}
}
