package kids

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"recipe-aggregator/internal/core/source"
	"recipe-aggregator/internal/infrastructure/config"
	"recipe-aggregator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

const kidsPayload = `[
	{
		"title": "Mac & Cheese",
		"ingredients": "pasta, cheese, milk",
		"servings": "4",
		"instructions": "",
		"image": ""
	},
	{
		"title": "Mini Pizzas",
		"ingredients": "dough, tomato, mozzarella",
		"servings": "6",
		"instructions": "Bake at 200C for 10 minutes.",
		"image": "https://example.test/pizza.jpg"
	}
]`

func newTestClient(handler http.Handler, cacheTTL time.Duration) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	cfg := &config.Config{}
	cfg.Kids.BaseURL = server.URL
	cfg.Kids.APIKey = "test-key"
	cfg.Kids.Query = "kids"
	cfg.Kids.Timeout = 5 * time.Second
	cfg.Kids.CacheTTL = cacheTTL
	return NewClient(cfg), server
}

func TestFetchMapsRecipes(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipe", r.URL.Path)
		assert.Equal(t, "kids", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(kidsPayload))
	}), 0)
	defer server.Close()

	recipes, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	// 上游沒有 id 與說明時補上預設值，逗號字串切成清單
	assert.Equal(t, common.Recipe{
		ID:           0,
		Title:        "Mac & Cheese",
		Description:  common.DescriptionKids,
		Ingredients:  []string{"pasta", "cheese", "milk"},
		Instructions: common.DefaultInstructions,
		ImageURL:     "",
	}, recipes[0])

	assert.Equal(t, "Bake at 200C for 10 minutes.", recipes[1].Instructions)
	assert.Equal(t, "https://example.test/pizza.jpg", recipes[1].ImageURL)
}

func TestSearchFiltersLocally(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(kidsPayload))
	}), 0)
	defer server.Close()

	// 標題比對
	recipes, err := client.Search(context.Background(), "mac")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Mac & Cheese", recipes[0].Title)

	// 食材比對
	recipes, err = client.Search(context.Background(), "tomato")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Mini Pizzas", recipes[0].Title)

	// 空白查詢回傳全部
	recipes, err = client.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	// 沒有任何比對結果
	recipes, err = client.Search(context.Background(), "sushi")
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestSearchUsesCache(t *testing.T) {
	var calls int64
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(kidsPayload))
	}), time.Minute)
	defer server.Close()

	_, err := client.Fetch(context.Background())
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "mac")
	require.NoError(t, err)
	_, err = client.Search(context.Background(), "tomato")
	require.NoError(t, err)

	// 快取生效後只打一次外部 API
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestFetchTransportError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}), 0)
	defer server.Close()

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, source.IsTransport(err))
}
