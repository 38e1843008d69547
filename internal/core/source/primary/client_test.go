package primary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-aggregator/internal/core/source"
	"recipe-aggregator/internal/infrastructure/config"
	"recipe-aggregator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(primaryHandler, mealdbHandler http.Handler) (*Client, func()) {
	primaryServer := httptest.NewServer(primaryHandler)
	mealdbServer := httptest.NewServer(mealdbHandler)

	cfg := &config.Config{}
	cfg.Primary.BaseURL = primaryServer.URL
	cfg.Primary.Timeout = 5 * time.Second
	cfg.MealDB.BaseURL = mealdbServer.URL
	cfg.MealDB.Timeout = 5 * time.Second

	return NewClient(cfg), func() {
		primaryServer.Close()
		mealdbServer.Close()
	}
}

func noHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
}

func TestAllNormalizesRecipes(t *testing.T) {
	client, cleanup := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"title":"Tacos","description":"Mexicana","instructions":"Cocinar la carne."},
			{"id":2,"title":"","instructions":""}
		]`))
	}), noHandler())
	defer cleanup()

	recipes, err := client.All(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	assert.Equal(t, "Tacos", recipes[0].Title)
	assert.Equal(t, common.DefaultTitle, recipes[1].Title)
	assert.Equal(t, common.DefaultInstructions, recipes[1].Instructions)
}

func TestByIngredientsJoinsQuery(t *testing.T) {
	client, cleanup := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/external", r.URL.Path)
		assert.Equal(t, "pollo,arroz", r.URL.Query().Get("ingredients"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":3,"title":"Arroz con pollo"}]`))
	}), noHandler())
	defer cleanup()

	recipes, err := client.ByIngredients(context.Background(), []string{"pollo", "arroz"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Arroz con pollo", recipes[0].Title)
}

func TestByIDNotFound(t *testing.T) {
	client, cleanup := newTestClient(noHandler(), noHandler())
	defer cleanup()

	_, err := client.ByID(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, source.IsEmpty(err))
}

func TestCreateSendsBody(t *testing.T) {
	client, cleanup := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/recipes", r.URL.Path)

		var body common.Recipe
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Sopa", body.Title)

		body.ID = 10
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}), noHandler())
	defer cleanup()

	created, err := client.Create(context.Background(), common.Recipe{Title: "Sopa", Instructions: "Hervir."})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, "Sopa", created.Title)
}

func TestRandomMealMapping(t *testing.T) {
	client, cleanup := newTestClient(noHandler(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/random.php", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meals":[{
			"idMeal":"52772",
			"strMeal":"Teriyaki Chicken",
			"strCategory":"Chicken",
			"strInstructions":"Preheat oven to 350F.",
			"strMealThumb":"https://example.test/teriyaki.jpg"
		}]}`))
	}))
	defer cleanup()

	recipe, err := client.RandomMeal(context.Background())
	require.NoError(t, err)
	require.NotNil(t, recipe)

	assert.Equal(t, int64(52772), recipe.ID)
	assert.Equal(t, "Teriyaki Chicken", recipe.Title)
	assert.Equal(t, "Chicken", recipe.Description)
}

func TestRandomMealEmpty(t *testing.T) {
	// 回應正常但沒有結果 → (nil, nil)，不是錯誤
	client, cleanup := newTestClient(noHandler(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meals":null}`))
	}))
	defer cleanup()

	recipe, err := client.RandomMeal(context.Background())
	require.NoError(t, err)
	assert.Nil(t, recipe)
}

func TestLoginSuccessRequiresUserID(t *testing.T) {
	client, cleanup := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"userId":"u-123","message":"ok"}`))
	}), noHandler())
	defer cleanup()

	result, err := client.Login(context.Background(), "ana@example.test", "secreto")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "u-123", result.UserID)
}

func TestLoginUnauthorizedIsNotTransport(t *testing.T) {
	// 401 是合法的業務回應，不能當傳輸失敗
	client, cleanup := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Credenciales incorrectas"}`))
	}), noHandler())
	defer cleanup()

	result, err := client.Login(context.Background(), "ana@example.test", "mal")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Credenciales incorrectas", result.Message)
}
