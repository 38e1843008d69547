package primary

import (
	"context"
	"fmt"
	"net/http"

	"recipe-aggregator/internal/core/source"
	"recipe-aggregator/internal/infrastructure/config"
	"recipe-aggregator/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Client 主要食譜後端客戶端
// 同時負責 TheMealDB 的單筆隨機食譜（原本掛在同一個 API 介面上）
type Client struct {
	api    *resty.Client
	mealdb *resty.Client
}

// mealDBResponse TheMealDB 回應結構
type mealDBResponse struct {
	Meals []mealDBRecipe `json:"meals"`
}

// mealDBRecipe TheMealDB 食譜結構
type mealDBRecipe struct {
	IDMeal          string `json:"idMeal"`
	StrMeal         string `json:"strMeal"`
	StrCategory     string `json:"strCategory"`
	StrArea         string `json:"strArea"`
	StrInstructions string `json:"strInstructions"`
	StrMealThumb    string `json:"strMealThumb"`
}

// AuthRequest 登入/註冊請求
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult 登入/註冊回應
type AuthResult struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// NewClient 創建主要後端客戶端
func NewClient(cfg *config.Config) *Client {
	api := resty.New().
		SetBaseURL(cfg.Primary.BaseURL).
		SetTimeout(cfg.Primary.Timeout).
		SetHeader("Content-Type", "application/json")

	mealdb := resty.New().
		SetBaseURL(cfg.MealDB.BaseURL).
		SetTimeout(cfg.MealDB.Timeout)

	return &Client{
		api:    api,
		mealdb: mealdb,
	}
}

// normalize 補上缺漏欄位的預設值，保證 title 與 instructions 一定有值
func normalize(r common.Recipe) common.Recipe {
	r.Title = common.OrDefault(r.Title, common.DefaultTitle)
	r.Instructions = common.OrDefault(r.Instructions, common.DefaultInstructions)
	return r
}

// All 取得全部食譜
func (c *Client) All(ctx context.Context) ([]common.Recipe, error) {
	var recipes []common.Recipe
	resp, err := c.api.R().
		SetContext(ctx).
		SetResult(&recipes).
		Get("/api/recipes")
	if err != nil {
		return nil, source.NewTransport("", err)
	}
	if resp.IsError() {
		return nil, source.NewTransport("", fmt.Errorf("primary API returned status %d", resp.StatusCode()))
	}

	result := make([]common.Recipe, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, normalize(r))
	}
	return result, nil
}

// ByID 以 id 取得單筆食譜
func (c *Client) ByID(ctx context.Context, id int64) (*common.Recipe, error) {
	var recipe common.Recipe
	resp, err := c.api.R().
		SetContext(ctx).
		SetResult(&recipe).
		Get(fmt.Sprintf("/api/recipes/%d", id))
	if err != nil {
		return nil, source.NewTransport("", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, source.NewEmpty("No se encontró la receta.")
	}
	if resp.IsError() {
		return nil, source.NewTransport("", fmt.Errorf("primary API returned status %d", resp.StatusCode()))
	}

	normalized := normalize(recipe)
	return &normalized, nil
}

// ByIngredients 以食材清單過濾食譜（逗號串接）
func (c *Client) ByIngredients(ctx context.Context, ingredients []string) ([]common.Recipe, error) {
	var recipes []common.Recipe
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParam("ingredients", common.JoinList(ingredients)).
		SetResult(&recipes).
		Get("/api/recipes/external")
	if err != nil {
		return nil, source.NewTransport("", err)
	}
	if resp.IsError() {
		return nil, source.NewTransport("", fmt.Errorf("primary API returned status %d", resp.StatusCode()))
	}

	result := make([]common.Recipe, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, normalize(r))
	}
	return result, nil
}

// Create 新增食譜
func (c *Client) Create(ctx context.Context, recipe common.Recipe) (*common.Recipe, error) {
	var created common.Recipe
	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(recipe).
		SetResult(&created).
		Post("/api/recipes")
	if err != nil {
		return nil, source.NewTransport("", err)
	}
	if resp.IsError() {
		return nil, source.NewTransport("", fmt.Errorf("primary API returned status %d", resp.StatusCode()))
	}

	normalized := normalize(created)
	return &normalized, nil
}

// Update 更新食譜
func (c *Client) Update(ctx context.Context, id int64, recipe common.Recipe) (*common.Recipe, error) {
	var updated common.Recipe
	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(recipe).
		SetResult(&updated).
		Put(fmt.Sprintf("/api/recipes/%d", id))
	if err != nil {
		return nil, source.NewTransport("", err)
	}
	if resp.IsError() {
		return nil, source.NewTransport("", fmt.Errorf("primary API returned status %d", resp.StatusCode()))
	}

	normalized := normalize(updated)
	return &normalized, nil
}

// Delete 刪除食譜
func (c *Client) Delete(ctx context.Context, id int64) error {
	resp, err := c.api.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/recipes/%d", id))
	if err != nil {
		return source.NewTransport("", err)
	}
	if resp.IsError() {
		return source.NewTransport("", fmt.Errorf("primary API returned status %d", resp.StatusCode()))
	}
	return nil
}

// RandomMeal 從 TheMealDB 取得一筆隨機食譜
// 回傳 nil 表示回應正常但沒有結果
func (c *Client) RandomMeal(ctx context.Context) (*common.Recipe, error) {
	var response mealDBResponse
	resp, err := c.mealdb.R().
		SetContext(ctx).
		SetResult(&response).
		Get("/random.php")
	if err != nil {
		return nil, source.NewTransport("", err)
	}
	if resp.IsError() {
		return nil, source.NewTransport("", fmt.Errorf("mealdb API returned status %d", resp.StatusCode()))
	}

	if len(response.Meals) == 0 {
		return nil, nil
	}

	meal := response.Meals[0]
	recipe := common.Recipe{
		ID:           common.ParseID(meal.IDMeal),
		Title:        common.OrDefault(meal.StrMeal, common.DefaultTitle),
		Description:  common.OrDefault(meal.StrCategory, common.DescriptionRandom),
		Instructions: common.OrDefault(meal.StrInstructions, common.DefaultInstructions),
		ImageURL:     meal.StrMealThumb,
	}
	return &recipe, nil
}

// Login 登入
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(AuthRequest{Email: email, Password: password}).
		SetResult(&result).
		SetError(&result). // 401 的回應本體也帶失敗訊息
		Post("/api/auth/login")
	if err != nil {
		return nil, source.NewTransport("", err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusUnauthorized {
		return nil, source.NewTransport("", fmt.Errorf("primary API returned status %d", resp.StatusCode()))
	}
	return &result, nil
}

// Register 註冊
func (c *Client) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(AuthRequest{Email: email, Password: password}).
		SetResult(&result).
		SetError(&result). // 409 的回應本體也帶失敗訊息
		Post("/api/auth/register")
	if err != nil {
		return nil, source.NewTransport("", err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusConflict {
		return nil, source.NewTransport("", fmt.Errorf("primary API returned status %d", resp.StatusCode()))
	}
	return &result, nil
}
