package cocktail

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

// Client TheCocktailDB 客戶端
type Client struct {
	api *resty.Client
}

// drinksResponse TheCocktailDB 回應結構
// drinks 在沒有結果時是 null
type drinksResponse struct {
	Drinks []drink `json:"drinks"`
}

// drink 飲品結構
type drink struct {
	IDDrink         string `json:"idDrink"`
	StrDrink        string `json:"strDrink"`
	StrCategory     string `json:"strCategory"`
	StrInstructions string `json:"strInstructions"`
	StrDrinkThumb   string `json:"strDrinkThumb"`
}

// NewClient 創建 TheCocktailDB 客戶端
func NewClient(cfg *config.Config) *Client {
	return &Client{
		api: resty.New().
			SetBaseURL(cfg.Cocktail.BaseURL).
			SetTimeout(cfg.Cocktail.Timeout),
	}
}

// SplitIngredientQuery 解析搜尋字串
// 帶冒號表示食材搜尋，冒號前的文字是食材名稱
func SplitIngredientQuery(query string) (ingredient string, ok bool) {
	if !strings.Contains(query, ":") {
		return "", false
	}
	before, _, _ := strings.Cut(query, ":")
	return strings.TrimSpace(before), true
}

// Random 取得隨機飲品
func (c *Client) Random(ctx context.Context) ([]common.Recipe, error) {
	return c.fetch(ctx, "/random.php", nil)
}

// SearchByName 以名稱搜尋飲品
func (c *Client) SearchByName(ctx context.Context, name string) ([]common.Recipe, error) {
	return c.fetch(ctx, "/search.php", map[string]string{"s": name})
}

// SearchByIngredient 以食材搜尋飲品
func (c *Client) SearchByIngredient(ctx context.Context, ingredient string) ([]common.Recipe, error) {
	return c.fetch(ctx, "/filter.php", map[string]string{"i": ingredient})
}

// fetch 送出請求並映射到領域模型，空結果回傳空清單
func (c *Client) fetch(ctx context.Context, path string, params map[string]string) ([]common.Recipe, error) {
	var response drinksResponse
	req := c.api.R().
		SetContext(ctx).
		SetResult(&response)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	start := time.Now()
	resp, err := req.Get(path)
	common.LogSourceCall("cocktaildb", path, time.Since(start), err)
	if err != nil {
		return nil, source.NewTransport("", err)
	}
	if resp.IsError() {
		return nil, source.NewTransport("", fmt.Errorf("cocktail API returned status %d", resp.StatusCode()))
	}

	recipes := make([]common.Recipe, 0, len(response.Drinks))
	for _, d := range response.Drinks {
		recipes = append(recipes, mapDrink(d))
	}
	return recipes, nil
}

// mapDrink 將飲品映射到領域模型
// filter.php 只回傳 id、名稱與縮圖，其餘欄位由預設值補上
func mapDrink(d drink) common.Recipe {
	return common.Recipe{
		ID:           common.ParseID(d.IDDrink),
		Title:        common.OrDefault(d.StrDrink, common.DefaultTitle),
		Description:  common.OrDefault(d.StrCategory, common.DescriptionBeverage),
		Instructions: common.OrDefault(d.StrInstructions, common.DefaultInstructions),
		ImageURL:     d.StrDrinkThumb,
	}
}
