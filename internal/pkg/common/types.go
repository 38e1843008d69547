package common

import (
	"strconv"
	"strings"
)

// 各來源缺漏欄位時使用的預設值
const (
	DefaultTitle        = "Receta"
	DefaultInstructions = "Sin instrucciones"

	// 來源對應的預設描述
	DescriptionRandom   = "Recom."
	DescriptionBeverage = "Bebida"
	DescriptionKids     = "Para niños"
)

// Recipe 正規化後的食譜模型
// 三個上游來源的回應都映射到這個結構；title 與 id 一定有值，
// 缺漏欄位由 adapter 補上預設值
type Recipe struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	ImageURL     string   `json:"imageUrl"` // 空字串表示沒有圖片，與缺漏不同
}

// Category 食譜類別，決定聚合服務要走哪一個 adapter
type Category string

const (
	CategoryDefault  Category = "default"
	CategoryRandom   Category = "random"
	CategoryBeverage Category = "beverage"
	CategoryKids     Category = "kids"
)

// ParseCategory 解析類別字串，兼容舊版 UI 的標籤
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return CategoryDefault, true
	case "random", "recom.":
		return CategoryRandom, true
	case "beverage", "bebida":
		return CategoryBeverage, true
	case "kids", "niños":
		return CategoryKids, true
	}
	return CategoryDefault, false
}

// ParseID 解析來源 id，非數字或缺漏一律回傳 0
func ParseID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// SplitList 將逗號分隔的字串切成清單，去除空白並丟棄空項目
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// JoinList 將清單組回逗號分隔字串（primary API 的查詢格式）
func JoinList(items []string) string {
	return strings.Join(items, ",")
}

// OrDefault 欄位缺漏時補上預設值
func OrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
