package aggregate

import (
	"context"
	"fmt"
	"strings"

	"recipe-aggregator/internal/core/source"
	"recipe-aggregator/internal/core/source/cocktail"
	"recipe-aggregator/internal/pkg/common"

	"go.uber.org/zap"
)

// 使用者可見訊息
const (
	msgNoRecipes    = "No se encontraron recetas."
	msgNoBeverages  = "No se encontraron bebidas."
	msgNoKids       = "No se encontraron recetas para niños."
	msgRandomEmpty  = "No se encontraron recomendaciones. Intenta de nuevo más tarde."
	msgRandomFailed = "No se pudieron obtener recomendaciones. Verifica tu conexión o intenta más tarde."

	fetchErrorPrefix  = "Error al obtener recetas"
	searchErrorPrefix = "Error al buscar recetas"
)

// PrimarySource 主要食譜後端
type PrimarySource interface {
	All(ctx context.Context) ([]common.Recipe, error)
	ByIngredients(ctx context.Context, ingredients []string) ([]common.Recipe, error)
	RandomMeal(ctx context.Context) (*common.Recipe, error)
	Create(ctx context.Context, recipe common.Recipe) (*common.Recipe, error)
	Update(ctx context.Context, id int64, recipe common.Recipe) (*common.Recipe, error)
	Delete(ctx context.Context, id int64) error
}

// BeverageSource 飲品來源
type BeverageSource interface {
	Random(ctx context.Context) ([]common.Recipe, error)
	SearchByName(ctx context.Context, name string) ([]common.Recipe, error)
	SearchByIngredient(ctx context.Context, ingredient string) ([]common.Recipe, error)
}

// KidsSource 兒童食譜來源
type KidsSource interface {
	Fetch(ctx context.Context) ([]common.Recipe, error)
	Search(ctx context.Context, query string) ([]common.Recipe, error)
}

// FavoriteStore 收藏集合
type FavoriteStore interface {
	Snapshot(ctx context.Context) ([]string, error)
	Contains(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	Subscribe(ctx context.Context) <-chan []string
}

// Service 聚合服務
// 依類別分派到三個 adapter，把結果與錯誤狀態發布成快照；
// 客戶端全部由建構時注入，不使用全局單例
type Service struct {
	primary     PrimarySource
	beverages   BeverageSource
	kids        KidsSource
	favorites   FavoriteStore
	randomCount int
	hub         *Hub
}

// NewService 創建聚合服務
func NewService(primary PrimarySource, beverages BeverageSource, kids KidsSource, favorites FavoriteStore, randomCount int) *Service {
	if randomCount <= 0 {
		randomCount = 5
	}
	return &Service{
		primary:     primary,
		beverages:   beverages,
		kids:        kids,
		favorites:   favorites,
		randomCount: randomCount,
		hub:         NewHub(),
	}
}

// Recipes 取得目前的聚合快照
func (s *Service) Recipes() Snapshot {
	return s.hub.Current()
}

// SubscribeRecipes 訂閱聚合快照
func (s *Service) SubscribeRecipes(ctx context.Context) <-chan Snapshot {
	return s.hub.Subscribe(ctx)
}

// Favorites 取得目前的收藏集合
func (s *Service) Favorites(ctx context.Context) ([]string, error) {
	return s.favorites.Snapshot(ctx)
}

// SubscribeFavorites 訂閱收藏集合變更（直接轉接收藏集合）
func (s *Service) SubscribeFavorites(ctx context.Context) <-chan []string {
	return s.favorites.Subscribe(ctx)
}

// FetchByCategory 依類別抓取食譜
// default 類別把 query 當逗號分隔的食材過濾；beverage/kids 的 fetch
// 忽略 query（沿用既有行為，搜尋才吃 query）；countryHint 目前沒有
// 來源支援，保留參數
func (s *Service) FetchByCategory(ctx context.Context, category common.Category, query, countryHint string) Snapshot {
	s.clearError()

	var (
		recipes  []common.Recipe
		err      error
		emptyMsg string
	)

	switch category {
	case common.CategoryRandom:
		recipes, err = FetchRandomBatch(ctx, s.randomCount, s.primary.RandomMeal)
		emptyMsg = msgRandomEmpty
	case common.CategoryBeverage:
		recipes, err = s.beverages.Random(ctx)
		emptyMsg = msgNoBeverages
	case common.CategoryKids:
		recipes, err = s.kids.Fetch(ctx)
		emptyMsg = msgNoKids
	default:
		recipes, err = s.fetchPrimary(ctx, query)
		emptyMsg = msgNoRecipes
	}

	return s.publishOutcome("fetch", category, recipes, err, emptyMsg, fetchErrorPrefix)
}

// SearchByCategory 依類別搜尋食譜，每個類別都吃 query
func (s *Service) SearchByCategory(ctx context.Context, category common.Category, query, countryHint string) Snapshot {
	s.clearError()

	var (
		recipes  []common.Recipe
		err      error
		emptyMsg string
	)

	switch category {
	case common.CategoryRandom:
		recipes, err = FetchRandomBatch(ctx, s.randomCount, s.primary.RandomMeal)
		emptyMsg = msgRandomEmpty
	case common.CategoryBeverage:
		recipes, err = s.searchBeverages(ctx, query)
		emptyMsg = msgNoBeverages
	case common.CategoryKids:
		recipes, err = s.kids.Search(ctx, query)
		emptyMsg = msgNoKids
	default:
		recipes, err = s.fetchPrimary(ctx, query)
		emptyMsg = msgNoRecipes
	}

	return s.publishOutcome("search", category, recipes, err, emptyMsg, searchErrorPrefix)
}

// FetchTagged 以描述子字串過濾主要後端清單
// 上游沒有真正的類別欄位，只能比對描述文字（例如 "Bebida"、"Niños"）；
// 之後上游補上類別欄位時只要改這一條路徑
func (s *Service) FetchTagged(ctx context.Context, tag string) Snapshot {
	s.clearError()

	recipes, err := s.primary.All(ctx)
	if err == nil {
		recipes = FilterByDescriptionTag(recipes, tag)
	}

	return s.publishOutcome("fetch", common.CategoryDefault, recipes, err, msgNoRecipes, fetchErrorPrefix)
}

// ToggleFavorite 切換收藏狀態
// 直接以 redis 的目前成員狀態判斷，而不是快取的旗標
func (s *Service) ToggleFavorite(ctx context.Context, id string) error {
	present, err := s.favorites.Contains(ctx, id)
	if err != nil {
		return err
	}
	if present {
		return s.favorites.Remove(ctx, id)
	}
	return s.favorites.Add(ctx, id)
}

// CreateRecipe 新增食譜到主要後端，成功後重新整理清單
func (s *Service) CreateRecipe(ctx context.Context, recipe common.Recipe) (*common.Recipe, error) {
	created, err := s.primary.Create(ctx, recipe)
	if err != nil {
		return nil, err
	}
	s.FetchByCategory(ctx, common.CategoryDefault, "", "")
	return created, nil
}

// UpdateRecipe 更新主要後端的食譜，成功後重新整理清單
func (s *Service) UpdateRecipe(ctx context.Context, id int64, recipe common.Recipe) (*common.Recipe, error) {
	updated, err := s.primary.Update(ctx, id, recipe)
	if err != nil {
		return nil, err
	}
	s.FetchByCategory(ctx, common.CategoryDefault, "", "")
	return updated, nil
}

// DeleteRecipe 刪除主要後端的食譜，成功後重新整理清單
func (s *Service) DeleteRecipe(ctx context.Context, id int64) error {
	if err := s.primary.Delete(ctx, id); err != nil {
		return err
	}
	s.FetchByCategory(ctx, common.CategoryDefault, "", "")
	return nil
}

// fetchPrimary query 為空抓全部，否則切成食材清單過濾
func (s *Service) fetchPrimary(ctx context.Context, query string) ([]common.Recipe, error) {
	ingredients := common.SplitList(query)
	if len(ingredients) == 0 {
		return s.primary.All(ctx)
	}
	return s.primary.ByIngredients(ctx, ingredients)
}

// searchBeverages 解析飲品搜尋字串
// 空白 → 隨機；帶冒號 → 以冒號前的食材搜尋；其餘 → 名稱搜尋
func (s *Service) searchBeverages(ctx context.Context, query string) ([]common.Recipe, error) {
	if strings.TrimSpace(query) == "" {
		return s.beverages.Random(ctx)
	}
	if ingredient, ok := cocktail.SplitIngredientQuery(query); ok {
		return s.beverages.SearchByIngredient(ctx, ingredient)
	}
	return s.beverages.SearchByName(ctx, query)
}

// clearError 每次新操作開始時清掉上一次的錯誤狀態
func (s *Service) clearError() {
	current := s.hub.Current()
	if current.ErrorMessage != nil {
		s.hub.Publish(Snapshot{Recipes: current.Recipes})
	}
}

// publishOutcome 把 adapter 結果轉成快照發布
// 成功整批替換清單；空結果發布空清單加上「沒有結果」訊息；
// 傳輸失敗保留上一次發布的清單，只更新錯誤訊息
func (s *Service) publishOutcome(op string, category common.Category, recipes []common.Recipe, err error, emptyMsg, errPrefix string) Snapshot {
	var snapshot Snapshot

	switch {
	case err == nil && len(recipes) > 0:
		snapshot = Snapshot{Recipes: recipes}
	case err == nil || source.IsEmpty(err):
		message := emptyMsg
		if fe := source.AsFetchError(err); fe != nil && fe.Message != "" {
			message = fe.Message
		}
		snapshot = Snapshot{Recipes: []common.Recipe{}, ErrorMessage: &message}
	default:
		message := fmt.Sprintf("%s: %v", errPrefix, err)
		snapshot = Snapshot{Recipes: s.hub.Current().Recipes, ErrorMessage: &message}
		common.LogError("聚合操作失敗",
			zap.String("操作", op),
			zap.String("類別", string(category)),
			zap.Error(err),
		)
	}

	s.hub.Publish(snapshot)
	return snapshot
}

// FilterByDescriptionTag 以描述子字串比對過濾（不分大小寫）
func FilterByDescriptionTag(recipes []common.Recipe, tag string) []common.Recipe {
	needle := strings.ToLower(strings.TrimSpace(tag))
	if needle == "" {
		return recipes
	}

	filtered := make([]common.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if strings.Contains(strings.ToLower(r.Description), needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
