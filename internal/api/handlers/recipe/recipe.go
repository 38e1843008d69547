package recipe

import (
	"net/http"
	"strconv"

	"recipe-aggregator/internal/core/aggregate"
	"recipe-aggregator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理程序
type Handler struct {
	service *aggregate.Service
}

// NewHandler 創建新的食譜處理程序
func NewHandler(service *aggregate.Service) *Handler {
	return &Handler{service: service}
}

// requestID 取得或生成請求 ID
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = common.GenerateUUID()
		c.Header("X-Request-ID", id)
	}
	return id
}

// HandleFetch 依類別抓取食譜
// GET /api/v1/recipes?category=&query=&country=
func (h *Handler) HandleFetch(c *gin.Context) {
	category, ok := common.ParseCategory(c.Query("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidCategory.Code,
			Message: common.ErrInvalidCategory.Message,
		})
		return
	}

	common.LogInfo("開始抓取食譜",
		zap.String("request_id", requestID(c)),
		zap.String("類別", string(category)),
		zap.String("查詢", c.Query("query")),
	)

	snapshot := h.service.FetchByCategory(c.Request.Context(), category, c.Query("query"), c.Query("country"))
	c.JSON(http.StatusOK, snapshot)
}

// HandleSearch 依類別搜尋食譜
// GET /api/v1/recipes/search?category=&query=&country=
func (h *Handler) HandleSearch(c *gin.Context) {
	category, ok := common.ParseCategory(c.Query("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidCategory.Code,
			Message: common.ErrInvalidCategory.Message,
		})
		return
	}

	common.LogInfo("開始搜尋食譜",
		zap.String("request_id", requestID(c)),
		zap.String("類別", string(category)),
		zap.String("查詢", c.Query("query")),
	)

	snapshot := h.service.SearchByCategory(c.Request.Context(), category, c.Query("query"), c.Query("country"))
	c.JSON(http.StatusOK, snapshot)
}

// HandleTagged 以描述標籤過濾主要後端清單
// GET /api/v1/recipes/tagged?tag=
func (h *Handler) HandleTagged(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "tag is required",
		})
		return
	}

	snapshot := h.service.FetchTagged(c.Request.Context(), tag)
	c.JSON(http.StatusOK, snapshot)
}

// HandleCreate 新增食譜
// POST /api/v1/recipes
func (h *Handler) HandleCreate(c *gin.Context) {
	var recipe common.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID(c)),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := h.service.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		c.JSON(http.StatusBadGateway, common.ErrorResponse{
			Code:    common.ErrUpstreamUnavailable.Code,
			Message: common.ErrUpstreamUnavailable.Message,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// HandleUpdate 更新食譜
// PUT /api/v1/recipes/:id
func (h *Handler) HandleUpdate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidRecipeID.Code,
			Message: common.ErrInvalidRecipeID.Message,
		})
		return
	}

	var recipe common.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := h.service.UpdateRecipe(c.Request.Context(), id, recipe)
	if err != nil {
		c.JSON(http.StatusBadGateway, common.ErrorResponse{
			Code:    common.ErrUpstreamUnavailable.Code,
			Message: common.ErrUpstreamUnavailable.Message,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// HandleDelete 刪除食譜
// DELETE /api/v1/recipes/:id
func (h *Handler) HandleDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidRecipeID.Code,
			Message: common.ErrInvalidRecipeID.Message,
		})
		return
	}

	if err := h.service.DeleteRecipe(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadGateway, common.ErrorResponse{
			Code:    common.ErrUpstreamUnavailable.Code,
			Message: common.ErrUpstreamUnavailable.Message,
			Details: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleCurrent 取得目前發布的快照（不觸發抓取）
// GET /api/v1/recipes/current
func (h *Handler) HandleCurrent(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Recipes())
}
