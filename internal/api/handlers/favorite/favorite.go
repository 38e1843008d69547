package favorite

import (
	"net/http"

	"recipe-aggregator/internal/core/aggregate"
	"recipe-aggregator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 收藏處理程序
type Handler struct {
	service *aggregate.Service
}

// NewHandler 創建新的收藏處理程序
func NewHandler(service *aggregate.Service) *Handler {
	return &Handler{service: service}
}

// HandleList 取得收藏集合
// GET /api/v1/favorites
func (h *Handler) HandleList(c *gin.Context) {
	ids, err := h.service.Favorites(c.Request.Context())
	if err != nil {
		common.LogError("讀取收藏失敗", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Code:    common.ErrFavoriteUnavailable.Code,
			Message: common.ErrFavoriteUnavailable.Message,
		})
		return
	}

	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"favorites": ids})
}

// HandleToggle 切換收藏狀態
// POST /api/v1/favorites/:id/toggle
func (h *Handler) HandleToggle(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "favorite id is required",
		})
		return
	}

	if err := h.service.ToggleFavorite(c.Request.Context(), id); err != nil {
		common.LogError("切換收藏失敗",
			zap.String("id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Code:    common.ErrFavoriteUnavailable.Code,
			Message: common.ErrFavoriteUnavailable.Message,
		})
		return
	}

	ids, err := h.service.Favorites(c.Request.Context())
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": ids})
}
