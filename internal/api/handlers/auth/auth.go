package auth

import (
	"net/http"

	"recipe-aggregator/internal/core/auth"
	"recipe-aggregator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 驗證處理程序
type Handler struct {
	service *auth.Service
}

// NewHandler 創建新的驗證處理程序
func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// credentialsRequest 登入/註冊請求
type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// HandleLogin 登入
// POST /api/v1/auth/login
func (h *Handler) HandleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.LogError("登入上游失敗", zap.Error(err))
		c.JSON(http.StatusBadGateway, common.ErrorResponse{
			Code:    common.ErrUpstreamUnavailable.Code,
			Message: common.ErrUpstreamUnavailable.Message,
		})
		return
	}

	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleRegister 註冊
// POST /api/v1/auth/register
func (h *Handler) HandleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.LogError("註冊上游失敗", zap.Error(err))
		c.JSON(http.StatusBadGateway, common.ErrorResponse{
			Code:    common.ErrUpstreamUnavailable.Code,
			Message: common.ErrUpstreamUnavailable.Message,
		})
		return
	}

	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}
