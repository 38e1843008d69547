package auth

import (
	"context"

	"recipe-aggregator/internal/core/source/primary"
	"recipe-aggregator/internal/pkg/common"

	"go.uber.org/zap"
)

// 驗證失敗時的預設訊息
const (
	msgLoginFailed    = "Credenciales incorrectas"
	msgRegisterFailed = "No se pudo completar el registro"
)

// Backend 主要後端的驗證介面
type Backend interface {
	Login(ctx context.Context, email, password string) (*primary.AuthResult, error)
	Register(ctx context.Context, email, password string) (*primary.AuthResult, error)
}

// Result 驗證結果
type Result struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId,omitempty"`
	Message string `json:"message,omitempty"`
}

// Service 驗證服務
// 成功的條件是 success == true 而且有 userId，兩者缺一不可
type Service struct {
	backend Backend
}

// NewService 創建驗證服務
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Login 登入
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		common.LogError("登入請求失敗", zap.Error(err))
		return nil, err
	}

	if res.Success && res.UserID != "" {
		common.LogInfo("登入成功", zap.String("user_id", res.UserID))
		return &Result{Success: true, UserID: res.UserID, Message: res.Message}, nil
	}

	return &Result{
		Success: false,
		Message: common.OrDefault(res.Message, msgLoginFailed),
	}, nil
}

// Register 註冊
func (s *Service) Register(ctx context.Context, email, password string) (*Result, error) {
	res, err := s.backend.Register(ctx, email, password)
	if err != nil {
		common.LogError("註冊請求失敗", zap.Error(err))
		return nil, err
	}

	if res.Success && res.UserID != "" {
		common.LogInfo("註冊成功", zap.String("user_id", res.UserID))
		return &Result{Success: true, UserID: res.UserID, Message: res.Message}, nil
	}

	return &Result{
		Success: false,
		Message: common.OrDefault(res.Message, msgRegisterFailed),
	}, nil
}
