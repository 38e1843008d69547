package source

import (
	"errors"
	"fmt"
)

// Kind 抓取失敗的分類
type Kind int

const (
	// KindTransport 網路或解析失敗
	KindTransport Kind = iota
	// KindEmpty 回應正常但沒有任何結果
	KindEmpty
)

// FetchError 上游抓取失敗
// 傳輸失敗與空結果是兩種不同的結果，訊息也必須不同
type FetchError struct {
	Kind    Kind
	Message string // 使用者可見訊息
	Err     error  // 原始錯誤（僅供診斷，不得用於程式分支）
}

// Error 實現 error 介面
func (e *FetchError) Error() string {
	if e.Err != nil {
		if e.Message != "" {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *FetchError) Unwrap() error {
	return e.Err
}

// UserMessage 組出使用者可見的完整訊息
func (e *FetchError) UserMessage() string {
	if e.Kind == KindTransport && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// NewTransport 創建傳輸失敗錯誤
func NewTransport(message string, err error) *FetchError {
	return &FetchError{
		Kind:    KindTransport,
		Message: message,
		Err:     err,
	}
}

// NewEmpty 創建空結果錯誤
func NewEmpty(message string) *FetchError {
	return &FetchError{
		Kind:    KindEmpty,
		Message: message,
	}
}

// AsFetchError 取出 FetchError，若不是則回傳 nil
func AsFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

// IsEmpty 檢查是否為空結果錯誤
func IsEmpty(err error) bool {
	fe := AsFetchError(err)
	return fe != nil && fe.Kind == KindEmpty
}

// IsTransport 檢查是否為傳輸失敗錯誤
func IsTransport(err error) bool {
	fe := AsFetchError(err)
	return fe != nil && fe.Kind == KindTransport
}
