// Package auth は認証・認可機能を提供します。
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// エラーコード（HTTPステータスへの対応付けは respondWithError が行います）
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeStoreFailure       = "STORE_FAILURE"
	CodeSessionSaveFailed  = "SESSION_SAVE_FAILED"
)

// Error は利用者へ返す認証エラーです。
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

var (
	// ErrDuplicateEmail は既に登録済みのメールアドレスでのサインアップを表します。
	ErrDuplicateEmail = &Error{Code: CodeDuplicateEmail, Message: "このメールアドレスは既に使用されています。"}
	// ErrInvalidCredentials はユーザー不在とパスワード不一致を区別せずに表します。
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: "メールアドレスまたはパスワードが正しくありません。"}
	// ErrStoreFailure はデータベース起因の失敗を表します。
	ErrStoreFailure = &Error{Code: CodeStoreFailure, Message: "サーバー内部でエラーが発生しました。"}
	// ErrSessionSave はセッションストアの保存・破棄失敗を表します。
	ErrSessionSave = &Error{Code: CodeSessionSaveFailed, Message: "セッションの保存に失敗しました。"}
)

func respondWithError(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(statusForCode(apiErr.Code), gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "INTERNAL_ERROR",
		"message": "サーバー内部でエラーが発生しました。",
	})
}

func statusForCode(code string) int {
	switch code {
	case CodeInvalidInput, CodeDuplicateEmail:
		return http.StatusBadRequest
	case CodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
