package auth

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/role-portal/internal/store"
)

const (
	SessionCookieName = "rp_session"
	sessionKeyUser    = "auth_user"
)

func init() {
	// セッションストアはシリアライズして値を保持するため、型を登録しておく
	gob.Register(SessionUser{})
}

// SessionUser はログイン時点のユーザーのスナップショットです。
// ログイン後にロール名が変更されても既存セッションには反映されません。
type SessionUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	RoleID   string `json:"roleId,omitempty"`
	RoleName string `json:"roleName,omitempty"`
}

// IsAdmin はスナップショットのロール名が厳密に "Admin" かどうかを返します。
func (u SessionUser) IsAdmin() bool {
	return u.RoleName == adminRoleName
}

func snapshotUser(user *store.User) SessionUser {
	snapshot := SessionUser{
		ID:    user.ID,
		Email: user.Email,
	}
	if user.RoleID != nil {
		snapshot.RoleID = *user.RoleID
	}
	if user.Role != nil {
		snapshot.RoleName = user.Role.Name
	}
	return snapshot
}

// CurrentUser はリクエストのセッションからログイン中ユーザーを取得します。
// セッションが無い場合は二値目が false になります。純粋な参照で、セッションは変更しません。
func CurrentUser(c *gin.Context) (SessionUser, bool) {
	session := sessions.Default(c)
	user, ok := session.Get(sessionKeyUser).(SessionUser)
	return user, ok
}
