package auth

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/role-portal/internal/store"
)

const (
	adminRoleName = "Admin"

	// RedirectAdmin / RedirectUser はログイン成功後の遷移先です。
	RedirectAdmin = "/admin"
	RedirectUser  = "/user"
)

// dummyPasswordHash はユーザーが存在しない場合にも比較を行い、
// 応答時間からメールアドレスの有無を推測されないようにするためのハッシュです。
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// CredentialStore は認証フローが必要とするユーザー検索・登録操作です。
type CredentialStore interface {
	FindUserByEmail(ctx context.Context, email string) (*store.User, error)
	CreateUser(ctx context.Context, user *store.User) error
}

// Manager は認証フロー（サインアップ・ログイン・ログアウト）のハンドラーをまとめた構造体です。
type Manager struct {
	creds      CredentialStore
	bcryptCost int
	logger     *log.Logger
}

// NewManager は認証マネージャーを作成します。
func NewManager(creds CredentialStore, bcryptCost int, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		creds:      creds,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

type signupRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	RoleID   string `form:"roleId" json:"roleId"`
}

// Register は POST /add-user のハンドラーです。
// メールアドレスの重複チェックは登録前の事前チェックのみで、
// ストレージ側の一意制約には依存しません（同時登録の競合は許容する既存挙動）。
func (m *Manager) Register(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, &Error{Code: CodeInvalidInput, Message: "email と password を送ってください。"})
		return
	}

	existing, err := m.creds.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		m.logger.Printf("register: user lookup failed: %v", err)
		respondWithError(c, ErrStoreFailure)
		return
	}
	if existing != nil {
		respondWithError(c, ErrDuplicateEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), m.bcryptCost)
	if err != nil {
		m.logger.Printf("register: password hashing failed: %v", err)
		respondWithError(c, err)
		return
	}

	user := &store.User{
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if req.RoleID != "" {
		user.RoleID = &req.RoleID
	}
	if err := m.creds.CreateUser(c.Request.Context(), user); err != nil {
		m.logger.Printf("register: user creation failed: %v", err)
		respondWithError(c, ErrStoreFailure)
		return
	}

	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Login は POST /login のハンドラーです。
// ユーザー不在とパスワード不一致は呼び出し側から区別できない応答にします。
func (m *Manager) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, &Error{Code: CodeInvalidInput, Message: "email と password を送ってください。"})
		return
	}

	user, err := m.creds.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		m.logger.Printf("login: user lookup failed: %v", err)
		respondWithError(c, ErrStoreFailure)
		return
	}
	if user == nil {
		// 不在時もハッシュ比較を行い、応答時間を揃える
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(req.Password))
		respondWithError(c, ErrInvalidCredentials)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondWithError(c, ErrInvalidCredentials)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyUser, snapshotUser(user))
	if err := session.Save(); err != nil {
		m.logger.Printf("login: session save failed: %v", err)
		respondWithError(c, ErrSessionSave)
		return
	}

	c.Redirect(http.StatusFound, RedirectTarget(user))
}

// LoginPage は GET /login のハンドラーです。
// ログイン済みの場合はフォームを表示せずトップへ戻します。
func (m *Manager) LoginPage(c *gin.Context) {
	if _, ok := CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", nil)
}

// Logout は GET /logout のハンドラーです。
// セッションをストア側で破棄するため、破棄後に古いクッキーを再送しても匿名扱いになります。
func (m *Manager) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		m.logger.Printf("logout: session destroy failed: %v", err)
		respondWithError(c, ErrSessionSave)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// RedirectTarget はロール名が厳密に "Admin" の場合のみ管理ページを返します。
// 大文字小文字は区別し、ロール未割当は一般ユーザー扱いです。
func RedirectTarget(user *store.User) string {
	if user.Role != nil && user.Role.Name == adminRoleName {
		return RedirectAdmin
	}
	return RedirectUser
}
