// Package account はユーザー・ロール管理の画面とAPIのハンドラーを提供します。
package account

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/role-portal/internal/store"
)

// Directory は管理画面が必要とするユーザー・ロールの参照・登録操作です。
type Directory interface {
	FindRoles(ctx context.Context) ([]store.Role, error)
	CreateRole(ctx context.Context, name string) (*store.Role, error)
	FindUsers(ctx context.Context) ([]store.User, error)
}

// Handler は管理画面のハンドラーをまとめた構造体です。
type Handler struct {
	directory Directory
	logger    *log.Logger
}

// NewHandler は Handler を作成します。
func NewHandler(directory Directory, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		directory: directory,
		logger:    logger,
	}
}

// Home は GET / のハンドラーです。
func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "role-portal へようこそ！")
}

// UsersPage は GET /users のハンドラーです。ロール名を解決した一覧を描画します。
func (h *Handler) UsersPage(c *gin.Context) {
	users, err := h.directory.FindUsers(c.Request.Context())
	if err != nil {
		h.logger.Printf("users: listing failed: %v", err)
		h.respondStoreFailure(c)
		return
	}
	c.HTML(http.StatusOK, "users.html", gin.H{"users": users})
}

// ListRoles は GET /roles のハンドラーです。
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.directory.FindRoles(c.Request.Context())
	if err != nil {
		h.logger.Printf("roles: listing failed: %v", err)
		h.respondStoreFailure(c)
		return
	}
	c.JSON(http.StatusOK, roles)
}

type createRoleRequest struct {
	Name string `form:"name" json:"name" binding:"required"`
}

// CreateRole は POST /roles のハンドラーです。
// ロール名の一意性はチェックしません（既存挙動の踏襲）。
func (h *Handler) CreateRole(c *gin.Context) {
	var req createRoleRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "name を送ってください。",
		})
		return
	}

	role, err := h.directory.CreateRole(c.Request.Context(), req.Name)
	if err != nil {
		h.logger.Printf("roles: creation failed: %v", err)
		h.respondStoreFailure(c)
		return
	}
	c.JSON(http.StatusCreated, role)
}

// AddRolePage は GET /add-role のハンドラーです。
func (h *Handler) AddRolePage(c *gin.Context) {
	c.HTML(http.StatusOK, "add_role.html", nil)
}

// AddUserPage は GET /add-user のハンドラーです。ロールの選択肢を含むフォームを描画します。
func (h *Handler) AddUserPage(c *gin.Context) {
	roles, err := h.directory.FindRoles(c.Request.Context())
	if err != nil {
		h.logger.Printf("add-user: role listing failed: %v", err)
		h.respondStoreFailure(c)
		return
	}
	c.HTML(http.StatusOK, "add_user.html", gin.H{"roles": roles})
}

// AdminPage は GET /admin のハンドラーです。
// セッションのロールがAdminかどうかの検証は行いません（既存挙動の踏襲）。
func (h *Handler) AdminPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", nil)
}

// UserPage は GET /user のハンドラーです。
func (h *Handler) UserPage(c *gin.Context) {
	c.HTML(http.StatusOK, "user.html", nil)
}

func (h *Handler) respondStoreFailure(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "STORE_FAILURE",
		"message": "サーバー内部でエラーが発生しました。",
	})
}
