// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/role-portal/internal/account"
	"github.com/yourusername/role-portal/internal/auth"
	"github.com/yourusername/role-portal/internal/config"
	"github.com/yourusername/role-portal/internal/store"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// 資格情報ストアの初期化（スキーマ同期を含む）
	credStore, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()
	router.LoadHTMLGlob(cfg.TemplateGlob)

	// セッションストアの設定（プロセス内保持。ログアウト時にサーバー側で破棄できる）
	sessionStore := memstore.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(auth.SessionCookieName, sessionStore))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// ルーティングの設定
	setupRoutes(router, cfg, credStore)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "role-portal-api",
		"version": "0.1.0",
	})
}

// setupRoutes は画面・APIと認証周りの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, credStore *store.Store) {
	authManager := auth.NewManager(credStore, cfg.BcryptCost, log.Default())
	accountHandler := account.NewHandler(credStore, log.Default())

	router.GET("/health", handleHealth)

	router.GET("/", accountHandler.Home)
	router.GET("/users", accountHandler.UsersPage)
	router.GET("/roles", accountHandler.ListRoles)
	router.POST("/roles", accountHandler.CreateRole)
	router.GET("/add-role", accountHandler.AddRolePage)
	router.GET("/add-user", accountHandler.AddUserPage)
	router.POST("/add-user", authManager.Register)

	router.GET("/login", authManager.LoginPage)
	router.POST("/login", authManager.Login)
	router.GET("/logout", authManager.Logout)

	// ランディングページ。サーバー側でのロール検証は行わない（既存挙動の踏襲）
	router.GET("/admin", accountHandler.AdminPage)
	router.GET("/user", accountHandler.UserPage)
}
