package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskhub_backend/internal/feature/auth/domain/entity"
	authhandler "taskhub_backend/internal/feature/auth/transport/handler"
	taskhandler "taskhub_backend/internal/feature/tasks/transport/handler"
	userhandler "taskhub_backend/internal/feature/users/transport/handler"
	"taskhub_backend/internal/platform/http/handler"
	jwtmw "taskhub_backend/internal/platform/jwt"
)

func NewRouter(
	tokens jwtmw.TokenVerifier,
	users jwtmw.UserLoader,
	authH *authhandler.AuthHandler,
	userH *userhandler.UserHandler,
	taskH *taskhandler.TaskHandler,
) *gin.Engine {
	r := gin.Default()

	// ブラウザクライアント用CORS
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authH.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authH.Login)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに有効なJWTが必要になり、
	//   アカウントが有効であることが毎リクエスト検証される
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(tokens, users))
	{
		auth.GET("/me", authH.Me)
		auth.POST("/logout", authH.Logout)

		auth.GET("/users/profile", userH.GetProfile)
		auth.PUT("/users/profile", userH.UpdateProfile)
		auth.PUT("/users/change-password", userH.ChangePassword)
		auth.DELETE("/users/account", userH.DeleteAccount)

		auth.GET("/tasks", taskH.List)
		auth.GET("/tasks/stats", taskH.Stats)
		auth.GET("/tasks/:id", taskH.GetByID)
		auth.POST("/tasks", taskH.Create)
		auth.PUT("/tasks/:id", taskH.Update)
		auth.DELETE("/tasks/:id", taskH.Delete)

		// 管理者専用ルート
		admin := auth.Group("/", jwtmw.RequireRoles(entity.RoleAdmin))
		admin.GET("/users", userH.List)
	}

	return r
}
