package main

import (
	"log"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"taskhub_backend/internal/app/di"
	"taskhub_backend/internal/app/router"
	authadapters "taskhub_backend/internal/feature/auth/adapters"
	authhandler "taskhub_backend/internal/feature/auth/transport/handler"
	authusecase "taskhub_backend/internal/feature/auth/usecase"
	taskhandler "taskhub_backend/internal/feature/tasks/transport/handler"
	taskusecase "taskhub_backend/internal/feature/tasks/usecase"
	userhandler "taskhub_backend/internal/feature/users/transport/handler"
	userusecase "taskhub_backend/internal/feature/users/usecase"
	"taskhub_backend/internal/platform/config"
	infradb "taskhub_backend/internal/platform/db"
	infraredis "taskhub_backend/internal/platform/redis"
	jwtmw "taskhub_backend/internal/platform/jwt"
	"taskhub_backend/internal/shared/hashpool"
)

func main() {
	// .envがあれば読み込む（本番では環境変数を直接設定）
	_ = godotenv.Load()

	// JWT_SECRET未設定では起動しない（フェイルクローズ）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// db
	db := infradb.OpenDB()

	// Redis（統計キャッシュ用、無くても起動する）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without stats cache.")
	} else if tmp != nil {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// トークンサービス（シークレットはコンストラクタ注入、以後不変）
	tokenSvc, err := jwtmw.NewService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("jwt: %v", err)
	}

	// bcrypt用有界ワーカープール
	hasher := hashpool.New(cfg.HashPoolSize, bcrypt.DefaultCost)

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	taskRepo := di.NewTaskRepository(rdb, db, cfg.StatsCacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokenSvc, hasher)
	userUC := userusecase.NewUserUsecase(userRepo, hasher)
	tasksUC := taskusecase.NewTasksUsecase(taskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	userH := userhandler.NewUserHandler(userUC)
	taskH := taskhandler.NewTaskHandler(tasksUC)

	// ルータ生成
	r := router.NewRouter(tokenSvc, userRepo, authH, userH, taskH)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
