package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"kse_backend/internal/app/di"
	"kse_backend/internal/app/router"
	allochandler "kse_backend/internal/feature/allocation/transport/handler"
	allocusecase "kse_backend/internal/feature/allocation/usecase"
	authadapters "kse_backend/internal/feature/auth/adapters"
	authhandler "kse_backend/internal/feature/auth/transport/handler"
	authusecase "kse_backend/internal/feature/auth/usecase"
	siphandler "kse_backend/internal/feature/sip/transport/handler"
	sipusecase "kse_backend/internal/feature/sip/usecase"
	infradb "kse_backend/internal/platform/db"
	jwtmw "kse_backend/internal/platform/jwt"
	infraredis "kse_backend/internal/platform/redis"
	"kse_backend/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	securityRepo := di.NewSecurityRepository(rdb, db)
	marketRepo := di.NewMarket()

	// 価格フィードは1分あたり8リクエストに制限
	limiter := ratelimiter.NewRateLimiter(8, time.Minute)

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	planUC := allocusecase.NewPlanUsecase(securityRepo)
	refreshUC := allocusecase.NewRefreshUsecase(marketRepo, securityRepo, limiter)
	sipUC := sipusecase.NewSipUsecase()

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	allocH := allochandler.NewAllocationHandler(planUC, refreshUC)
	sipH := siphandler.NewSipHandler(sipUC)

	// ルータ生成
	r := router.NewRouter(authH, allocH, sipH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
