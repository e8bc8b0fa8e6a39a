package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"kse_backend/internal/app/di"
	"kse_backend/internal/feature/allocation/usecase"
	infradb "kse_backend/internal/platform/db"
	infraredis "kse_backend/internal/platform/redis"
	"kse_backend/internal/shared/ratelimiter"
)

// runRefresh は価格フィードから最新株価を取得してDBへ反映します。
func runRefresh(uc *usecase.RefreshUsecase) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := uc.Refresh(ctx)
	if err != nil {
		log.Println("refresh failed:", err)
		return
	}
	log.Println(result.Message())
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	db := infradb.OpenDB()

	// Redis（サーバーが参照しているユニバースキャッシュを価格更新時に無効化するため）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Refreshing without cache invalidation.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	marketRepo := di.NewMarket()
	securityRepo := di.NewSecurityRepository(rdb, db)
	limiter := ratelimiter.NewRateLimiter(8, time.Minute)
	uc := usecase.NewRefreshUsecase(marketRepo, securityRepo, limiter)

	// REFRESH_CRONが設定されていればスケジュール実行、なければ単発実行
	schedule := os.Getenv("REFRESH_CRON")
	if schedule == "" {
		runRefresh(uc)
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { runRefresh(uc) }); err != nil {
		log.Fatalf("invalid REFRESH_CRON %q: %v", schedule, err)
	}
	c.Start()
	log.Println("refresh scheduler started:", schedule)

	// SIGINT/SIGTERMで停止
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx := c.Stop()
	<-ctx.Done()
	log.Println("refresh scheduler stopped")
}
