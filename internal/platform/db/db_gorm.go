package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	allocadapters "kse_backend/internal/feature/allocation/adapters"
	"kse_backend/internal/feature/auth/domain/entity"
)

// Config はデータベース接続設定を保持します。
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	// SQLitePath はHostが空の場合に使用されるローカルファイルのパスです。
	SQLitePath string
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		User:       os.Getenv("DB_USER"),
		Password:   os.Getenv("DB_PASSWORD"),
		Name:       os.Getenv("DB_NAME"),
		Host:       os.Getenv("DB_HOST"),
		Port:       os.Getenv("DB_PORT"),
		SQLitePath: os.Getenv("KSE_DB_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "./kse.db"
	}
	return cfg
}

// BuildDSN はPostgres接続用のDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Karachi",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替え可能にするために分離しています。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は接続に成功するかタイムアウトするまで3秒間隔でリトライします。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB はデータベース接続を確立して*gorm.DBを返します。
// DB_HOSTが設定されていればPostgres、そうでなければローカルのSQLiteファイルに接続します。
func OpenDB() *gorm.DB {
	// TranslateError: ドライバ固有の重複キーエラーをgorm.ErrDuplicatedKeyへ変換する
	gcfg := &gorm.Config{TranslateError: true}
	cfg := LoadConfigFromEnv()

	var (
		db  *gorm.DB
		err error
	)

	if cfg.Host != "" {
		db, err = ConnectWithRetry(BuildDSN(cfg), 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), gcfg)
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
		if err != nil {
			log.Fatalf("failed to open sqlite db %s: %v", cfg.SQLitePath, err)
		}
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Security）
		if err := db.AutoMigrate(
			&entity.User{},
			&allocadapters.SecurityModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
