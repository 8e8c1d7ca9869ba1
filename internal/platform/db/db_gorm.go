package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	chartentity "natal_backend/internal/feature/chart/domain/entity"
	orderentity "natal_backend/internal/feature/orders/domain/entity"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Config はデータベース接続設定を保持します。
// URLが設定されている場合はそれが優先され、個別のフィールドは無視されます。
type Config struct {
	URL        string // PostgreSQLの完全な接続URL（DATABASE_URL）
	User       string
	Password   string
	Name       string
	Host       string
	Port       string
	SQLitePath string // PostgreSQL設定がない場合のローカル開発用ファイル
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "natal.db"
	}
	return Config{
		URL:        os.Getenv("DATABASE_URL"),
		User:       os.Getenv("DB_USER"),
		Password:   os.Getenv("DB_PASSWORD"),
		Name:       os.Getenv("DB_NAME"),
		Host:       os.Getenv("DB_HOST"),
		Port:       os.Getenv("DB_PORT"),
		SQLitePath: path,
	}
}

// BuildDSN はPostgreSQL接続用のDSN文字列を生成します。
// URLが設定されている場合はそのまま返します。
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	port := cfg.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, port)
}

// OpenFunc はDSNからgormセッションを開きます。テストではスタブに差し替えます。
type OpenFunc func(dsn string) (*gorm.DB, error)

// ConnectWithRetry はタイムアウトまで接続を繰り返し試行します。
// コンテナ起動直後などDBがまだ受け付けていない場合に備えます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener OpenFunc) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB は環境変数の設定に従ってデータベース接続を開きます。
// PostgreSQL設定（DATABASE_URLまたはDB_HOST）があればPostgreSQLへ、
// なければローカル開発用のSQLiteファイルへ接続します。
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	var (
		db  *gorm.DB
		err error
	)
	if cfg.URL != "" || cfg.Host != "" {
		db, err = ConnectWithRetry(BuildDSN(cfg), connectTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		})
	} else {
		db, err = gorm.Open(gsqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（Order, ChartRecord）
		if err := db.AutoMigrate(
			&orderentity.Order{},
			&chartentity.ChartRecord{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
