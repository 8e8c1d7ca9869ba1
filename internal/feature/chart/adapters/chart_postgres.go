// Package adapters はchartフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"natal_backend/internal/feature/chart/domain/entity"
	"natal_backend/internal/feature/chart/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEコードです。
const pgUniqueViolation = "23505"

// chartPostgres はChartRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type chartPostgres struct {
	db *gorm.DB
}

// chartPostgresがChartRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ChartRepository = (*chartPostgres)(nil)

// NewChartRepository は指定されたgorm.DB接続でchartPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewChartRepository(db *gorm.DB) *chartPostgres {
	return &chartPostgres{db: db}
}

// Save はチャート記録をデータベースに追加します。
// 同じ注文のチャートが既に存在する場合、usecase.ErrChartAlreadyExistsを返します。
func (r *chartPostgres) Save(ctx context.Context, record *entity.ChartRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		// SQLSTATE 23505: 一意制約違反（主キーorder_idの重複）
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.ErrChartAlreadyExists
		}
		return err
	}
	return nil
}

// FindByOrderID は注文IDでチャート記録を取得します。
// 記録が存在しない場合、usecase.ErrChartNotFoundを返します。
func (r *chartPostgres) FindByOrderID(ctx context.Context, orderID string) (*entity.ChartRecord, error) {
	var rec entity.ChartRecord
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrChartNotFound
		}
		return nil, err
	}
	return &rec, nil
}
