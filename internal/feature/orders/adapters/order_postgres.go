// Package adapters はordersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"natal_backend/internal/feature/orders/domain/entity"
	"natal_backend/internal/feature/orders/usecase"
)

// orderPostgres はOrderRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type orderPostgres struct {
	db *gorm.DB
}

// orderPostgresがOrderRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.OrderRepository = (*orderPostgres)(nil)

// NewOrderRepository は指定されたgorm.DB接続でorderPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewOrderRepository(db *gorm.DB) *orderPostgres {
	return &orderPostgres{db: db}
}

// Create は注文をデータベースに追加します。
func (r *orderPostgres) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID はIDで注文を取得します。
// 注文が存在しない場合、usecase.ErrOrderNotFoundを返します。
func (r *orderPostgres) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var order entity.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Exists は指定されたIDの注文が存在するかどうかを返します。
// chartフィーチャーのOrderDirectoryポートとして利用されます。
func (r *orderPostgres) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
