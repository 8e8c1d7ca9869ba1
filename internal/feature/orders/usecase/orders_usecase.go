// Package usecase はordersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"natal_backend/internal/feature/orders/domain/entity"
)

// OrderRepository は注文エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type OrderRepository interface {
	// Create は新しい注文をストレージに永続化します。
	Create(ctx context.Context, order *entity.Order) error

	// FindByID は指定されたIDに一致する注文を取得します。
	// 注文が存在しない場合、ErrOrderNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Order, error)
}

// TokenIssuer は注文アクセストークンの発行を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/token）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// IssueOrderToken は指定された注文への署名済みアクセストークンを発行します。
	IssueOrderToken(orderID string) (string, error)
}

// ordersUsecase は注文のビジネスロジックを実装します。
type ordersUsecase struct {
	orders OrderRepository
	tokens TokenIssuer
}

// NewOrdersUsecase はordersUsecaseの新しいインスタンスを生成します。
func NewOrdersUsecase(orders OrderRepository, tokens TokenIssuer) *ordersUsecase {
	return &ordersUsecase{
		orders: orders,
		tokens: tokens,
	}
}

// CreateOrder は注文を作成し、注文アクセストークンと共に返します。
// プラン未指定時はデフォルトプランを使用し、カタログ外のプランには
// ErrUnknownPlanを返します。トークンは作成時に一度だけ発行されます。
func (u *ordersUsecase) CreateOrder(ctx context.Context, planCode, customerEmail, customerName string) (*entity.Order, string, error) {
	if planCode == "" {
		planCode = entity.DefaultPlanCode
	}
	if _, ok := entity.PlanByCode(planCode); !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownPlan, planCode)
	}

	order := &entity.Order{
		ID:            uuid.NewString(),
		Plan:          planCode,
		CustomerEmail: customerEmail,
		CustomerName:  customerName,
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, "", fmt.Errorf("failed to create order: %w", err)
	}

	token, err := u.tokens.IssueOrderToken(order.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue order token: %w", err)
	}

	return order, token, nil
}

// GetOrder はIDで注文を取得します。
func (u *ordersUsecase) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	return u.orders.FindByID(ctx, id)
}

// ListPlans は購入可能なプランのカタログを返します。
func (u *ordersUsecase) ListPlans() []entity.Plan {
	return entity.Plans()
}
