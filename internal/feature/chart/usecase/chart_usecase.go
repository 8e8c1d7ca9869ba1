// Package usecase はchartフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"natal_backend/internal/feature/chart/domain"
	"natal_backend/internal/feature/chart/domain/entity"
)

const (
	// birthDateLayout は出生日の入力形式を定義します。
	birthDateLayout = "2006-01-02"

	// birthTimeLayout は出生時刻の入力形式を定義します。
	birthTimeLayout = "15:04"
)

// ChartCalculator はチャート計算エンジンを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ChartCalculator interface {
	// Compute は出生情報からネイタルチャート全体を計算します。
	Compute(ctx context.Context, input entity.BirthInput) (entity.Chart, error)
}

// ChartRepository はチャート記録の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ChartRepository interface {
	// Save は新しいチャート記録をストレージに永続化します。
	// 同じ注文のチャートが既に存在する場合、ErrChartAlreadyExistsを返します。
	Save(ctx context.Context, record *entity.ChartRecord) error

	// FindByOrderID は指定された注文IDに紐づくチャート記録を取得します。
	// 記録が存在しない場合、ErrChartNotFoundを返します。
	FindByOrderID(ctx context.Context, orderID string) (*entity.ChartRecord, error)
}

// OrderDirectory は注文の存在確認を抽象化します。
// ordersフィーチャーへの依存を、必要な一問だけに絞ります。
type OrderDirectory interface {
	// Exists は指定されたIDの注文が存在するかどうかを返します。
	Exists(ctx context.Context, orderID string) (bool, error)
}

// PlaceResolver は地名から座標への解決を抽象化します。
// 解決できない地名にはErrPlaceNotFoundを返します。
type PlaceResolver interface {
	// Resolve は地名をジオコーディングし、緯度・経度を返します。
	Resolve(ctx context.Context, place string) (lat, lon float64, err error)
}

// BirthQuery はクライアントから受け取った出生情報の生の形です。
// 文字列のままの日付・時刻と、座標または地名のどちらかを保持します。
type BirthQuery struct {
	// Name は対象者の名前です。
	Name string

	// Date は出生日（YYYY-MM-DD形式）です。
	Date string

	// Time は出生時刻（HH:MM形式、24時間制）です。
	Time string

	// Timezone は出生地のIANAタイムゾーン名または固定オフセットです。
	Timezone string

	// Lat / Lon は出生地の座標です。nilの場合はPlaceで解決します。
	Lat *float64
	Lon *float64

	// Place は座標が無い場合にジオコーディングする地名です。
	Place string
}

// chartUsecase はチャート関連のビジネスロジックを実装します。
type chartUsecase struct {
	calculator ChartCalculator
	charts     ChartRepository
	orders     OrderDirectory
	places     PlaceResolver
}

// NewChartUsecase はchartUsecaseの新しいインスタンスを生成します。
func NewChartUsecase(calculator ChartCalculator, charts ChartRepository, orders OrderDirectory, places PlaceResolver) *chartUsecase {
	return &chartUsecase{
		calculator: calculator,
		charts:     charts,
		orders:     orders,
		places:     places,
	}
}

// Preview は出生情報からチャートを計算して返します。永続化は行いません。
func (u *chartUsecase) Preview(ctx context.Context, q BirthQuery) (entity.Chart, error) {
	input, err := u.buildInput(ctx, q)
	if err != nil {
		return entity.Chart{}, err
	}
	return u.calculator.Compute(ctx, input)
}

// Attach はチャートを計算し、指定された注文に紐づけて永続化します。
// 注文が存在しない場合はErrOrderNotFound、既にチャートが紐づいている場合は
// ErrChartAlreadyExistsを返します。
func (u *chartUsecase) Attach(ctx context.Context, orderID string, q BirthQuery) (*entity.ChartRecord, error) {
	ok, err := u.orders.Exists(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	if !ok {
		return nil, ErrOrderNotFound
	}

	input, err := u.buildInput(ctx, q)
	if err != nil {
		return nil, err
	}

	chart, err := u.calculator.Compute(ctx, input)
	if err != nil {
		return nil, err
	}

	doc, err := domain.EncodeDocument(chart)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart document: %w", err)
	}

	record := &entity.ChartRecord{
		OrderID:  orderID,
		Name:     chart.Input.Name,
		Hash:     chart.Hash,
		Document: doc,
	}
	if err := u.charts.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DocumentByOrder は注文に紐づくチャート記録を取得します。
// チャートが無い場合、注文自体が無ければErrOrderNotFoundを、
// 注文はあるがチャート未添付ならErrChartNotFoundを返します。
func (u *chartUsecase) DocumentByOrder(ctx context.Context, orderID string) (*entity.ChartRecord, error) {
	record, err := u.charts.FindByOrderID(ctx, orderID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, ErrChartNotFound) {
		return nil, err
	}

	// チャート未検出の場合のみ、注文の有無で404の理由を区別する
	ok, lookupErr := u.orders.Exists(ctx, orderID)
	if lookupErr != nil {
		return nil, fmt.Errorf("failed to look up order: %w", lookupErr)
	}
	if !ok {
		return nil, ErrOrderNotFound
	}
	return nil, ErrChartNotFound
}

// buildInput はBirthQueryを検証し、計算エンジン向けの入力に変換します。
func (u *chartUsecase) buildInput(ctx context.Context, q BirthQuery) (entity.BirthInput, error) {
	date, err := time.Parse(birthDateLayout, q.Date)
	if err != nil {
		return entity.BirthInput{}, fmt.Errorf("%w: birth date must be in YYYY-MM-DD format", domain.ErrInvalidTimeInput)
	}
	clock, err := time.Parse(birthTimeLayout, q.Time)
	if err != nil {
		return entity.BirthInput{}, fmt.Errorf("%w: birth time must be in HH:MM format", domain.ErrInvalidTimeInput)
	}

	lat, lon, err := u.locate(ctx, q)
	if err != nil {
		return entity.BirthInput{}, err
	}

	return entity.BirthInput{
		Name:      q.Name,
		Year:      date.Year(),
		Month:     int(date.Month()),
		Day:       date.Day(),
		Hour:      clock.Hour(),
		Minute:    clock.Minute(),
		Timezone:  q.Timezone,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

// locate は座標を決定します。明示的な座標があればそれを優先し、
// 無ければ地名をジオコーディングします。どちらも無ければエラーです。
func (u *chartUsecase) locate(ctx context.Context, q BirthQuery) (float64, float64, error) {
	if q.Lat != nil && q.Lon != nil {
		return *q.Lat, *q.Lon, nil
	}
	if q.Place == "" {
		return 0, 0, ErrLocationRequired
	}
	lat, lon, err := u.places.Resolve(ctx, q.Place)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}
