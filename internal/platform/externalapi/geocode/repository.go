package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"natal_backend/internal/feature/chart/usecase"
	"natal_backend/internal/platform/externalapi/geocode/dto"
)

// GeocodePlaces はOpen-Meteoジオコーディング外部APIで地名を座標に解決するPlaceResolver実装です。
type GeocodePlaces struct {
	cfg    Config
	client *http.Client
}

// GeocodePlacesがPlaceResolverを実装していることをコンパイル時に検証します。
var _ usecase.PlaceResolver = (*GeocodePlaces)(nil)

// NewGeocodePlaces は指定された設定とHTTPクライアントでGeocodePlacesの新しいインスタンスを生成します。
func NewGeocodePlaces(cfg Config, client *http.Client) *GeocodePlaces {
	return &GeocodePlaces{cfg: cfg, client: client}
}

// Resolve はOpen-Meteoジオコーディングapiで地名を検索し、
// 最上位候補の緯度・経度を返します。
func (g *GeocodePlaces) Resolve(ctx context.Context, place string) (float64, float64, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("name", place)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	// URLを生成
	u := fmt.Sprintf("%s/v1/search?%s", g.cfg.BaseURL, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, err
	}

	// リクエストを実行
	res, err := g.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return 0, 0, fmt.Errorf("geocoding http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, 0, err
	}

	// 候補なしは「見つからない」として呼び出し側に区別させる
	if len(body.Results) == 0 {
		return 0, 0, fmt.Errorf("%w: %q", usecase.ErrPlaceNotFound, place)
	}

	top := body.Results[0]
	return top.Latitude, top.Longitude, nil
}
