// Package gemini はGoogle Gemini APIを使用した読み物ナレーションクライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"natal_backend/internal/feature/reading/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiNarrator はGoogle Gemini APIを使用して読み物の追加ナレーションを生成します。
type GeminiNarrator struct {
	client *genai.Client
	model  string
}

// GeminiNarratorがNarratorを実装していることをコンパイル時に検証します。
var _ usecase.Narrator = (*GeminiNarrator)(nil)

// NewGeminiNarrator はADCを使用してGeminiNarratorの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiNarrator(ctx context.Context) (*GeminiNarrator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiNarrator{client: client, model: DefaultModel}, nil
}

// Narrate はプロンプトからナレーション本文を生成します。
func (g *GeminiNarrator) Narrate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
