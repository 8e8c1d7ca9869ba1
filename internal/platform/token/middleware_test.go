package token

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestContext はリクエストとオプションの:idパラメータを持つテスト用コンテキストを生成します。
func newTestContext(t *testing.T, authHeader, paramID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	if paramID != "" {
		c.Params = gin.Params{{Key: "id", Value: paramID}}
	}
	return c, w
}

// TestOrderAccessRequired_MissingBearerToken はBearerトークンがない場合やプレフィックスが不正な場合に401が返されることを検証します。
func TestOrderAccessRequired_MissingBearerToken(t *testing.T) {
	t.Setenv(EnvKeyOrderTokenSecret, testSecret)

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, tt.authHeader, "")

			OrderAccessRequired()(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestOrderAccessRequired_MissingSecret はORDER_TOKEN_SECRET未設定の場合に500が返されることを検証します。
func TestOrderAccessRequired_MissingSecret(t *testing.T) {
	t.Setenv(EnvKeyOrderTokenSecret, "")

	issuer := NewOrderIssuer(testSecret, time.Hour)
	tokenStr, err := issuer.IssueOrderToken("order-1")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	c, w := newTestContext(t, "Bearer "+tokenStr, "")
	OrderAccessRequired()(c)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

// TestOrderAccessRequired_InvalidToken は署名不正・期限切れ・スコープ不正のトークンが401で拒否されることを検証します。
func TestOrderAccessRequired_InvalidToken(t *testing.T) {
	t.Setenv(EnvKeyOrderTokenSecret, testSecret)

	wrongScope := func(t *testing.T) string {
		t.Helper()
		claims := jwt.MapClaims{
			"sub":   "order-1",
			"scope": "user",
			"exp":   time.Now().Add(time.Hour).Unix(),
			"iat":   time.Now().Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		return signed
	}

	missingSub := func(t *testing.T) string {
		t.Helper()
		claims := jwt.MapClaims{
			"scope": "order",
			"exp":   time.Now().Add(time.Hour).Unix(),
			"iat":   time.Now().Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		return signed
	}

	tests := []struct {
		name     string
		tokenStr func(t *testing.T) string
	}{
		{
			name:     "garbage token",
			tokenStr: func(t *testing.T) string { return "not-a-jwt" },
		},
		{
			name: "wrong signing secret",
			tokenStr: func(t *testing.T) string {
				tok, err := NewOrderIssuer("other-secret", time.Hour).IssueOrderToken("order-1")
				if err != nil {
					t.Fatalf("failed to issue token: %v", err)
				}
				return tok
			},
		},
		{
			name: "expired token",
			tokenStr: func(t *testing.T) string {
				tok, err := NewOrderIssuer(testSecret, -time.Hour).IssueOrderToken("order-1")
				if err != nil {
					t.Fatalf("failed to issue token: %v", err)
				}
				return tok
			},
		},
		{name: "wrong scope", tokenStr: wrongScope},
		{name: "missing subject", tokenStr: missingSub},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, "Bearer "+tt.tokenStr(t), "")

			OrderAccessRequired()(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
		})
	}
}

// TestOrderAccessRequired_OrderMismatch はトークンの注文IDとルートパラメータが一致しない場合に403が返されることを検証します。
func TestOrderAccessRequired_OrderMismatch(t *testing.T) {
	t.Setenv(EnvKeyOrderTokenSecret, testSecret)

	tokenStr, err := NewOrderIssuer(testSecret, time.Hour).IssueOrderToken("order-1")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	c, w := newTestContext(t, "Bearer "+tokenStr, "order-2")
	OrderAccessRequired()(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	if !c.IsAborted() {
		t.Error("expected request to be aborted")
	}
}

// TestOrderAccessRequired_Success は有効なトークンで注文IDがコンテキストに設定されることを検証します。
func TestOrderAccessRequired_Success(t *testing.T) {
	t.Setenv(EnvKeyOrderTokenSecret, testSecret)

	tokenStr, err := NewOrderIssuer(testSecret, time.Hour).IssueOrderToken("order-1")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tests := []struct {
		name    string
		paramID string
	}{
		{"matching route parameter", "order-1"},
		{"no route parameter", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t, "Bearer "+tokenStr, tt.paramID)

			OrderAccessRequired()(c)

			if c.IsAborted() {
				t.Fatal("expected request to pass through")
			}
			got, ok := c.Get(ContextOrderID)
			if !ok {
				t.Fatal("expected order id to be set in context")
			}
			if got != "order-1" {
				t.Errorf("expected order id %q, got %v", "order-1", got)
			}
		})
	}
}
