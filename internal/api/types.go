// Package api defines the JSON wire types shared by every HTTP
// handler: request bodies, response envelopes and error payloads.
package api

import "encoding/json"

// ErrorResponse is the uniform error payload for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by the service root endpoint.
type StatusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// BirthDetails is the JSON shape of birth data accepted by the chart
// endpoints. Either coordinates or a place name must be present; a
// place name is resolved through the geocoder.
type BirthDetails struct {
	Name      string   `json:"name" binding:"required"`
	BirthDate string   `json:"birthDate" binding:"required"` // "YYYY-MM-DD"
	BirthTime string   `json:"birthTime" binding:"required"` // "HH:MM"
	Timezone  string   `json:"timezone"`                     // IANA name or fixed offset, defaults to UTC
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Place     string   `json:"place"`
}

// PreviewChart is the teaser summary shown before purchase.
type PreviewChart struct {
	SunSign      string  `json:"sun_sign"`
	SunDegree    float64 `json:"sun_degree"`
	MoonSign     string  `json:"moon_sign"`
	MoonDegree   float64 `json:"moon_degree"`
	RisingSign   string  `json:"rising_sign"`
	RisingDegree float64 `json:"rising_degree"`
	ChartHash    string  `json:"chart_hash"`
}

// PreviewChartResponse wraps a preview result.
type PreviewChartResponse struct {
	Success bool         `json:"success"`
	Chart   PreviewChart `json:"chart"`
}

// ChartEnvelope carries a stored canonical chart document. Chart holds
// the document bytes verbatim so the payload stays hash-stable.
type ChartEnvelope struct {
	OrderID   string          `json:"order_id"`
	ChartHash string          `json:"chart_hash"`
	Chart     json.RawMessage `json:"chart"`
}

// CreateOrderRequest opens an order for one report plan.
type CreateOrderRequest struct {
	Plan          string `json:"plan"` // empty selects the default tier
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerName  string `json:"customer_name"`
}

// OrderResponse describes a created order. AccessToken authorizes the
// order-scoped chart and reading endpoints.
type OrderResponse struct {
	OrderID     string `json:"order_id"`
	Plan        string `json:"plan"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	AccessToken string `json:"access_token,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// PlanResponse is one entry of the public plan catalog.
type PlanResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// ReadingSection is one block of interpretive text.
type ReadingSection struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ReadingResponse is the assembled interpretation for an order's chart.
type ReadingResponse struct {
	OrderID   string           `json:"order_id"`
	ChartHash string           `json:"chart_hash"`
	Source    string           `json:"source"`
	Sections  []ReadingSection `json:"sections"`
}
