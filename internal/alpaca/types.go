package alpaca

// Side is the order direction
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderType is the Alpaca order type
type OrderType string

const (
	OrderTypeLimit OrderType = "limit"
)

// TimeInForce controls how long an order stays working
type TimeInForce string

const (
	TimeInForceDay TimeInForce = "day"
)

// OrderRequest is the body of POST /v2/orders
type OrderRequest struct {
	Symbol      string      `json:"symbol"`
	Qty         string      `json:"qty"`
	Side        Side        `json:"side"`
	Type        OrderType   `json:"type"`
	TimeInForce TimeInForce `json:"time_in_force"`
	LimitPrice  *string     `json:"limit_price,omitempty"`
}
