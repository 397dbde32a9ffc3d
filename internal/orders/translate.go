package orders

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"relay/internal/alpaca"
	"relay/internal/models"
)

// Fixed order parameters. Every relayed signal becomes a one-unit day
// limit order.
const (
	DefaultQuantity    = "1"
	DefaultOrderType   = alpaca.OrderTypeLimit
	DefaultTimeInForce = alpaca.TimeInForceDay
)

// ParseSide maps a case-insensitive action to an order side
func ParseSide(action string) (alpaca.Side, error) {
	switch strings.ToLower(action) {
	case "buy":
		return alpaca.SideBuy, nil
	case "sell":
		return alpaca.SideSell, nil
	default:
		return "", &ValidationError{Field: "action", Value: action, Err: ErrInvalidAction}
	}
}

// Translate converts a webhook signal into an Alpaca limit order. The
// ticker is upper-cased and the price is forwarded verbatim; neither is
// otherwise validated.
func Translate(req models.WebhookRequest) (*alpaca.OrderRequest, error) {
	side, err := ParseSide(req.Action)
	if err != nil {
		return nil, err
	}

	price := req.Price
	return &alpaca.OrderRequest{
		Symbol:      upper(req.Ticker),
		Qty:         DefaultQuantity,
		Side:        side,
		Type:        DefaultOrderType,
		TimeInForce: DefaultTimeInForce,
		LimitPrice:  &price,
	}, nil
}

// upper applies full Unicode case mapping, so "ß" becomes "SS". A Caser
// holds state and is built per call.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Notional returns qty * limit price for logging. ok is false when either
// value is not numeric; the order itself is never altered.
func Notional(order *alpaca.OrderRequest) (decimal.Decimal, bool) {
	if order == nil || order.LimitPrice == nil {
		return decimal.Zero, false
	}

	qty, err := decimal.NewFromString(order.Qty)
	if err != nil {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(*order.LimitPrice)
	if err != nil {
		return decimal.Zero, false
	}

	return qty.Mul(price), true
}
