package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Asset is a crypto currency accepted for payment.
type Asset string

const (
	TON  Asset = "TON"
	USDT Asset = "USDT"
	BTC  Asset = "BTC"
	ETH  Asset = "ETH"
	LTC  Asset = "LTC"
	USDC Asset = "USDC"
)

var ErrUnknownAsset = errors.New("unknown crypto asset")

// Approximate rates, 1 unit of crypto = X RUB. The table is fixed at build
// time and never mutated; staleness is an accepted limitation.
var rates = map[Asset]decimal.Decimal{
	TON:  decimal.NewFromInt(285),
	USDT: decimal.NewFromInt(105),
	BTC:  decimal.NewFromInt(10_500_000),
	ETH:  decimal.NewFromInt(370_000),
	LTC:  decimal.NewFromInt(11_000),
	USDC: decimal.NewFromInt(105),
}

var minimums = map[Asset]string{
	TON:  "0.1",
	USDT: "1",
	BTC:  "0.00001",
	ETH:  "0.001",
	LTC:  "0.01",
	USDC: "1",
}

// Supported reports whether the asset is a member of the accepted set.
func Supported(asset Asset) bool {
	_, ok := rates[asset]
	return ok
}

// Convert converts a RUB amount to the asset's units, formatted with the
// asset's display precision. The result is an exact decimal string, amounts
// never pass through float64.
func Convert(rubAmount int64, asset Asset) (string, error) {
	rate, ok := rates[asset]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}

	prec := Precision(asset)
	return decimal.NewFromInt(rubAmount).DivRound(rate, prec).StringFixed(prec), nil
}

// Precision returns the number of decimal places used when displaying amounts
// of the asset: high precision for expensive coins, 2 by default.
func Precision(asset Asset) int32 {
	switch asset {
	case BTC, ETH:
		return 8
	case TON:
		return 4
	default:
		return 2
	}
}

// MinimumAmount is the smallest invoice amount the payment provider accepts
// for the asset, in the asset's own units.
func MinimumAmount(asset Asset) (decimal.Decimal, error) {
	min, ok := minimums[asset]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	return decimal.RequireFromString(min), nil
}

// Format renders an amount for display, e.g. "0.7018 TON".
func Format(amount string, asset Asset) string {
	return fmt.Sprintf("%s %s", amount, asset)
}
