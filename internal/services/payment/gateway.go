package payment

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"daycare_backend/internal/config"

	"github.com/shopspring/decimal"
)

// StatusCodeSuccess is the gateway's status code for a completed payment.
const StatusCodeSuccess = "2"

// VerificationResult is the outcome of checking a notify callback.
// A tampered payload is a legitimate negative outcome, not an error.
type VerificationResult int

const (
	ResultTampered VerificationResult = iota
	ResultAuthentic
)

func (r VerificationResult) String() string {
	if r == ResultAuthentic {
		return "authentic"
	}
	return "tampered"
}

// GatewayService implements the checkout gateway's checksum recipes.
// The raw merchant secret never crosses the wire: both recipes embed an
// uppercased hex digest of the secret instead.
type GatewayService struct {
	MerchantID     string
	MerchantSecret string
	Currency       string
	CheckoutURL    string
	ReturnURL      string
	CancelURL      string
	NotifyURL      string
}

func NewGatewayService(cfg *config.Config) *GatewayService {
	return &GatewayService{
		MerchantID:     cfg.Payment.MerchantID,
		MerchantSecret: cfg.Payment.MerchantSecret,
		Currency:       cfg.Payment.Currency,
		CheckoutURL:    cfg.Payment.CheckoutURL,
		ReturnURL:      cfg.Payment.ReturnURL,
		CancelURL:      cfg.Payment.CancelURL,
		NotifyURL:      cfg.Payment.NotifyURL,
	}
}

// FormatAmount normalizes an amount to exactly two decimal places.
// The checksum is computed over this string, so creation and verification
// must format identically or verification breaks on rounding drift.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatAmountString normalizes a gateway-reported amount string. A value
// that does not parse yields an empty string, which can never produce a
// matching checksum.
func FormatAmountString(amount string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return ""
	}
	return FormatAmount(d)
}

func md5Upper(s string) string {
	hash := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(hash[:]))
}

// secretDigest is the fixed per-merchant value embedded in both recipes.
func (g *GatewayService) secretDigest() string {
	return md5Upper(g.MerchantSecret)
}

// CheckoutChecksum computes the checksum sent with a new checkout:
// hash(merchant_id + order_id + amount + currency + hash(secret)).
func (g *GatewayService) CheckoutChecksum(orderID, formattedAmount string) string {
	return md5Upper(g.MerchantID + orderID + formattedAmount + g.Currency + g.secretDigest())
}

// NotifyChecksum computes the expected checksum of a notify callback.
// Unlike the checkout recipe it includes the status code; the asymmetry
// is specified by the gateway protocol.
func (g *GatewayService) NotifyChecksum(merchantID, orderID, formattedAmount, currency, statusCode string) string {
	return md5Upper(merchantID + orderID + formattedAmount + currency + statusCode + g.secretDigest())
}

// Verify recomputes the notify checksum from the received fields and
// compares it to the received value. Missing fields produce a checksum
// that cannot match, so malformed payloads come out tampered.
func (g *GatewayService) Verify(merchantID, orderID, rawAmount, currency, statusCode, receivedChecksum string) VerificationResult {
	if receivedChecksum == "" {
		return ResultTampered
	}

	expected := g.NotifyChecksum(merchantID, orderID, FormatAmountString(rawAmount), currency, statusCode)
	if strings.EqualFold(expected, receivedChecksum) {
		return ResultAuthentic
	}
	return ResultTampered
}
