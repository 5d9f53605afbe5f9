package payment

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway() *GatewayService {
	return &GatewayService{
		MerchantID:     "1211149",
		MerchantSecret: "super-secret-merchant-key",
		Currency:       "LKR",
		CheckoutURL:    "https://sandbox.gateway.example/pay/checkout",
		ReturnURL:      "https://daycare.example/payment/return",
		CancelURL:      "https://daycare.example/payment/cancel",
		NotifyURL:      "https://daycare.example/api/v1/payments/notify",
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1500", "1500.00"},
		{"1500.5", "1500.50"},
		{"100.00", "100.00"}, // already normalized stays stable
		{"0.005", "0.01"},
		{"99.999", "100.00"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, FormatAmount(d), "amount %s", tc.in)
	}
}

func TestFormatAmountIdempotent(t *testing.T) {
	once := FormatAmountString("1500")
	twice := FormatAmountString(once)
	assert.Equal(t, "1500.00", once)
	assert.Equal(t, once, twice)
}

func TestFormatAmountStringInvalid(t *testing.T) {
	assert.Equal(t, "", FormatAmountString("not-a-number"))
	assert.Equal(t, "", FormatAmountString(""))
}

func TestCheckoutChecksumDeterministic(t *testing.T) {
	g := testGateway()

	first := g.CheckoutChecksum("DC1700000000000001", "1500.00")
	second := g.CheckoutChecksum("DC1700000000000001", "1500.00")

	assert.Equal(t, first, second)
	assert.Equal(t, strings.ToUpper(first), first, "checksum must be uppercased hex")
	assert.Len(t, first, 32)
}

func TestCheckoutChecksumRecipe(t *testing.T) {
	g := testGateway()

	secretHash := md5.Sum([]byte(g.MerchantSecret))
	secretDigest := strings.ToUpper(hex.EncodeToString(secretHash[:]))
	plain := g.MerchantID + "DC42" + "250.00" + "LKR" + secretDigest
	sum := md5.Sum([]byte(plain))
	want := strings.ToUpper(hex.EncodeToString(sum[:]))

	assert.Equal(t, want, g.CheckoutChecksum("DC42", "250.00"))
}

func TestVerifyRoundTrip(t *testing.T) {
	g := testGateway()

	orderID := "DC1700000000000777"
	amount := "1500.00"
	checksum := g.NotifyChecksum(g.MerchantID, orderID, amount, g.Currency, StatusCodeSuccess)

	result := g.Verify(g.MerchantID, orderID, "1500", g.Currency, StatusCodeSuccess, checksum)
	assert.Equal(t, ResultAuthentic, result)
}

func TestVerifyAcceptsLowercaseChecksum(t *testing.T) {
	g := testGateway()

	checksum := g.NotifyChecksum(g.MerchantID, "DC9", "10.00", g.Currency, StatusCodeSuccess)
	result := g.Verify(g.MerchantID, "DC9", "10.00", g.Currency, StatusCodeSuccess, strings.ToLower(checksum))
	assert.Equal(t, ResultAuthentic, result)
}

func TestVerifyTamperDetection(t *testing.T) {
	g := testGateway()

	orderID := "DC1700000000000778"
	checksum := g.NotifyChecksum(g.MerchantID, orderID, "1500.00", g.Currency, StatusCodeSuccess)

	t.Run("flipped checksum character", func(t *testing.T) {
		tampered := []byte(checksum)
		if tampered[0] == 'A' {
			tampered[0] = 'B'
		} else {
			tampered[0] = 'A'
		}
		result := g.Verify(g.MerchantID, orderID, "1500.00", g.Currency, StatusCodeSuccess, string(tampered))
		assert.Equal(t, ResultTampered, result)
	})

	t.Run("changed amount", func(t *testing.T) {
		result := g.Verify(g.MerchantID, orderID, "1501.00", g.Currency, StatusCodeSuccess, checksum)
		assert.Equal(t, ResultTampered, result)
	})

	t.Run("changed currency", func(t *testing.T) {
		result := g.Verify(g.MerchantID, orderID, "1500.00", "USD", StatusCodeSuccess, checksum)
		assert.Equal(t, ResultTampered, result)
	})

	t.Run("changed status code", func(t *testing.T) {
		result := g.Verify(g.MerchantID, orderID, "1500.00", g.Currency, "-2", checksum)
		assert.Equal(t, ResultTampered, result)
	})

	t.Run("missing checksum", func(t *testing.T) {
		result := g.Verify(g.MerchantID, orderID, "1500.00", g.Currency, StatusCodeSuccess, "")
		assert.Equal(t, ResultTampered, result)
	})

	t.Run("missing fields", func(t *testing.T) {
		result := g.Verify("", "", "", "", "", checksum)
		assert.Equal(t, ResultTampered, result)
	})
}

func TestNotifyChecksumIncludesStatusCode(t *testing.T) {
	g := testGateway()

	success := g.NotifyChecksum(g.MerchantID, "DC1", "100.00", g.Currency, StatusCodeSuccess)
	failed := g.NotifyChecksum(g.MerchantID, "DC1", "100.00", g.Currency, "0")
	assert.NotEqual(t, success, failed)
}

func TestNewOrderID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewOrderID()
		assert.True(t, strings.HasPrefix(id, "DC"))
		assert.False(t, seen[id], "order id %s repeated", id)
		seen[id] = true
	}
}
