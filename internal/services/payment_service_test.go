package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"saarthi/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedPricePaise(t *testing.T) {
	assert.Equal(t, int64(99900), DiscountedPricePaise(99900, 0))
	assert.Equal(t, int64(89910), DiscountedPricePaise(99900, 10))
	assert.Equal(t, int64(49950), DiscountedPricePaise(99900, 50))
	assert.Equal(t, int64(0), DiscountedPricePaise(99900, 100))

	// Out of range percentages leave the price untouched
	assert.Equal(t, int64(99900), DiscountedPricePaise(99900, -5))
	assert.Equal(t, int64(99900), DiscountedPricePaise(99900, 101))

	// Discount is computed in integer paise, fractional paise truncate
	assert.Equal(t, int64(68), DiscountedPricePaise(101, 33))
}

func signPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	orderID := "order_EKwxwAgItmmXdp"
	paymentID := "pay_DGmLuKWbpIGEnb"
	secret := "test_key_secret"

	good := signPayment(orderID, paymentID, secret)
	assert.True(t, VerifyRazorpaySignature(orderID, paymentID, good, secret))

	// Any tampering fails the check
	assert.False(t, VerifyRazorpaySignature(orderID, paymentID, good, "other_secret"))
	assert.False(t, VerifyRazorpaySignature(orderID, "pay_other", good, secret))
	assert.False(t, VerifyRazorpaySignature(orderID, paymentID, good[:len(good)-1]+"0", secret))
	assert.False(t, VerifyRazorpaySignature(orderID, paymentID, "", secret))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
	secret := "webhook_secret"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	good := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifyWebhookSignature(body, good, secret))
	assert.False(t, VerifyWebhookSignature(body, good, "wrong_secret"))
	assert.False(t, VerifyWebhookSignature(append(body, ' '), good, secret))
	assert.False(t, VerifyWebhookSignature(body, "", secret))
}

func TestCouponUsable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	fresh := models.Coupon{Code: "LAUNCH10", PercentOff: 10, ExpiresAt: &future, MaxUses: 100}
	assert.True(t, fresh.Usable(now))

	expired := models.Coupon{Code: "OLD", PercentOff: 10, ExpiresAt: &past}
	assert.False(t, expired.Usable(now))

	exhausted := models.Coupon{Code: "FULL", PercentOff: 10, MaxUses: 5, UsedCount: 5}
	assert.False(t, exhausted.Usable(now))

	unlimited := models.Coupon{Code: "EVERGREEN", PercentOff: 25}
	assert.True(t, unlimited.Usable(now))

	zeroOff := models.Coupon{Code: "NOOP", PercentOff: 0}
	assert.False(t, zeroOff.Usable(now))
}
