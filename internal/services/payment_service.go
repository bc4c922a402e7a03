package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"saarthi/internal/database"
	"saarthi/internal/models"

	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"
)

type PaymentService struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
	db        *gorm.DB
}

func NewPaymentService() (*PaymentService, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
	}

	return &PaymentService{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
		db:        database.GetDB(),
	}, nil
}

// KeyID exposes the public key the checkout widget needs
func (s *PaymentService) KeyID() string {
	return s.keyID
}

// DiscountedPricePaise applies a percent-off coupon to a plan price. Out of
// range percentages leave the price untouched.
func DiscountedPricePaise(pricePaise int64, percentOff int) int64 {
	if percentOff <= 0 || percentOff > 100 {
		return pricePaise
	}
	return pricePaise - pricePaise*int64(percentOff)/100
}

// CreateOrder prices the plan (coupon included), creates the Razorpay order
// and persists our side of it
func (s *PaymentService) CreateOrder(advisorID uint, plan models.Plan, coupon *models.Coupon) (*models.PaymentOrder, error) {
	percentOff := 0
	couponCode := ""
	if coupon != nil {
		percentOff = coupon.PercentOff
		couponCode = coupon.Code
	}
	amount := DiscountedPricePaise(plan.PricePaise, percentOff)

	data := map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  fmt.Sprintf("advisor_%d_%d", advisorID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"advisor_id": fmt.Sprintf("%d", advisorID),
			"plan":       string(plan.Code),
		},
	}

	rzpOrder, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, ok := rzpOrder["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	order := models.PaymentOrder{
		AdvisorID:       advisorID,
		PlanCode:        plan.Code,
		CouponCode:      couponCode,
		AmountPaise:     amount,
		Currency:        "INR",
		RazorpayOrderID: orderID,
		Status:          models.PaymentCreated,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to persist payment order: %w", err)
	}

	return &order, nil
}

// VerifySignature checks the checkout callback against Razorpay's HMAC scheme:
// hex(HMAC-SHA256(order_id + "|" + payment_id, key_secret))
func (s *PaymentService) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyRazorpaySignature(orderID, paymentID, signature, s.keySecret)
}

// VerifyRazorpaySignature is the pure form of the signature check
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the
// raw webhook body: hex(HMAC-SHA256(body, webhook_secret))
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ConfirmPayment marks the order paid, burns the coupon use and activates the
// advisor's subscription, all in one transaction
func (s *PaymentService) ConfirmPayment(order *models.PaymentOrder, paymentID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Updates(map[string]interface{}{
			"razorpay_payment_id": paymentID,
			"status":              models.PaymentPaid,
			"updated_at":          time.Now(),
		}).Error; err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}

		if order.CouponCode != "" {
			if err := tx.Model(&models.Coupon{}).
				Where("code = ?", order.CouponCode).
				Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return fmt.Errorf("failed to record coupon use: %w", err)
			}
		}

		var plan models.Plan
		if err := tx.Where("code = ?", order.PlanCode).First(&plan).Error; err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}

		expiresAt := subscriptionExpiry(tx, order.AdvisorID, plan)
		if err := tx.Model(&models.Advisor{}).
			Where("id = ?", order.AdvisorID).
			Updates(map[string]interface{}{
				"subscription_status":     models.SubscriptionActive,
				"subscription_expires_at": expiresAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to activate subscription: %w", err)
		}

		return nil
	})
}

// subscriptionExpiry extends a still-running subscription, otherwise starts
// the new period today
func subscriptionExpiry(tx *gorm.DB, advisorID uint, plan models.Plan) time.Time {
	base := time.Now()
	var advisor models.Advisor
	if err := tx.Select("subscription_expires_at").First(&advisor, advisorID).Error; err == nil {
		if advisor.SubscriptionExpiresAt != nil && advisor.SubscriptionExpiresAt.After(base) {
			base = *advisor.SubscriptionExpiresAt
		}
	}
	return base.AddDate(0, 0, plan.DurationDay)
}

// MarkFailed records a failed verification so the order can't be replayed
func (s *PaymentService) MarkFailed(order *models.PaymentOrder) {
	if err := s.db.Model(order).Updates(map[string]interface{}{
		"status":     models.PaymentFailed,
		"updated_at": time.Now(),
	}).Error; err != nil {
		// Best effort; verification already failed the request
		log.Printf("Warning: failed to mark order %s failed: %v", order.RazorpayOrderID, err)
	}
}
