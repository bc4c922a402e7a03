package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"saarthi/internal/auth"
	"saarthi/internal/database"
	"saarthi/internal/models"
	"saarthi/internal/services"

	"github.com/gin-gonic/gin"
)

// GetPlans lists the purchasable subscription plans
func GetPlans(c *gin.Context) {
	db := database.GetDB()

	var plans []models.Plan
	if err := db.Order("price_paise ASC").Find(&plans).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch plans", err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// CreateOrder starts a checkout: a Razorpay order for the chosen plan, with an
// optional coupon applied
func CreateOrder(c *gin.Context) {
	var request models.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var plan models.Plan
	if err := db.Where("code = ?", request.Plan).First(&plan).Error; err != nil {
		handleError(c, http.StatusNotFound, "Plan not found", err)
		return
	}

	var coupon *models.Coupon
	if request.CouponCode != "" {
		var found models.Coupon
		if err := db.Where("code = ?", request.CouponCode).First(&found).Error; err != nil {
			handleError(c, http.StatusNotFound, "Coupon not found", err)
			return
		}
		if !found.Usable(time.Now()) {
			handleError(c, http.StatusBadRequest, "Coupon is no longer valid", errors.New("coupon expired or exhausted"))
			return
		}
		coupon = &found
	}

	paymentService, err := services.NewPaymentService()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Payment service unavailable", err)
		return
	}

	order, err := paymentService.CreateOrder(advisorID, plan, coupon)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create order", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":    order,
		"key_id":   paymentService.KeyID(),
		"amount":   order.AmountPaise,
		"currency": order.Currency,
	})
}

// VerifyPayment checks the signature Razorpay checkout handed back and, when
// it is genuine, activates the advisor's subscription
func VerifyPayment(c *gin.Context) {
	var request models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var order models.PaymentOrder
	if err := db.Where("razorpay_order_id = ? AND advisor_id = ?", request.RazorpayOrderID, advisorID).First(&order).Error; err != nil {
		handleError(c, http.StatusNotFound, "Order not found", err)
		return
	}
	if order.Status == models.PaymentPaid {
		c.JSON(http.StatusOK, gin.H{"message": "Payment already verified"})
		return
	}

	paymentService, err := services.NewPaymentService()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Payment service unavailable", err)
		return
	}

	if !paymentService.VerifySignature(request.RazorpayOrderID, request.RazorpayPaymentID, request.RazorpaySignature) {
		paymentService.MarkFailed(&order)
		handleError(c, http.StatusBadRequest, "Signature verification failed", errors.New("razorpay signature mismatch"))
		return
	}

	if err := paymentService.ConfirmPayment(&order, request.RazorpayPaymentID); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to activate subscription", err)
		return
	}

	var advisor models.Advisor
	if err := db.First(&advisor, advisorID).Error; err == nil {
		go func(a models.Advisor, o models.PaymentOrder) {
			if err := services.NewEmailService().SendPaymentReceiptEmail(a, o); err != nil {
				log.Printf("Warning: Failed to send payment receipt: %v", err)
			}
		}(advisor, order)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment verified", "order": order})
}

// razorpayWebhookEvent is the slice of the webhook payload we act on
type razorpayWebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// RazorpayWebhook handles Razorpay server-to-server events. It is the backstop
// for checkouts where the browser never came back to call verify: a captured
// payment still activates the subscription.
func RazorpayWebhook(c *gin.Context) {
	secret := os.Getenv("RAZORPAY_WEBHOOK_SECRET")
	if secret == "" {
		handleError(c, http.StatusInternalServerError, "Webhook not configured", errors.New("RAZORPAY_WEBHOOK_SECRET is not set"))
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Unreadable body", err)
		return
	}

	if !services.VerifyWebhookSignature(body, c.GetHeader("X-Razorpay-Signature"), secret) {
		handleError(c, http.StatusUnauthorized, "Signature verification failed", errors.New("webhook signature mismatch"))
		return
	}

	var event razorpayWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		handleError(c, http.StatusBadRequest, "Malformed event", err)
		return
	}

	db := database.GetDB()
	var order models.PaymentOrder
	if err := db.Where("razorpay_order_id = ?", event.Payload.Payment.Entity.OrderID).First(&order).Error; err != nil {
		// Not an order we created (or a test event); acknowledge so Razorpay stops retrying
		c.JSON(http.StatusOK, gin.H{"message": "ignored"})
		return
	}

	switch event.Event {
	case "payment.captured":
		if order.Status == models.PaymentPaid {
			c.JSON(http.StatusOK, gin.H{"message": "already processed"})
			return
		}
		paymentService, err := services.NewPaymentService()
		if err != nil {
			handleError(c, http.StatusInternalServerError, "Payment service unavailable", err)
			return
		}
		if err := paymentService.ConfirmPayment(&order, event.Payload.Payment.Entity.ID); err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to activate subscription", err)
			return
		}
	case "payment.failed":
		if order.Status == models.PaymentCreated {
			if err := db.Model(&order).Updates(map[string]interface{}{
				"status":     models.PaymentFailed,
				"updated_at": time.Now(),
			}).Error; err != nil {
				log.Printf("Warning: failed to mark order %s failed: %v", order.RazorpayOrderID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
