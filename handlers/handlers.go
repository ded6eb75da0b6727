package handlers

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"

	"song-order-service/internal/fulfillment"
	"song-order-service/middleware"
)

// StripeClient is the slice of the Stripe API this service uses. The live
// implementation delegates to the stripe-go bindings; tests substitute a mock.
type StripeClient interface {
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(id string) (*stripe.CheckoutSession, error)
}

type stripeClient struct{}

func NewStripeClient() StripeClient {
	return stripeClient{}
}

func (stripeClient) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

func (stripeClient) GetCheckoutSession(id string) (*stripe.CheckoutSession, error) {
	return session.Get(id, nil)
}

type Handler struct {
	stripe        StripeClient
	finalizer     *fulfillment.Finalizer
	frontendURL   string
	webhookSecret string
	taxed         bool
}

func NewHandler(client StripeClient, finalizer *fulfillment.Finalizer, frontendURL, webhookSecret string, taxed bool) *Handler {
	return &Handler{
		stripe:        client,
		finalizer:     finalizer,
		frontendURL:   frontendURL,
		webhookSecret: webhookSecret,
		taxed:         taxed,
	}
}

// API builds the gin engine with the full route surface.
func API(h *Handler) *gin.Engine {
	r := gin.New()
	mode := os.Getenv("GIN_MODE")
	if mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r.Use(middleware.Logger(), gin.Recovery())
	r.Use(cors.Default())

	r.GET("/ping", HealthCheck)
	r.POST("/create-checkout-session", h.CreateCheckoutSession)
	r.GET("/session-status", h.SessionStatus)
	r.POST("/webhook", h.Webhook)

	return r
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// Error codes of the closed response taxonomy. Notification errors are logged
// only and never surface here.
const (
	codeValidation = "validation_error"
	codeUpstream   = "upstream_error"
)

func respondValidationError(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg, "code": codeValidation})
}

func respondUpstreamError(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": msg, "code": codeUpstream})
}
