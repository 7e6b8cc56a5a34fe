package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"supermarket-pos/internal/domain"
	"supermarket-pos/internal/service/register"
	"supermarket-pos/internal/session"
)

type authClient interface {
	Login(ctx context.Context, username, password string) (token, role string, err error)
	Register(ctx context.Context, username, password string) error
}

type sessionStore interface {
	Issue(username, role, token string) session.Session
	Validate(id string) (session.Session, bool)
	Revoke(id string)
}

type catalogService interface {
	Refresh(ctx context.Context, token string) error
	Search(query string) []domain.Product
	Categories() []string
	FetchedAt() time.Time
}

type productAdmin interface {
	CreateProduct(ctx context.Context, token string, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, token string, id int64) error
}

type registerService interface {
	Open() string
	Close(id string)
	State(id string) (*register.State, error)
	AddItem(id string, productID int64) error
	SetQuantity(id string, productID int64, quantity int) error
	RemoveItem(id string, productID int64) error
	SetCustomer(id, name, phone string) error
	BeginPayment(id string) error
	CancelPayment(id string) error
	SelectPaymentMethod(id string, m domain.PaymentMethod) error
	SetTendered(id, raw string) error
	Checkout(ctx context.Context, token, id string) (*register.CheckoutResult, error)
}

type statsService interface {
	Refresh(ctx context.Context, token string) (*domain.Stats, error)
	Snapshot() (*domain.Stats, bool)
}

type healthPinger interface {
	Health(ctx context.Context) error
}

// Deps collects everything the routes need.
type Deps struct {
	Auth      authClient
	Sessions  sessionStore
	Catalog   catalogService
	Products  productAdmin
	Registers registerService
	Stats     statsService
	Store     healthPinger
}

// buildRouter wires the POS routes.
func buildRouter(logger *log.Logger, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	if deps.Sessions == nil {
		return nil, errors.New("session store required")
	}
	if deps.Registers == nil {
		return nil, errors.New("register service required")
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(allowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = allowedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		corsCfg.AllowCredentials = true
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))

	api := router.Group("/api")
	api.POST("/auth/login", loginHandler(deps))
	api.POST("/auth/register", registerUserHandler(deps))

	authed := api.Group("", authRequired(deps.Sessions))
	authed.POST("/auth/logout", logoutHandler(deps))

	authed.GET("/products", listProductsHandler(deps))
	authed.POST("/products/refresh", refreshProductsHandler(deps))

	admin := authed.Group("", adminRequired())
	admin.POST("/products", createProductHandler(deps))
	admin.PUT("/products/:id", updateProductHandler(deps))
	admin.DELETE("/products/:id", deleteProductHandler(deps))

	authed.GET("/stats", statsHandler(deps))

	authed.POST("/registers", openRegisterHandler(deps))
	authed.GET("/registers/:id", registerStateHandler(deps))
	authed.DELETE("/registers/:id", closeRegisterHandler(deps))
	authed.POST("/registers/:id/items", addItemHandler(deps))
	authed.PUT("/registers/:id/items/:productId", setQuantityHandler(deps))
	authed.DELETE("/registers/:id/items/:productId", removeItemHandler(deps))
	authed.PUT("/registers/:id/customer", setCustomerHandler(deps))
	authed.POST("/registers/:id/payment", beginPaymentHandler(deps))
	authed.DELETE("/registers/:id/payment", cancelPaymentHandler(deps))
	authed.PUT("/registers/:id/payment/method", selectMethodHandler(deps))
	authed.PUT("/registers/:id/payment/tendered", setTenderedHandler(deps))
	authed.POST("/registers/:id/checkout", checkoutHandler(deps))

	return router, nil
}
