package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/storefront/internal/cart"
	cartdomain "github.com/smallbiznis/storefront/internal/cart/domain"
	"github.com/smallbiznis/storefront/internal/catalog"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/checkout"
	checkoutdomain "github.com/smallbiznis/storefront/internal/checkout/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/notifier"
	"github.com/smallbiznis/storefront/internal/order"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/payment"
	paymentdomain "github.com/smallbiznis/storefront/internal/payment/domain"
	"github.com/smallbiznis/storefront/internal/realtime"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	catalog.Module,
	cart.Module,
	order.Module,
	checkout.Module,
	payment.Module,
	realtime.Module,
	notifier.Module,
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.ListenAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	catalogSvc  catalogdomain.Service
	cartSvc     cartdomain.Service
	orderSvc    orderdomain.Service
	checkoutSvc checkoutdomain.Service
	webhookSvc  paymentdomain.Service
	hub         *realtime.Hub
	directory   *realtime.Directory
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	CatalogSvc  catalogdomain.Service
	CartSvc     cartdomain.Service
	OrderSvc    orderdomain.Service
	CheckoutSvc checkoutdomain.Service
	WebhookSvc  paymentdomain.Service
	Hub         *realtime.Hub
	Directory   *realtime.Directory
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("http.server"),
		catalogSvc:  p.CatalogSvc,
		cartSvc:     p.CartSvc,
		orderSvc:    p.OrderSvc,
		checkoutSvc: p.CheckoutSvc,
		webhookSvc:  p.WebhookSvc,
		hub:         p.Hub,
		directory:   p.Directory,
	}

	svc.registerAPIRoutes()
	svc.registerWebhookRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/session", s.CreateSession)
	api.DELETE("/session", s.DestroySession)

	// -------- Catalog --------
	api.GET("/products", s.ListProducts)
	api.GET("/products/:id", s.GetProductByID)
	api.POST("/products", s.CreateProduct)

	// -------- Cart --------
	buyer := api.Group("", s.BuyerRequired())
	{
		buyer.GET("/cart", s.GetCart)
		buyer.POST("/cart/items", s.AddCartItem)
		buyer.PUT("/cart/items", s.UpdateCartItem)
		buyer.DELETE("/cart", s.ClearCart)

		// -------- Checkout / Orders --------
		buyer.POST("/checkout", s.Checkout)
		buyer.GET("/orders", s.ListOrders)
		buyer.GET("/orders/:id", s.GetOrderByID)

		// -------- Push channel --------
		buyer.GET("/events", s.StreamEvents)
	}
}

func (s *Server) registerWebhookRoutes() {
	s.engine.POST("/webhook", s.HandlePaymentWebhook)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http.access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
