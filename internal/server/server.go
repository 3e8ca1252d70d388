package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/menuku/menuku/internal/auth"
	authdomain "github.com/menuku/menuku/internal/auth/domain"
	"github.com/menuku/menuku/internal/authorization"
	"github.com/menuku/menuku/internal/business"
	businessdomain "github.com/menuku/menuku/internal/business/domain"
	"github.com/menuku/menuku/internal/category"
	categorydomain "github.com/menuku/menuku/internal/category/domain"
	"github.com/menuku/menuku/internal/config"
	"github.com/menuku/menuku/internal/contact"
	contactdomain "github.com/menuku/menuku/internal/contact/domain"
	"github.com/menuku/menuku/internal/dashboard"
	dashboarddomain "github.com/menuku/menuku/internal/dashboard/domain"
	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/internal/item"
	itemdomain "github.com/menuku/menuku/internal/item/domain"
	obslogger "github.com/menuku/menuku/internal/observability/logger"
	obsmetrics "github.com/menuku/menuku/internal/observability/metrics"
	obstracing "github.com/menuku/menuku/internal/observability/tracing"
	"github.com/menuku/menuku/internal/order"
	orderdomain "github.com/menuku/menuku/internal/order/domain"
	"github.com/menuku/menuku/internal/plan"
	plandomain "github.com/menuku/menuku/internal/plan/domain"
	"github.com/menuku/menuku/internal/ratelimit"
	"github.com/menuku/menuku/internal/role"
	roledomain "github.com/menuku/menuku/internal/role/domain"
	"github.com/menuku/menuku/internal/subscription"
	subscriptiondomain "github.com/menuku/menuku/internal/subscription/domain"
	"github.com/menuku/menuku/internal/token"
	"github.com/menuku/menuku/internal/user"
	userdomain "github.com/menuku/menuku/internal/user/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	events.Module,
	ratelimit.Module,
	role.Module,
	auth.Module,
	user.Module,
	contact.Module,
	business.Module,
	category.Module,
	item.Module,
	plan.Module,
	subscription.Module,
	order.Module,
	dashboard.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware())
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.ListenAddr))
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
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	db              *gorm.DB
	issuer          *token.Issuer
	authzSvc        authorization.Service
	credLimiter     *ratelimit.CredentialLimiter
	hub             *events.Hub
	notifier        events.Notifier
	authSvc         authdomain.Service
	roleSvc         roledomain.Service
	userSvc         userdomain.Service
	contactSvc      contactdomain.Service
	businessSvc     businessdomain.Service
	categorySvc     categorydomain.Service
	itemSvc         itemdomain.Service
	planSvc         plandomain.Service
	subscriptionSvc subscriptiondomain.Service
	orderSvc        orderdomain.Service
	dashboardSvc    dashboarddomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	DB              *gorm.DB
	Issuer          *token.Issuer
	AuthzSvc        authorization.Service
	CredLimiter     *ratelimit.CredentialLimiter `optional:"true"`
	Hub             *events.Hub
	Notifier        events.Notifier
	AuthSvc         authdomain.Service
	RoleSvc         roledomain.Service
	UserSvc         userdomain.Service
	ContactSvc      contactdomain.Service
	BusinessSvc     businessdomain.Service
	CategorySvc     categorydomain.Service
	ItemSvc         itemdomain.Service
	PlanSvc         plandomain.Service
	SubscriptionSvc subscriptiondomain.Service
	OrderSvc        orderdomain.Service
	DashboardSvc    dashboarddomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("server"),
		db:              p.DB,
		issuer:          p.Issuer,
		authzSvc:        p.AuthzSvc,
		credLimiter:     p.CredLimiter,
		hub:             p.Hub,
		notifier:        p.Notifier,
		authSvc:         p.AuthSvc,
		roleSvc:         p.RoleSvc,
		userSvc:         p.UserSvc,
		contactSvc:      p.ContactSvc,
		businessSvc:     p.BusinessSvc,
		categorySvc:     p.CategorySvc,
		itemSvc:         p.ItemSvc,
		planSvc:         p.PlanSvc,
		subscriptionSvc: p.SubscriptionSvc,
		orderSvc:        p.OrderSvc,
		dashboardSvc:    p.DashboardSvc,
	}

	svc.registerRoutes()
	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", s.rateLimited(), s.Signup)
		authGroup.POST("/signin", s.rateLimited(), s.Signin)
		authGroup.POST("/oauth", s.rateLimited(), s.OAuthSignin)
	}

	roles := v1.Group("/roles", s.AuthRequired())
	{
		roles.GET("", s.ListRoles)
		roles.GET("/:id", s.GetRole)
		roles.POST("", s.requirePermission(authorization.ObjectRole, authorization.ActionCreate), s.CreateRole)
		roles.PATCH("/:id", s.requirePermission(authorization.ObjectRole, authorization.ActionUpdate), s.UpdateRole)
		roles.DELETE("/:id", s.requirePermission(authorization.ObjectRole, authorization.ActionDelete), s.DeleteRole)
	}

	users := v1.Group("/users", s.AuthRequired())
	{
		users.GET("", s.ListUsers)
		users.GET("/:id", s.GetUser)
		users.PATCH("/:id", s.UpdateUser)
		users.DELETE("/:id", s.DeleteUser)
	}

	contacts := v1.Group("/messaging-contacts", s.AuthRequired())
	{
		contacts.POST("", s.CreateMessagingContact)
		contacts.GET("", s.ListMessagingContacts)
		contacts.GET("/:id", s.GetMessagingContact)
		contacts.PATCH("/:id", s.UpdateMessagingContact)
		contacts.DELETE("/:id", s.DeleteMessagingContact)
	}

	businesses := v1.Group("/businesses")
	{
		businesses.GET("", s.ListBusinesses)
		businesses.GET("/:id", s.GetBusiness)
		businesses.POST("", s.AuthRequired(), s.CreateBusiness)
		businesses.PATCH("/:id", s.AuthRequired(), s.UpdateBusiness)
		businesses.DELETE("/:id", s.AuthRequired(), s.DeleteBusiness)
	}

	categories := v1.Group("/categories", s.AuthRequired())
	{
		categories.POST("", s.CreateCategory)
		categories.GET("", s.ListCategories)
		categories.GET("/:id", s.GetCategory)
		categories.PATCH("/:id", s.UpdateCategory)
		categories.DELETE("/:id", s.DeleteCategory)
	}

	items := v1.Group("/items", s.AuthRequired())
	{
		items.POST("", s.CreateItem)
		items.GET("", s.ListItems)
		items.GET("/:id", s.GetItem)
		items.PATCH("/:id", s.UpdateItem)
		items.DELETE("/:id", s.DeleteItem)
	}

	plans := v1.Group("/subscription-plans", s.AuthRequired())
	{
		plans.GET("", s.ListSubscriptionPlans)
		plans.GET("/:id", s.GetSubscriptionPlan)
		plans.POST("", s.requirePermission(authorization.ObjectPlan, authorization.ActionCreate), s.CreateSubscriptionPlan)
		plans.PATCH("/:id", s.requirePermission(authorization.ObjectPlan, authorization.ActionUpdate), s.UpdateSubscriptionPlan)
		plans.DELETE("/:id", s.requirePermission(authorization.ObjectPlan, authorization.ActionDelete), s.DeleteSubscriptionPlan)
	}

	subscriptions := v1.Group("/user-subscription-plans", s.AuthRequired())
	{
		subscriptions.POST("", s.CreateUserSubscriptionPlan)
		subscriptions.GET("", s.ListUserSubscriptionPlans)
		subscriptions.GET("/:id", s.GetUserSubscriptionPlan)
		subscriptions.PATCH("/:id", s.UpdateUserSubscriptionPlan)
		subscriptions.DELETE("/:id", s.DeleteUserSubscriptionPlan)
	}

	orders := v1.Group("/orders", s.AuthRequired())
	{
		orders.POST("", s.CreateOrder)
		orders.GET("", s.ListOrders)
		orders.GET("/:id", s.GetOrder)
		orders.DELETE("/:id", s.DeleteOrder)
	}

	v1.GET("/dashboard/stats", s.AuthRequired(), s.DashboardStats)

	realtime := v1.Group("/realtime")
	{
		realtime.GET("/events", s.RealtimeEvents)
		realtime.POST("/message", s.RealtimeMessage)
	}
}
