package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/festijeux/market-api/docs"
	v1 "github.com/festijeux/market-api/internal/api/handler/v1"
	"github.com/festijeux/market-api/internal/api/middleware"
	"github.com/festijeux/market-api/internal/config"
	"github.com/festijeux/market-api/internal/pkg/revocation"
	"github.com/festijeux/market-api/internal/pkg/storage"
	"github.com/festijeux/market-api/internal/repository"
	"github.com/festijeux/market-api/internal/repository/dao"
	"github.com/festijeux/market-api/internal/service"
	"github.com/festijeux/market-api/internal/ws"
)

const (
	basePath     = "/api/v1"
	UploadsRoute = "/uploads"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	revoked revocation.Store
	hub     *ws.Hub
	photos  *storage.PhotoStore
}

type handlers struct {
	auth    *v1.AuthHandler
	user    *v1.UserHandler
	session *v1.SessionHandler
	stock   *v1.StockHandler
	report  *v1.ReportHandler
	payment *v1.PaymentHandler
	feed    *v1.FeedHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, revoked revocation.Store, hub *ws.Hub, photos *storage.PhotoStore) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:  conf,
		Router:  engine,
		revoked: revoked,
		hub:     hub,
		photos:  photos,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db))

	return s
}

func (s *Server) initHandlers(db *gorm.DB) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	stockRepo := repository.NewStockRepository(dao.NewStockDAO(db))
	saleRepo := repository.NewSaleRepository(dao.NewHistoryDAO(db))

	userSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo, s.revoked)
	sessionSvc := service.NewSessionService(sessionRepo)
	stockSvc := service.NewStockService(stockRepo, s.hub)
	reportSvc := service.NewReportService(saleRepo, sessionRepo)
	paymentSvc := service.NewPaymentService(saleRepo)

	return handlers{
		auth:    v1.NewAuthHandler(s.Config.API, authSvc, userSvc),
		user:    v1.NewUserHandler(userSvc),
		session: v1.NewSessionHandler(sessionSvc, userSvc),
		stock:   v1.NewStockHandler(stockSvc, userSvc, s.photos),
		report:  v1.NewReportHandler(reportSvc, userSvc),
		payment: v1.NewPaymentHandler(paymentSvc, userSvc),
		feed:    v1.NewFeedHandler(s.hub),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey, s.revoked)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)

		public.GET("/sessions", h.session.HandleListSessions)
		public.GET("/sessions/:sessionID", h.session.HandleGetSession)

		public.GET("/stock/on-sale", h.stock.HandleListOnSale)
		public.GET("/stock/:stockID", h.stock.HandleGetStock)

		public.GET("/feed", h.feed.HandleFeed)
	}

	optional := s.Router.Group(basePath, authenticator.IdentifyJWT())
	{
		optional.GET("/auth/verify/:role", h.auth.HandleVerifyRole)
	}

	private := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		private.POST("/auth/logout", h.auth.HandleLogout)

		private.GET("/users/me", h.user.HandleGetMe)
		private.GET("/users", h.user.HandleListUsers)
		private.PUT("/users/:userID/role", h.user.HandleChangeRole)
		private.POST("/users/preregistrations", h.user.HandlePreregister)

		private.POST("/sessions", h.session.HandleCreateSession)
		private.PUT("/sessions", h.session.HandleUpdateSessions)
		private.PUT("/sessions/:sessionID", h.session.HandleUpdateSession)

		private.POST("/deposits", h.stock.HandleDeposit)
		private.POST("/sales", h.stock.HandleRecordSale)
		private.POST("/withdrawals", h.stock.HandleWithdraw)
		private.GET("/stock", h.stock.HandleListStock)
		private.GET("/stock/mine", h.stock.HandleListMine)
		private.PUT("/stock/:stockID/on-sale", h.stock.HandleToggleOnSale)

		private.GET("/sales", h.report.HandleListSales)
		private.GET("/sales/mine", h.report.HandleListMySales)
		private.GET("/reports", h.report.HandleGetReport)
		private.GET("/reports/mine", h.report.HandleGetMyReport)

		private.POST("/payments/sellers", h.payment.HandlePaySeller)
		private.GET("/payments/sellers/balance", h.payment.HandleGetBalance)
	}

	s.Router.Static(UploadsRoute, s.photos.Dir())
	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Festijeux market API"
	docs.SwaggerInfo.Description = "Consignment, sales and seller settlement for board game festivals."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
