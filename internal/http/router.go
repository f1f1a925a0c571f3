package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/transparency-backend/internal/http/handlers"
	httpMW "github.com/yungbote/transparency-backend/internal/http/middleware"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler   *httpH.HealthHandler
	AuthHandler     *httpH.AuthHandler
	ProductHandler  *httpH.ProductHandler
	QuestionHandler *httpH.QuestionHandler
	AnswerHandler   *httpH.AnswerHandler
	ReportHandler   *httpH.ReportHandler
	AIHandler       *httpH.AIHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.Recovery(cfg.Log))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	requireAuth := func(c *gin.Context) { c.Next() }
	if cfg.AuthMiddleware != nil {
		requireAuth = cfg.AuthMiddleware.RequireAuth()
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/signup", cfg.AuthHandler.Signup)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}

		// Products
		if cfg.ProductHandler != nil {
			api.POST("/products", requireAuth, cfg.ProductHandler.CreateProduct)
			api.GET("/products/:id", cfg.ProductHandler.GetProduct)
		}
		if cfg.QuestionHandler != nil {
			api.POST("/products/:id/questions", cfg.QuestionHandler.CreateQuestion)
		}
		if cfg.AnswerHandler != nil {
			api.POST("/products/:id/answers", requireAuth, cfg.AnswerHandler.SubmitAnswers)
		}
		if cfg.ReportHandler != nil {
			api.POST("/products/:id/generate-report", requireAuth, cfg.ReportHandler.GenerateReport)
		}

		// AI
		if cfg.AIHandler != nil {
			api.POST("/ai/generate-questions", requireAuth, cfg.AIHandler.GenerateQuestions)
		}
	}

	return r
}
