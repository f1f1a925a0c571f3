package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/transparency-backend/internal/http"
	"github.com/yungbote/transparency-backend/internal/observability"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	routerCfg := apphttp.RouterConfig{
		Log:             log,
		AllowedOrigins:  cfg.HTTP.CORSOrigins,
		AuthMiddleware:  middleware.Auth,
		HealthHandler:   handlers.Health,
		AuthHandler:     handlers.Auth,
		ProductHandler:  handlers.Product,
		QuestionHandler: handlers.Question,
		AnswerHandler:   handlers.Answer,
		ReportHandler:   handlers.Report,
		AIHandler:       handlers.AI,
	}
	if cfg.Otel.Enabled {
		routerCfg.ServiceName = observability.ServiceName(observabilityConfig(cfg))
	}
	return apphttp.NewRouter(routerCfg)
}

func observabilityConfig(cfg Config) observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.Server.Environment,
		Endpoint:    cfg.Otel.Endpoint,
		Headers:     cfg.Otel.Headers,
		Insecure:    cfg.Otel.Insecure,
		SampleRatio: cfg.Otel.SampleRatio,
	}
}
