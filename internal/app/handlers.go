package app

import (
	httpH "github.com/yungbote/transparency-backend/internal/http/handlers"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	Product  *httpH.ProductHandler
	Question *httpH.QuestionHandler
	Answer   *httpH.AnswerHandler
	Report   *httpH.ReportHandler
	AI       *httpH.AIHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Auth:     httpH.NewAuthHandler(log, services.Auth),
		Product:  httpH.NewProductHandler(log, services.Product),
		Question: httpH.NewQuestionHandler(log, services.Question),
		Answer:   httpH.NewAnswerHandler(log, services.Answer),
		Report:   httpH.NewReportHandler(log, services.Report),
		AI:       httpH.NewAIHandler(log, services.Ingestion),
	}
}
