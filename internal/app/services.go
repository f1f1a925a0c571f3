package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Product   services.ProductService
	Question  services.QuestionService
	Answer    services.AnswerService
	Ingestion services.IngestionService
	Report    services.ReportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(db, log, reposet.User, reposet.Company, services.AuthConfig{
			JWTSecret: cfg.Auth.JWTSecret,
			TokenTTL:  cfg.TokenTTL(),
		}),
		Product:   services.NewProductService(db, log, reposet.Product, reposet.Question, reposet.Answer),
		Question:  services.NewQuestionService(log, reposet.Product, reposet.Question),
		Answer:    services.NewAnswerService(db, log, reposet.Product, reposet.Answer),
		Ingestion: services.NewIngestionService(log, reposet.Product, reposet.Question, clients.Gateway, clients.Locker),
		Report: services.NewReportService(
			log,
			reposet.Product,
			reposet.Answer,
			reposet.Report,
			clients.Gateway,
			clients.Renderer,
			clients.ReportBucket,
			services.ReportConfig{
				ScoreTimeout:  seconds(cfg.AI.TimeoutSeconds),
				RenderTimeout: seconds(cfg.Render.TimeoutSeconds),
			},
		),
	}
}
