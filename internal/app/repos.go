package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/data/repos"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type Repos struct {
	User     repos.UserRepo
	Company  repos.CompanyRepo
	Product  repos.ProductRepo
	Question repos.QuestionRepo
	Answer   repos.AnswerRepo
	Report   repos.ReportRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:     repos.NewUserRepo(db, log),
		Company:  repos.NewCompanyRepo(db, log),
		Product:  repos.NewProductRepo(db, log),
		Question: repos.NewQuestionRepo(db, log),
		Answer:   repos.NewAnswerRepo(db, log),
		Report:   repos.NewReportRepo(db, log),
	}
}
