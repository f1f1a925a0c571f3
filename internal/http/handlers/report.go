package handlers

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/transparency-backend/internal/http/response"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/services"
)

type ReportHandler struct {
	log           *logger.Logger
	reportService services.ReportService
}

func NewReportHandler(log *logger.Logger, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{log: log.With("handler", "ReportHandler"), reportService: reportService}
}

// POST /api/products/:id/generate-report
func (rh *ReportHandler) GenerateReport(c *gin.Context) {
	productID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, rh.log, err)
		return
	}
	res, err := rh.reportService.Assemble(c.Request.Context(), productID)
	if err != nil {
		response.RespondAPIError(c, rh.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success": true,
		"report": gin.H{
			"id":                 res.Report.ID,
			"pdf_base64":         base64.StdEncoding.EncodeToString(res.Artifact),
			"transparency_score": res.Report.TransparencyScore,
			"pdf_url":            res.Report.PDFURL,
		},
	})
}
