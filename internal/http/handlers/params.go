package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/transparency-backend/internal/platform/apierr"
)

var errInvalidBody = errors.New("invalid request body")

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apierr.Validation("invalid_id", errors.New("invalid id"))
	}
	return id, nil
}
