package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/middleware"
)

// PageQuery is the common limit/offset query
type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

type pageMeta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
}

func respondPage(c *gin.Context, data any, total int64, page PageQuery) {
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": pageMeta{Total: total, Limit: page.Limit, Offset: page.Offset},
	})
}

// uuidParam parses a path parameter, failing the request with 400 when malformed
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		middleware.Fail(c, domain.BadRequest(name+" must be a UUID").WithCause(err))
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID parses a validated UUID string; empty yields nil
func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}

// actor returns the authenticated caller or fails the request with 401
func actor(c *gin.Context) (domain.Actor, bool) {
	a, ok := middleware.CurrentActor(c)
	if !ok {
		middleware.Fail(c, domain.ErrUnauthorized)
	}
	return a, ok
}

func clientInfo(c *gin.Context) domain.ClientInfo {
	return domain.ClientInfo{
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		DeviceName: c.GetHeader("X-Device-Name"),
	}
}
