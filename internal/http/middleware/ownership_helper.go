package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/internal/config"
)

// maxOwnershipBody bounds how much of a request body is buffered to find an owner id
const maxOwnershipBody = 1 << 20

// claimedOwner returns the user id a request targets according to rule.
func claimedOwner(c *gin.Context, rule config.OwnershipRule) (uuid.UUID, bool) {
	var raw string
	switch rule.Source {
	case "path":
		raw = c.Param(rule.ParamName)
	case "query":
		raw = c.Query(rule.ParamName)
	case "header":
		raw = c.GetHeader(rule.ParamName)
	case "body":
		raw = peekBodyField(c, rule.ParamName)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// peekBodyField reads a top-level string field from a JSON body and puts
// the bytes back for the handler's own binding.
func peekBodyField(c *gin.Context, field string) string {
	if c.Request.Body == nil {
		return ""
	}
	orig := c.Request.Body
	body, err := io.ReadAll(io.LimitReader(orig, maxOwnershipBody))
	c.Request.Body = replayBody{Reader: io.MultiReader(bytes.NewReader(body), orig), Closer: orig}
	if err != nil {
		return ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	var value string
	if err := json.Unmarshal(fields[field], &value); err != nil {
		return ""
	}
	return value
}

// replayBody serves the buffered prefix followed by the unread remainder.
type replayBody struct {
	io.Reader
	io.Closer
}
