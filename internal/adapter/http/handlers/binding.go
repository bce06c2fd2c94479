package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindWithPresence binds and validates the JSON body into req and also returns its top-level
// keys, so PATCH-style payloads can tell an explicit null from an absent field.
func bindWithPresence(c *gin.Context, req any) (map[string]json.RawMessage, error) {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		return nil, err
	}
	body, _ := c.Get(gin.BodyBytesKey)
	bytes, _ := body.([]byte)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
