package gateway

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
)

// Keep pathological payloads out of the store.
const maxStateValueBytes = 1 << 20

// handleGetState serves GET /api/state/:key from the UI-state store.
func (s *Server) handleGetState(c *gin.Context) {
	key := c.Param("key")
	entry, err := s.store.Get(key)
	if err != nil {
		failContract(c, err)
		return
	}
	if entry == nil {
		ok(c, gin.H{"key": key, "value": nil})
		return
	}
	ok(c, gin.H{
		"key":        key,
		"value":      entry.Value,
		"updated_at": entry.UpdatedAt,
	})
}

// handlePutState stores a JSON value under PUT /api/state/:key.
// Last write wins.
func (s *Server) handlePutState(c *gin.Context) {
	key := c.Param("key")

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxStateValueBytes))
	if err != nil {
		failValidation(c, "Unreadable request body")
		return
	}
	if !json.Valid(body) {
		failValidation(c, "Value must be valid JSON")
		return
	}

	if err := s.store.Put(key, json.RawMessage(body)); err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{"key": key})
}

// handleDeleteState removes a stored value.
func (s *Server) handleDeleteState(c *gin.Context) {
	key := c.Param("key")
	if err := s.store.Delete(key); err != nil {
		failContract(c, err)
		return
	}
	ok(c, gin.H{"key": key})
}
