package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Upstream data is cached at the edge; charts refresh faster than the
// slower-moving lists.
const (
	cacheMarkets   = "public, s-maxage=60, stale-while-revalidate=300"
	cacheChart     = "public, max-age=30, stale-while-revalidate=60"
	cachePlatforms = "public, s-maxage=300, stale-while-revalidate=600"
)

// handleCrypto serves GET /api/crypto. The query parameters select the
// upstream dataset: asset platforms, a platform's token list, one
// coin's chart, or the default market list.
func (s *Server) handleCrypto(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("assetPlatforms") == "true" {
		raw, err := s.market.AssetPlatforms(ctx)
		if err != nil {
			s.cryptoError(c, err)
			return
		}
		writeRaw(c, raw, cachePlatforms)
		return
	}

	if platformID := c.Query("assetPlatformId"); platformID != "" {
		raw, err := s.market.TokenList(ctx, platformID)
		if err != nil {
			s.cryptoError(c, err)
			return
		}
		writeRaw(c, raw, cachePlatforms)
		return
	}

	if coinID := c.Query("coinId"); coinID != "" {
		days := c.DefaultQuery("days", "30")
		raw, err := s.market.Chart(ctx, coinID, days)
		if err != nil {
			s.cryptoError(c, err)
			return
		}
		writeRaw(c, raw, cacheChart)
		return
	}

	raw, err := s.market.Markets(ctx)
	if err != nil {
		s.cryptoError(c, err)
		return
	}
	writeRaw(c, raw, cacheMarkets)
}

func (s *Server) cryptoError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "crypto data fetch failed",
		"error", err, "request_id", c.GetString("request_id"))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch crypto data"})
}

// writeRaw passes the upstream JSON through unchanged with the given
// cache policy.
func writeRaw(c *gin.Context, raw json.RawMessage, cacheControl string) {
	c.Header("Cache-Control", cacheControl)
	c.Data(http.StatusOK, "application/json", raw)
}
