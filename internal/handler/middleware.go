package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	AllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	AllowHeaders = "Content-Type"
)

// CORSHeaders stamps the fixed CORS header set on every response.
// allowOrigin is "*" for an open API; when it is empty the origin policy
// decides Allow-Origin per request.
func CORSHeaders(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		if allowOrigin != "" {
			h.Set("Access-Control-Allow-Origin", allowOrigin)
		}
		h.Set("Access-Control-Allow-Methods", AllowMethods)
		h.Set("Access-Control-Allow-Headers", AllowHeaders)
	}
}

// OriginPolicy runs policy and gives its 403 for a disallowed origin the
// same JSON error body as every other failure.
func OriginPolicy(policy gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		preset := h.Get("Content-Type") != ""
		if !preset {
			h.Set("Content-Type", "application/json")
		}
		policy(c)
		if c.IsAborted() && c.Writer.Status() == http.StatusForbidden {
			_, _ = c.Writer.Write([]byte(`{"error":"` + msgOriginNotAllowed + `"}`))
			return
		}
		if !preset {
			h.Del("Content-Type")
		}
	}
}

// JSONContentType pins the bare application/json content type so renderers
// don't append a charset.
func JSONContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
	}
}

// Preflight answers OPTIONS for any path with 200 and an empty body. Requests
// carrying an Origin are first handed to policy, which may reject them.
func Preflight(policy gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodOptions {
			return
		}
		c.Writer.Header().Set("Content-Type", "application/json")
		if policy != nil && c.GetHeader("Origin") != "" {
			policy(c)
		}
		if !c.IsAborted() {
			c.AbortWithStatus(http.StatusOK)
		}
	}
}

// RouteNotFound is the catch-all for unmatched method/path pairs.
func RouteNotFound(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "application/json")
	c.JSON(http.StatusNotFound, ErrorResponse{Error: msgRouteNotFound})
}

// Health godoc
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func Health(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "application/json")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
