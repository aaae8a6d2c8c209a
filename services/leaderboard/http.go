package leaderboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service *LeaderboardService

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/leaderboard", h.leaderboardHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) leaderboardHandler(c *gin.Context) {
	var query Query

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 2000 || year > 2100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year ungültig"})
			return
		}
		query.Year = year
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit ungültig"})
			return
		}
		query.Limit = limit
	}

	entries, err := h.Service.Compute(c, query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Vorübergehender Fehler, bitte erneut versuchen"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, entries)
}
