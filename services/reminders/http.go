package reminders

import (
	"net/http"

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
	Service *ReminderService

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/reminders/sweep", h.sweepHandler)
	r.GET("/reminders/sweep", h.sweepHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) sweepHandler(c *gin.Context) {
	result, err := h.Service.Sweep(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Vorübergehender Fehler, bitte erneut versuchen"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, result)
}
