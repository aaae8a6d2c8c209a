package matches

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/xerrors"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	PATCH(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service *MatchService

	// Router for the public plan endpoints.
	Router Router

	// AdminRouter for the authenticated admin endpoints.
	AdminRouter Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}

	r := opts.Router
	r.GET("/matches", h.listPublicHandler)
	r.GET("/matches/:match_id", h.getPublicHandler)

	a := opts.AdminRouter
	a.GET("/matches", h.listHandler)
	a.POST("/matches", h.createHandler)
	a.PATCH("/matches/:match_id", h.updateHandler)
	a.DELETE("/matches/:match_id", h.deleteHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) listPublicHandler(c *gin.Context) {
	matches, err := h.Service.ListPublic(c)
	if err != nil {
		abortWithMatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

func (h *httpHandler) getPublicHandler(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	match, err := h.Service.GetPublic(c, matchID)
	if err != nil {
		abortWithMatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

func (h *httpHandler) listHandler(c *gin.Context) {
	matches, err := h.Service.List(c)
	if err != nil {
		abortWithMatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

func (h *httpHandler) createHandler(c *gin.Context) {
	var request CreateMatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage"})
		return
	}

	match, err := h.Service.Create(c, request)
	if err != nil {
		abortWithMatchError(c, err)
		return
	}
	c.JSON(http.StatusCreated, match)
}

func (h *httpHandler) updateHandler(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	var request UpdateMatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage"})
		return
	}

	match, err := h.Service.Update(c, matchID, request)
	if err != nil {
		abortWithMatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

func (h *httpHandler) deleteHandler(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c, matchID); err != nil {
		abortWithMatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Spiel gelöscht"})
}

func matchIDParam(c *gin.Context) (int64, bool) {
	matchID, err := strconv.ParseInt(c.Param("match_id"), 10, 64)
	if err != nil || matchID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "match_id ungültig"})
		c.Abort()
		return 0, false
	}
	return matchID, true
}

func abortWithMatchError(c *gin.Context, err error) {
	var validation *ValidationError
	switch {
	case xerrors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case xerrors.Is(err, ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Spiel nicht gefunden"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Vorübergehender Fehler, bitte erneut versuchen"})
	}
	c.Abort()
}
