package servicetypes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/xerrors"
)

// TypeRequest creates or replaces a catalog entry.
type TypeRequest struct {
	Name         string `json:"name"`
	DefaultCount int    `json:"default_count"`
}

// MemberRequest adds a name to a category roster.
type MemberRequest struct {
	Name      string `json:"name"`
	SortOrder *int   `json:"order"`
}

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	PUT(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service *CatalogService

	// Router for the public read endpoints.
	Router Router

	// AdminRouter for the authenticated admin endpoints.
	AdminRouter Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}

	r := opts.Router
	r.GET("/service-types", h.listHandler)
	r.GET("/service-types/:type_id/members", h.listMembersHandler)

	a := opts.AdminRouter
	a.POST("/service-types", h.createHandler)
	a.PUT("/service-types/:type_id", h.updateHandler)
	a.DELETE("/service-types/:type_id", h.deleteHandler)
	a.POST("/service-types/:type_id/members", h.addMemberHandler)
	a.DELETE("/service-types/members/:member_id", h.deleteMemberHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) listHandler(c *gin.Context) {
	types, err := h.Service.List(c)
	if err != nil {
		abortWithCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *httpHandler) createHandler(c *gin.Context) {
	var request TypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage"})
		return
	}

	st, err := h.Service.Create(c, request)
	if err != nil {
		abortWithCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (h *httpHandler) updateHandler(c *gin.Context) {
	typeID, ok := idParam(c, "type_id")
	if !ok {
		return
	}

	var request TypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage"})
		return
	}

	st, err := h.Service.Update(c, typeID, request)
	if err != nil {
		abortWithCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *httpHandler) deleteHandler(c *gin.Context) {
	typeID, ok := idParam(c, "type_id")
	if !ok {
		return
	}

	if err := h.Service.Delete(c, typeID); err != nil {
		abortWithCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kategorie gelöscht"})
}

func (h *httpHandler) listMembersHandler(c *gin.Context) {
	typeID, ok := idParam(c, "type_id")
	if !ok {
		return
	}

	members, err := h.Service.ListMembers(c, typeID)
	if err != nil {
		abortWithCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *httpHandler) addMemberHandler(c *gin.Context) {
	typeID, ok := idParam(c, "type_id")
	if !ok {
		return
	}

	var request MemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage"})
		return
	}

	member, err := h.Service.AddMember(c, typeID, request)
	if err != nil {
		abortWithCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *httpHandler) deleteMemberHandler(c *gin.Context) {
	memberID, ok := idParam(c, "member_id")
	if !ok {
		return
	}

	if err := h.Service.DeleteMember(c, memberID); err != nil {
		abortWithCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Eintrag gelöscht"})
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " ungültig"})
		c.Abort()
		return 0, false
	}
	return id, true
}

func abortWithCatalogError(c *gin.Context, err error) {
	var validation *ValidationError
	switch {
	case xerrors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case xerrors.Is(err, ErrTypeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Kategorie nicht gefunden"})
	case xerrors.Is(err, ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Eintrag nicht gefunden"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Vorübergehender Fehler, bitte erneut versuchen"})
	}
	c.Abort()
}
