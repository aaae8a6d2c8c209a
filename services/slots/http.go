package slots

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
	Service *SlotService

	// Router for the public member endpoints.
	Router Router

	// AdminRouter for the authenticated admin endpoints.
	AdminRouter Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}

	r := opts.Router
	r.POST("/slots/:slot_id/signup", h.claimHandler)
	r.POST("/slots/:slot_id/cancel", h.requestCancellationHandler)

	a := opts.AdminRouter
	a.GET("/slots", h.listHandler)
	a.POST("/slots", h.createHandler)
	a.PATCH("/slots/:slot_id", h.updateHandler)
	a.DELETE("/slots/:slot_id", h.deleteHandler)
	a.POST("/slots/:slot_id/cancel/confirm", h.confirmCancellationHandler)
	a.POST("/slots/:slot_id/cancel/reject", h.rejectCancellationHandler)
	a.DELETE("/slots/:slot_id/claim", h.forceRemoveHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) claimHandler(c *gin.Context) {
	slotID, ok := slotIDParam(c)
	if !ok {
		return
	}

	var request ClaimRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage"})
		return
	}

	result, err := h.Service.Claim(c, slotID, request)
	if err != nil {
		abortWithSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":            "Eintragung erfolgreich",
		"slot":               result.Slot,
		"notificationQueued": result.NotificationQueued,
	})
}

func (h *httpHandler) requestCancellationHandler(c *gin.Context) {
	slotID, ok := slotIDParam(c)
	if !ok {
		return
	}

	var request CancellationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage"})
		return
	}

	result, err := h.Service.RequestCancellation(c, slotID, request)
	if err != nil {
		abortWithSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Stornierungsanfrage gesendet",
		"slot":    result.Slot,
	})
}

func (h *httpHandler) confirmCancellationHandler(c *gin.Context) {
	slotID, ok := slotIDParam(c)
	if !ok {
		return
	}

	result, err := h.Service.ConfirmCancellation(c, slotID)
	if err != nil {
		abortWithSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Stornierung bestätigt",
		"slot":    result.Slot,
	})
}

func (h *httpHandler) rejectCancellationHandler(c *gin.Context) {
	slotID, ok := slotIDParam(c)
	if !ok {
		return
	}

	result, err := h.Service.RejectCancellation(c, slotID)
	if err != nil {
		abortWithSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Stornierung abgelehnt",
		"slot":    result.Slot,
	})
}

func (h *httpHandler) forceRemoveHandler(c *gin.Context) {
	slotID, ok := slotIDParam(c)
	if !ok {
		return
	}

	result, err := h.Service.ForceRemove(c, slotID)
	if err != nil {
		abortWithSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Eintragung entfernt",
		"slot":    result.Slot,
	})
}

func (h *httpHandler) listHandler(c *gin.Context) {
	var matchID int64
	if raw := c.Query("match_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "match_id ungültig"})
			return
		}
		matchID = parsed
	}

	slots, err := h.Service.List(c, matchID)
	if err != nil {
		abortWithSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *httpHandler) createHandler(c *gin.Context) {
	var request CreateSlotsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage"})
		return
	}

	created, err := h.Service.Create(c, request)
	if err != nil {
		abortWithSlotError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *httpHandler) updateHandler(c *gin.Context) {
	slotID, ok := slotIDParam(c)
	if !ok {
		return
	}

	var request UpdateSlotRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage"})
		return
	}

	slot, err := h.Service.Update(c, slotID, request)
	if err != nil {
		abortWithSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *httpHandler) deleteHandler(c *gin.Context) {
	slotID, ok := slotIDParam(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c, slotID); err != nil {
		abortWithSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot gelöscht"})
}

func slotIDParam(c *gin.Context) (int64, bool) {
	slotID, err := strconv.ParseInt(c.Param("slot_id"), 10, 64)
	if err != nil || slotID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot_id ungültig"})
		c.Abort()
		return 0, false
	}
	return slotID, true
}

// abortWithSlotError maps lifecycle errors to HTTP. Anything outside the
// domain sentinels is a dependency failure worth retrying, so it maps to
// 502 rather than 500.
func abortWithSlotError(c *gin.Context, err error) {
	var validation *ValidationError
	switch {
	case xerrors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case xerrors.Is(err, ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Slot nicht gefunden"})
	case xerrors.Is(err, ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Dieser Dienst ist bereits vergeben"})
	case xerrors.Is(err, ErrAlreadyRequested):
		c.JSON(http.StatusConflict, gin.H{"error": "Stornierung wurde bereits angefragt"})
	case xerrors.Is(err, ErrNotClaimed):
		c.JSON(http.StatusConflict, gin.H{"error": "Dieser Dienst ist nicht belegt"})
	case xerrors.Is(err, ErrAlreadyHandled):
		c.JSON(http.StatusConflict, gin.H{"error": "Anfrage wurde bereits bearbeitet"})
	case xerrors.Is(err, ErrWrongContact):
		c.JSON(http.StatusForbidden, gin.H{"error": "E-Mail-Adresse stimmt nicht überein"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Vorübergehender Fehler, bitte erneut versuchen"})
	}
	c.Abort()
}
