package api

import (
	"errors"
	"net/http"

	reqdto "leadmarket/internal/handler/dto/request"
	resdto "leadmarket/internal/handler/dto/response"
	"leadmarket/internal/handler/httperr"
	"leadmarket/internal/handler/middleware"
	"leadmarket/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The auth middleware always sets the user id before a handler runs; hitting
// this means a route was registered without RequireAuth.
var errMissingIdentity = errors.New("missing user identity in context")

type PurchaseHandler struct {
	purchaseCommands *commands.PurchaseCommands
}

func NewPurchaseHandler(purchaseCommands *commands.PurchaseCommands) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseCommands: purchaseCommands,
	}
}

// @Summary Purchase lead
// @Description Buy access to a lead's contact details using prepaid credits
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /leads/{id}/purchase [post]
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lead ID format", nil)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	result, err := h.purchaseCommands.Purchase(c.Request.Context(), leadID, userID)
	if err != nil {
		abortPurchaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPurchaseResult(result))
}

// @Summary Confirm card charge
// @Description Record a lead purchase already paid by card through the payment provider
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConfirmChargeRequest true "Charge confirmation"
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /credits/confirm [post]
func (h *PurchaseHandler) ConfirmCharge(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	var req reqdto.ConfirmChargeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lead ID format", nil)
		return
	}

	result, err := h.purchaseCommands.ConfirmExternalCharge(c.Request.Context(), leadID, userID, req.ChargeReference)
	if err != nil {
		abortPurchaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPurchaseResult(result))
}

func abortPurchaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrLeadNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
	case errors.Is(err, commands.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Tradesperson not found", nil)
	case errors.Is(err, commands.ErrAlreadyPurchased):
		httperr.AbortWithError(c, http.StatusConflict, err, "Lead already purchased", nil)
	case errors.Is(err, commands.ErrPurchaseCapReached):
		httperr.AbortWithError(c, http.StatusConflict, err, "Lead is sold out", nil)
	case errors.Is(err, commands.ErrInsufficientCredits):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Insufficient credits", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
