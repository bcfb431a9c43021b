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

type InterestHandler struct {
	interestCommands *commands.InterestCommands
}

func NewInterestHandler(interestCommands *commands.InterestCommands) *InterestHandler {
	return &InterestHandler{
		interestCommands: interestCommands,
	}
}

// @Summary Express interest
// @Description Register a tradesperson's interest in a lead with an optional quote
// @Tags interests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param request body reqdto.ExpressInterestRequest true "Interest request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /leads/{id}/interests [post]
func (h *InterestHandler) ExpressInterest(c *gin.Context) {
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

	var req reqdto.ExpressInterestRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	id, err := h.interestCommands.ExpressInterest(c.Request.Context(), commands.ExpressInterestInput{
		LeadID:         leadID,
		TradespersonID: userID,
		Message:        req.Message,
		PricePence:     req.PricePence,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLeadNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
		case errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Tradesperson not found", nil)
		case errors.Is(err, commands.ErrLeadInactive):
			httperr.AbortWithError(c, http.StatusConflict, err, "Lead is no longer active", nil)
		case errors.Is(err, commands.ErrDuplicateInterest):
			httperr.AbortWithError(c, http.StatusConflict, err, "Interest already expressed", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update interest status
// @Description Accept or reject a pending interest (poster only)
// @Tags interests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param interestId path string true "Interest ID"
// @Param request body reqdto.UpdateInterestStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /leads/{id}/interests/{interestId} [patch]
func (h *InterestHandler) UpdateInterestStatus(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lead ID format", nil)
		return
	}
	interestID, err := uuid.Parse(c.Param("interestId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid interest ID format", nil)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	var req reqdto.UpdateInterestStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	err = h.interestCommands.UpdateInterestStatus(c.Request.Context(), leadID, interestID, userID, req.NormalizedStatus())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLeadNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
		case errors.Is(err, commands.ErrInterestNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Interest not found", nil)
		case errors.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the poster can manage interests", nil)
		case errors.Is(err, commands.ErrInterestFinalized):
			httperr.AbortWithError(c, http.StatusConflict, err, "Interest already finalized", nil)
		case errors.Is(err, commands.ErrInvalidInterestStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Status must be accepted or rejected", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Hire tradesperson
// @Description Select a tradesperson for the job and close the lead (poster only)
// @Tags interests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param request body reqdto.HireRequest true "Hire request"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /leads/{id}/hire [post]
func (h *InterestHandler) Hire(c *gin.Context) {
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

	var req reqdto.HireRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}
	tradespersonID, err := uuid.Parse(req.TradespersonID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid tradesperson ID format", nil)
		return
	}

	err = h.interestCommands.Hire(c.Request.Context(), leadID, tradespersonID, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLeadNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
		case errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Tradesperson not found", nil)
		case errors.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the poster can hire", nil)
		case errors.Is(err, commands.ErrAlreadyHired):
			httperr.AbortWithError(c, http.StatusConflict, err, "Lead already has a hire", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel lead
// @Description Withdraw an unfilled lead (poster only)
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /leads/{id}/cancel [post]
func (h *InterestHandler) Cancel(c *gin.Context) {
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

	err = h.interestCommands.Cancel(c.Request.Context(), leadID, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLeadNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
		case errors.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the poster can cancel", nil)
		case errors.Is(err, commands.ErrCancelHired):
			httperr.AbortWithError(c, http.StatusConflict, err, "Cannot cancel a lead with a hire", nil)
		case errors.Is(err, commands.ErrAlreadyCancelled):
			httperr.AbortWithError(c, http.StatusConflict, err, "Lead already cancelled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
