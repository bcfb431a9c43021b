package api

import (
	"errors"
	"net/http"

	reqdto "leadmarket/internal/handler/dto/request"
	resdto "leadmarket/internal/handler/dto/response"
	"leadmarket/internal/handler/httperr"
	"leadmarket/internal/handler/middleware"
	"leadmarket/internal/usecase/commands"
	"leadmarket/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LeadHandler struct {
	leadCommands *commands.LeadCommands
	leadQueries  *queries.LeadQueries
}

func NewLeadHandler(leadCommands *commands.LeadCommands, leadQueries *queries.LeadQueries) *LeadHandler {
	return &LeadHandler{
		leadCommands: leadCommands,
		leadQueries:  leadQueries,
	}
}

// @Summary Create lead
// @Description Post a new job lead and notify matching tradespeople
// @Tags leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateLeadRequest true "Lead request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	var req reqdto.CreateLeadRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	id, err := h.leadCommands.CreateLead(c.Request.Context(), commands.CreateLeadInput{
		PosterID:     userID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		Postcode:     req.Postcode,
		Budget:       req.Budget,
		Urgency:      req.Urgency,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		PricePence:   req.PricePence,
		MaxPurchases: req.MaxPurchases,
	})
	if err != nil {
		if errors.Is(err, commands.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Lead feed
// @Description Eligible leads for the authenticated tradesperson, nearest first
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.FeedItemResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /leads/feed [get]
func (h *LeadHandler) Feed(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	items, err := h.leadQueries.Feed(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, queries.ErrTradespersonNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Tradesperson not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromFeedItems(items))
}

// @Summary Get lead
// @Description Lead detail; contact details only for the poster, purchasers and admins
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} resdto.LeadResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /leads/{id} [get]
func (h *LeadHandler) GetLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lead ID format", nil)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	view, err := h.leadQueries.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		if errors.Is(err, queries.ErrLeadNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromLeadView(view))
}

// @Summary My leads
// @Description Leads posted by the authenticated homeowner
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PosterLeadResponse
// @Failure 401 {object} map[string]string
// @Router /leads/mine [get]
func (h *LeadHandler) MyLeads(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	items, err := h.leadQueries.ListByPoster(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPosterItems(items))
}
