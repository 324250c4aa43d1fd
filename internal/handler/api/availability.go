package api

import (
	"net/http"

	reqdto "travel-kernel/internal/handler/dto/request"
	resdto "travel-kernel/internal/handler/dto/response"
	"travel-kernel/internal/handler/httperr"
	"travel-kernel/internal/handler/middleware"
	"travel-kernel/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Remaining capacity
// @Description Flights take date, hotels and cars take from and to.
// @Tags availability
// @Produce json
// @Param variant path string true "flight, hotel or car"
// @Param listingId path string true "Listing ID"
// @Param subType query string false "Seat class or room type"
// @Param date query string false "YYYY-MM-DD"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability/{variant}/{listingId} [get]
func (h *AvailabilityHandler) Remaining(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if !bindQuery(c, &query) {
		return
	}
	req := queries.AvailabilityRequest{
		ListingID:  c.Param("listingId"),
		Variant:    c.Param("variant"),
		SubType:    query.SubType,
		TravelDate: query.Date,
		From:       query.From,
		To:         query.To,
	}
	if actor, ok := middleware.GetActor(c); ok {
		req.UserID = actor.UserID
	}
	view, err := h.q.Remaining(c.Request.Context(), req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
