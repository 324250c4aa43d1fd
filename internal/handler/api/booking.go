package api

import (
	"net/http"

	reqdto "travel-kernel/internal/handler/dto/request"
	resdto "travel-kernel/internal/handler/dto/response"
	"travel-kernel/internal/handler/httperr"
	"travel-kernel/internal/usecase/commands"
	"travel-kernel/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{bookingId} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), actor, c.Param("bookingId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancels the booking and every active booking paid with it.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} resdto.CancelResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{bookingId} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	cancelled, err := h.cmds.Cancel(c.Request.Context(), actor, c.Param("bookingId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CancelResponse{Cancelled: resdto.FromBookings(cancelled)})
}

// @Summary List user bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param status query string false "pending, confirmed, cancelled or failed"
// @Param billingId query string false "Billing ID"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings/user/{userId} [get]
func (h *BookingHandler) ListByUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var query reqdto.ListBookingsQuery
	if !bindQuery(c, &query) {
		return
	}
	views, err := h.q.ListByUser(c.Request.Context(), actor, c.Param("userId"), query.ToFilter())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Fail pending bookings
// @Description Internal. Marks the pending bookings among the ids as failed.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.FailBookingsRequest true "Booking ids"
// @Success 200 {object} resdto.FailBookingsResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings/fail [post]
func (h *BookingHandler) Fail(c *gin.Context) {
	var req reqdto.FailBookingsRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.cmds.FailMany(c.Request.Context(), req.BookingIDs)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FailBookingsResponse{ModifiedCount: n})
}

// @Summary Expire stale holds
// @Description Internal. Fails pending holds older than the given minutes or the configured horizon.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ExpireBookingsRequest false "Horizon override"
// @Success 200 {object} resdto.ExpireBookingsResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings/expire [post]
func (h *BookingHandler) Expire(c *gin.Context) {
	var req reqdto.ExpireBookingsRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	ids, err := h.cmds.ExpireStale(c.Request.Context(), req.Horizon())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ExpireBookingsResponse{ExpiredIDs: ids})
}
