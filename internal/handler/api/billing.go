package api

import (
	"net/http"

	reqdto "travel-kernel/internal/handler/dto/request"
	resdto "travel-kernel/internal/handler/dto/response"
	"travel-kernel/internal/handler/httperr"
	"travel-kernel/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	q queries.BillingQueries
}

func NewBillingHandler(q queries.BillingQueries) *BillingHandler {
	return &BillingHandler{q: q}
}

// @Summary Get bill
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param billingId path string true "Billing ID"
// @Success 200 {object} resdto.BillResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /billing/{billingId} [get]
func (h *BillingHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := h.q.ByBillingID(c.Request.Context(), actor, c.Param("billingId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBillView(view))
}

// @Summary List user bills
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} resdto.BillResponse
// @Failure 403 {object} httperr.Response
// @Router /billing/user/{userId} [get]
func (h *BillingHandler) ListByUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	views, err := h.q.ByUser(c.Request.Context(), actor, c.Param("userId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBillViews(views))
}

// @Summary Search bills
// @Description Either start and end (inclusive days) or month and year.
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Param month query int false "1-12"
// @Param year query int false "Year"
// @Param userId query string false "Admin only"
// @Param status query string false "Completed or Failed"
// @Success 200 {array} resdto.BillResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /billing/search [get]
func (h *BillingHandler) Search(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var query reqdto.BillSearchQuery
	if !bindQuery(c, &query) {
		return
	}
	views, err := h.q.Search(c.Request.Context(), actor, query.ToFilter())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBillViews(views))
}
