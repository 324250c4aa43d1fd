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

// CardHandler exposes the saved-card wallet. Responses only ever carry the
// masked card number.
type CardHandler struct {
	cmds commands.CardCommands
	q    queries.CardQueries
}

func NewCardHandler(cmds commands.CardCommands, q queries.CardQueries) *CardHandler {
	return &CardHandler{cmds: cmds, q: q}
}

// @Summary Save card
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body reqdto.AddCardRequest true "Card"
// @Success 201 {object} resdto.CardResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /users/{userId}/cards [post]
func (h *CardHandler) Add(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.AddCardRequest
	if !bindJSON(c, &req) {
		return
	}
	userID := c.Param("userId")
	view, err := h.cmds.Add(c.Request.Context(), actor, req.ToCommand(userID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/users/"+userID+"/cards/"+view.CardID)
	c.JSON(http.StatusCreated, resdto.FromCardView(view))
}

// @Summary List saved cards
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} resdto.CardResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{userId}/cards [get]
func (h *CardHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	views, err := h.q.List(c.Request.Context(), actor, c.Param("userId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCardViews(views))
}

// @Summary Update saved card
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param cardId path string true "Card ID"
// @Param request body reqdto.UpdateCardRequest true "Changed fields"
// @Success 200 {object} resdto.CardResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{userId}/cards/{cardId} [put]
func (h *CardHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.UpdateCardRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), actor, req.ToCommand(c.Param("userId"), c.Param("cardId")))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCardView(view))
}

// @Summary Delete saved card
// @Tags cards
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param cardId path string true "Card ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{userId}/cards/{cardId} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), actor, c.Param("userId"), c.Param("cardId")); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
