package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/services"
	"github.com/quizhub/quiz-service/internal/utils"
)

type VoteHandler struct {
	BaseHandler
	voteService services.VoteService
}

func NewVoteHandler(voteService services.VoteService, logger utils.Logger) *VoteHandler {
	return &VoteHandler{
		BaseHandler: NewBaseHandler(logger),
		voteService: voteService,
	}
}

// Upvote records or flips to an upvote
// @Router /votes/upvote/{questionId} [post]
func (h *VoteHandler) Upvote(c *gin.Context) {
	h.cast(c, models.VoteUp)
}

// Downvote records or flips to a downvote
// @Router /votes/downvote/{questionId} [post]
func (h *VoteHandler) Downvote(c *gin.Context) {
	h.cast(c, models.VoteDown)
}

func (h *VoteHandler) cast(c *gin.Context, voteType models.VoteType) {
	outcome, err := h.voteService.Cast(c.Request.Context(), c.GetString(userIDKey), c.Param("questionId"), voteType)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if outcome == services.VoteChanged {
		c.JSON(http.StatusOK, MessageResponse{Message: "Vote updated to " + string(voteType)})
		return
	}
	label := "Upvote"
	if voteType == models.VoteDown {
		label = "Downvote"
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: label + " registered"})
}

// GetVotes returns the vote tallies for a question
// @Router /votes/{questionId} [get]
func (h *VoteHandler) GetVotes(c *gin.Context) {
	counts, err := h.voteService.Counts(c.Request.Context(), c.Param("questionId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
