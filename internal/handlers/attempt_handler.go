package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizhub/quiz-service/internal/services"
	"github.com/quizhub/quiz-service/internal/utils"
)

type AttemptHandler struct {
	BaseHandler
	attemptService     services.AttemptService
	leaderboardService services.LeaderboardService
}

func NewAttemptHandler(
	attemptService services.AttemptService,
	leaderboardService services.LeaderboardService,
	logger utils.Logger,
) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:        NewBaseHandler(logger),
		attemptService:     attemptService,
		leaderboardService: leaderboardService,
	}
}

// SubmitAttempt scores and records a quiz submission
// @Router /quizAttempt/submit [post]
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	result, err := h.attemptService.Submit(c.Request.Context(), c.GetString(userIDKey), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHistory lists the caller's attempts, newest first
// @Router /quizAttempt/history [get]
func (h *AttemptHandler) GetHistory(c *gin.Context) {
	history, err := h.attemptService.History(c.Request.Context(), c.GetString(userIDKey), optionalQuery(c, "category"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// StartAttempt is the older way of fetching quiz questions
// @Router /quizAttempt/attempt [get]
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	limit := services.DefaultLegacyLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.RespondWithError(c, http.StatusBadRequest, "Validation failed",
				services.ValidationErrors{*services.NewValidationError("limit", "must be a positive integer", raw)})
			return
		}
		limit = parsed
	}

	questions, err := h.attemptService.StartLegacy(c.Request.Context(), optionalQuery(c, "category"), limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// GetLeaderboard ranks users by their first attempt per category
// @Router /quizAttempt/leaderboard [get]
func (h *AttemptHandler) GetLeaderboard(c *gin.Context) {
	query := services.LeaderboardQuery{
		Category: optionalQuery(c, "category"),
		Today:    c.Query("today") == "true",
	}

	entries, err := h.leaderboardService.Leaderboard(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
