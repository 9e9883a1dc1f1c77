package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quizhub/quiz-service/internal/services"
	"github.com/quizhub/quiz-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type QuestionHandler struct {
	BaseHandler
	questionService     services.QuestionService
	importExportService services.ImportExportService
}

func NewQuestionHandler(
	questionService services.QuestionService,
	importExportService services.ImportExportService,
	logger utils.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:         NewBaseHandler(logger),
		questionService:     questionService,
		importExportService: importExportService,
	}
}

// ListQuestions lists questions filtered by category, tags, difficulty and approval
// @Router /quiz [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context(), h.parseQuestionQuery(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// ListForAttempt returns up to ten approved questions without their answers
// @Router /quiz/attempt [get]
func (h *QuestionHandler) ListForAttempt(c *gin.Context) {
	query := h.parseQuestionQuery(c)
	views, err := h.questionService.ListForAttempt(c.Request.Context(), query, services.MaxAttemptQuestions)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ListCategories returns the distinct question categories
// @Router /quiz/categories [get]
func (h *QuestionHandler) ListCategories(c *gin.Context) {
	categories, err := h.questionService.Categories(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateQuestion creates a question as an admin
// @Router /quiz [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), c.GetString(userIDKey), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion merges the given fields into an existing question
// @Router /quiz/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var req services.UpdateQuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question; repeating the call is harmless
// @Router /quiz/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.questionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Quiz deleted successfully"})
}

// ContributeQuestion submits a question for moderation
// @Router /quiz/contribute [post]
func (h *QuestionHandler) ContributeQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if _, err := h.questionService.Contribute(c.Request.Context(), c.GetString(userIDKey), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "Question submitted for approval"})
}

// ListPending returns questions awaiting approval
// @Router /quiz/pending [get]
func (h *QuestionHandler) ListPending(c *gin.Context) {
	questions, err := h.questionService.Pending(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// ApproveQuestion marks a question as approved
// @Router /quiz/approve/{id} [patch]
func (h *QuestionHandler) ApproveQuestion(c *gin.Context) {
	question, err := h.questionService.Approve(c.Request.Context(), c.Param("id"), c.GetString(userIDKey))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// ExportQuestions streams the question bank as an .xlsx workbook
// @Router /quiz/export [get]
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	query := services.ExportQuery{Category: c.Query("category")}
	query.OnlyApproved, _ = strconv.ParseBool(c.Query("onlyApproved"))

	data, err := h.importExportService.ExportQuestions(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("questions-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ImportQuestions creates questions from an uploaded .xlsx workbook
// @Router /quiz/import [post]
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed",
			services.ValidationErrors{*services.NewValidationError("file", "is required", nil)})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Could not read uploaded file", err.Error())
		return
	}
	defer file.Close()

	result, err := h.importExportService.ImportQuestions(c.Request.Context(), file, c.GetString(userIDKey))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "Questions imported", "filename", fileHeader.Filename, "created", result.SuccessCount)
	c.JSON(http.StatusOK, result)
}

func (h *QuestionHandler) parseQuestionQuery(c *gin.Context) services.QuestionQuery {
	query := services.QuestionQuery{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Tags:       queryList(c, "tags"),
	}
	query.OnlyApproved, _ = strconv.ParseBool(c.Query("onlyApproved"))
	return query
}
