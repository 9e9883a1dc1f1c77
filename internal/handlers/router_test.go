package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quizhub/quiz-service/internal/auth"
	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/services"
	"github.com/quizhub/quiz-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	questionID = "5b0c1f63-6f1e-4c39-9c57-3f0b1a1e2d11"
	adminID    = "0f8fad5b-d9cb-469f-a165-70867728950e"
	userID     = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

func setupRouter(t *testing.T) (*gin.Engine, *stubServiceManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stubs := newStubServiceManager()
	logger := utils.NewNopLogger()
	router := NewEngine(logger, []string{"http://localhost:3000"})
	NewHandlerManager(stubs, auth.DefaultPolicy(), logger).SetupRoutes(router)
	return router, stubs
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get(utils.RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(utils.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(utils.RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/quiz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	router, stubs := setupRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/quiz"},
		{http.MethodGet, "/api/quiz/attempt"},
		{http.MethodGet, "/api/quiz/pending"},
		{http.MethodPost, "/api/quiz/contribute"},
		{http.MethodGet, "/api/quizAttempt/history"},
		{http.MethodPost, "/api/quizAttempt/submit"},
		{http.MethodPost, "/api/votes/upvote/" + questionID},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := doRequest(router, route.method, route.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Unauthorized request", decodeBody(t, w)["error"])
		})
	}

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/quizAttempt/history", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	stubs.attempt.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminRoutes_RejectPlainUsers(t *testing.T) {
	router, stubs := setupRouter(t)
	token := stubs.tokenFor(userID, models.RoleUser)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/quiz"},
		{http.MethodPut, "/api/quiz/" + questionID},
		{http.MethodDelete, "/api/quiz/" + questionID},
		{http.MethodGet, "/api/quiz/pending"},
		{http.MethodPatch, "/api/quiz/approve/" + questionID},
		{http.MethodGet, "/api/quiz/export"},
		{http.MethodPost, "/api/quiz/import"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := doRequest(router, route.method, route.path, token, nil)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}

	stubs.question.AssertExpectations(t)
}

func TestCreateQuestion_AsAdmin(t *testing.T) {
	router, stubs := setupRouter(t)
	token := stubs.tokenFor(adminID, models.RoleAdmin)

	created := &models.Question{ID: questionID, Question: "2+2?", IsApproved: true}
	stubs.question.On("Create", mock.Anything, adminID, mock.MatchedBy(func(req *services.CreateQuestionRequest) bool {
		return req.Question == "2+2?" && req.CorrectAnswer == "4"
	})).Return(created, nil)

	w := doRequest(router, http.MethodPost, "/api/quiz", token, map[string]interface{}{
		"question":      "2+2?",
		"options":       []string{"3", "4"},
		"correctAnswer": "4",
		"category":      "math",
		"difficulty":    "easy",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, questionID, decodeBody(t, w)["id"])
	stubs.question.AssertExpectations(t)
}

func TestCreateQuestion_ValidationErrorIs400(t *testing.T) {
	router, stubs := setupRouter(t)
	token := stubs.tokenFor(adminID, models.RoleAdmin)

	stubs.question.On("Create", mock.Anything, adminID, mock.Anything).
		Return(nil, services.ValidationErrors{*services.NewValidationError("question", "is required", "")})

	w := doRequest(router, http.MethodPost, "/api/quiz", token, map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestUpdateQuestion_NotFound(t *testing.T) {
	router, stubs := setupRouter(t)
	token := stubs.tokenFor(adminID, models.RoleAdmin)

	stubs.question.On("Update", mock.Anything, questionID, mock.Anything).Return(nil, services.ErrQuestionNotFound)

	w := doRequest(router, http.MethodPut, "/api/quiz/"+questionID, token, map[string]interface{}{"question": "new"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Question not found", decodeBody(t, w)["error"])
}

func TestDeleteQuestion_IsRepeatable(t *testing.T) {
	router, stubs := setupRouter(t)
	token := stubs.tokenFor(adminID, models.RoleAdmin)

	stubs.question.On("Delete", mock.Anything, questionID).Return(nil).Twice()

	for i := 0; i < 2; i++ {
		w := doRequest(router, http.MethodDelete, "/api/quiz/"+questionID, token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Quiz deleted successfully", decodeBody(t, w)["message"])
	}
	stubs.question.AssertExpectations(t)
}

func TestContributeQuestion_AnyUser(t *testing.T) {
	router, stubs := setupRouter(t)
	token := stubs.tokenFor(userID, models.RoleUser)

	stubs.question.On("Contribute", mock.Anything, userID, mock.Anything).
		Return(&models.Question{ID: questionID}, nil)

	w := doRequest(router, http.MethodPost, "/api/quiz/contribute", token, map[string]interface{}{"question": "q"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Question submitted for approval", decodeBody(t, w)["message"])
}

func TestListQuestions_ParsesFilters(t *testing.T) {
	router, stubs := setupRouter(t)

	stubs.question.On("List", mock.Anything, services.QuestionQuery{
		Category:     "science",
		Difficulty:   "hard",
		Tags:         []string{"physics", "space", "stars"},
		OnlyApproved: true,
	}).Return([]*models.Question{}, nil)

	w := doRequest(router, http.MethodGet,
		"/api/quiz?category=science&difficulty=hard&tags=physics,space&tags=stars&onlyApproved=true", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	stubs.question.AssertExpectations(t)
}

func TestListForAttempt_UsesCap(t *testing.T) {
	router, stubs := setupRouter(t)
	token := stubs.tokenFor(userID, models.RoleUser)

	stubs.question.On("ListForAttempt", mock.Anything, mock.Anything, services.MaxAttemptQuestions).
		Return([]models.QuestionView{{ID: questionID, Question: "2+2?", Options: []string{"3", "4"}}}, nil)

	w := doRequest(router, http.MethodGet, "/api/quiz/attempt", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correctAnswer")
	stubs.question.AssertExpectations(t)
}

func TestVotes(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		voteType   models.VoteType
		outcome    services.VoteOutcome
		err        error
		wantStatus int
		wantBody   string
	}{
		{"first upvote", "/api/votes/upvote/", models.VoteUp, services.VoteCreated, nil, http.StatusCreated, "Upvote registered"},
		{"first downvote", "/api/votes/downvote/", models.VoteDown, services.VoteCreated, nil, http.StatusCreated, "Downvote registered"},
		{"flip to downvote", "/api/votes/downvote/", models.VoteDown, services.VoteChanged, nil, http.StatusOK, "Vote updated to downvote"},
		{"repeat upvote", "/api/votes/upvote/", models.VoteUp, 0, services.ErrAlreadyUpvoted, http.StatusBadRequest, "You already upvoted this question"},
		{"unknown question", "/api/votes/upvote/", models.VoteUp, 0, services.ErrQuestionNotFound, http.StatusNotFound, "Question not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, stubs := setupRouter(t)
			token := stubs.tokenFor(userID, models.RoleUser)
			stubs.vote.On("Cast", mock.Anything, userID, questionID, tt.voteType).Return(tt.outcome, tt.err)

			w := doRequest(router, http.MethodPost, tt.path+questionID, token, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			stubs.vote.AssertExpectations(t)
		})
	}
}

func TestGetVotes_Public(t *testing.T) {
	router, stubs := setupRouter(t)
	stubs.vote.On("Counts", mock.Anything, questionID).Return(&models.VoteCounts{Upvotes: 3, Downvotes: 1}, nil)

	w := doRequest(router, http.MethodGet, "/api/votes/"+questionID, "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"upvotes":3,"downvotes":1}`, w.Body.String())
}

func TestSubmitAttempt(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		router, stubs := setupRouter(t)
		token := stubs.tokenFor(userID, models.RoleUser)

		w := doRequest(router, http.MethodPost, "/api/quizAttempt/submit", token, `{"answers": "nope"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request data", decodeBody(t, w)["error"])
		stubs.attempt.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("scored", func(t *testing.T) {
		router, stubs := setupRouter(t)
		token := stubs.tokenFor(userID, models.RoleUser)
		stubs.attempt.On("Submit", mock.Anything, userID, mock.MatchedBy(func(req *services.SubmitRequest) bool {
			return len(req.Answers) == 1 && req.Answers[0].QuestionID == questionID
		})).Return(&services.SubmitResult{
			Message:        "Quiz submitted successfully",
			Score:          1,
			TotalQuestions: 1,
			FirstAttempt:   true,
		}, nil)

		w := doRequest(router, http.MethodPost, "/api/quizAttempt/submit", token, map[string]interface{}{
			"answers": []map[string]interface{}{{"questionId": questionID, "selectedOption": "4"}},
		})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.EqualValues(t, 1, body["score"])
		assert.Equal(t, true, body["firstAttempt"])
	})
}

func TestStartAttempt_Limit(t *testing.T) {
	router, stubs := setupRouter(t)
	token := stubs.tokenFor(userID, models.RoleUser)

	w := doRequest(router, http.MethodGet, "/api/quizAttempt/attempt?limit=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stubs.attempt.On("StartLegacy", mock.Anything, (*string)(nil), services.DefaultLegacyLimit).
		Return([]models.QuestionView{}, nil)
	w = doRequest(router, http.MethodGet, "/api/quizAttempt/attempt", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"questions":[]}`, w.Body.String())
}

func TestGetLeaderboard(t *testing.T) {
	router, stubs := setupRouter(t)

	stubs.leaderboard.On("Leaderboard", mock.Anything, mock.MatchedBy(func(q services.LeaderboardQuery) bool {
		return q.Today && q.Category != nil && *q.Category == "math"
	})).Return([]models.LeaderboardEntry{{Username: "alice", Category: "math", TotalScore: 3}}, nil)

	w := doRequest(router, http.MethodGet, "/api/quizAttempt/leaderboard?category=math&today=true", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"username":"alice","category":"math","totalScore":3}]`, w.Body.String())
	stubs.leaderboard.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	t.Run("throttled", func(t *testing.T) {
		router, stubs := setupRouter(t)
		stubs.auth.On("Login", mock.Anything, mock.Anything).Return(nil, services.ErrTooManyRequests)

		w := doRequest(router, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "bob", "password": "x"})

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		router, stubs := setupRouter(t)
		stubs.auth.On("Login", mock.Anything, mock.Anything).Return(nil, services.ErrInvalidCredentials)

		w := doRequest(router, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "bob", "password": "x"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
	})

	t.Run("success", func(t *testing.T) {
		router, stubs := setupRouter(t)
		stubs.auth.On("Login", mock.Anything, mock.Anything).Return(&services.LoginResponse{Token: "jwt"}, nil)

		w := doRequest(router, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "bob", "password": "secret"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"jwt"}`, w.Body.String())
	})
}

func TestRegister(t *testing.T) {
	router, stubs := setupRouter(t)
	stubs.auth.On("Register", mock.Anything, mock.Anything).Return(nil, services.ErrUsernameTaken).Once()
	stubs.auth.On("Register", mock.Anything, mock.Anything).Return(&models.User{ID: userID}, nil).Once()

	w := doRequest(router, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "bob", "password": "secret"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", decodeBody(t, w)["error"])

	w = doRequest(router, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "bob2", "password": "secret"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", decodeBody(t, w)["message"])
}
