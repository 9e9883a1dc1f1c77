package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/quizhub/quiz-service/internal/auth"
	"github.com/quizhub/quiz-service/internal/services"
	"github.com/quizhub/quiz-service/internal/utils"
)

type HandlerManager struct {
	middlewares     *Middlewares
	authHandler     *AuthHandler
	questionHandler *QuestionHandler
	attemptHandler  *AttemptHandler
	voteHandler     *VoteHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	policy auth.Policy,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		middlewares:     NewMiddlewares(serviceManager.Auth(), policy, NewBaseHandler(logger)),
		authHandler:     NewAuthHandler(serviceManager.Auth(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Question(), serviceManager.ImportExport(), logger),
		attemptHandler:  NewAttemptHandler(serviceManager.Attempt(), serviceManager.Leaderboard(), logger),
		voteHandler:     NewVoteHandler(serviceManager.Vote(), logger),
	}
}

// NewEngine builds a gin engine with the shared middleware chain
func NewEngine(logger utils.Logger, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		utils.RequestID(),
		utils.ContextLogger(logger),
		utils.LoggerMiddleware(logger),
		CORS(corsOrigins),
	)
	return router
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	guard := hm.middlewares.Guard

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", hm.authHandler.Register)
			authRoutes.POST("/login", hm.authHandler.Login)
		}

		quiz := api.Group("/quiz")
		{
			quiz.GET("", hm.questionHandler.ListQuestions)
			quiz.GET("/categories", hm.questionHandler.ListCategories)
			quiz.GET("/attempt", append(guard(auth.OpQuizTake), hm.questionHandler.ListForAttempt)...)
			quiz.POST("", append(guard(auth.OpQuestionCreate), hm.questionHandler.CreateQuestion)...)
			quiz.PUT("/:id", append(guard(auth.OpQuestionUpdate), hm.questionHandler.UpdateQuestion)...)
			quiz.DELETE("/:id", append(guard(auth.OpQuestionDelete), hm.questionHandler.DeleteQuestion)...)
			quiz.POST("/contribute", append(guard(auth.OpQuestionContribute), hm.questionHandler.ContributeQuestion)...)
			quiz.GET("/pending", append(guard(auth.OpQuestionPending), hm.questionHandler.ListPending)...)
			quiz.PATCH("/approve/:id", append(guard(auth.OpQuestionApprove), hm.questionHandler.ApproveQuestion)...)
			quiz.GET("/export", append(guard(auth.OpQuestionExport), hm.questionHandler.ExportQuestions)...)
			quiz.POST("/import", append(guard(auth.OpQuestionImport), hm.questionHandler.ImportQuestions)...)
		}

		attempts := api.Group("/quizAttempt")
		{
			attempts.GET("/history", append(guard(auth.OpAttemptHistory), hm.attemptHandler.GetHistory)...)
			attempts.GET("/attempt", append(guard(auth.OpQuizTake), hm.attemptHandler.StartAttempt)...)
			attempts.POST("/submit", append(guard(auth.OpAttemptSubmit), hm.attemptHandler.SubmitAttempt)...)
			attempts.GET("/leaderboard", hm.attemptHandler.GetLeaderboard)
		}

		votes := api.Group("/votes")
		{
			votes.POST("/upvote/:questionId", append(guard(auth.OpVoteCast), hm.voteHandler.Upvote)...)
			votes.POST("/downvote/:questionId", append(guard(auth.OpVoteCast), hm.voteHandler.Downvote)...)
			votes.GET("/:questionId", hm.voteHandler.GetVotes)
		}
	}
}
