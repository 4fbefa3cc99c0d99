package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classroom-apps/qa-service/internal/repositories"
	"github.com/classroom-apps/qa-service/internal/services"
	"github.com/classroom-apps/qa-service/internal/utils"
)

type HandlerManager struct {
	userHandler     *UserHandler
	questionHandler *QuestionHandler
	answerHandler   *AnswerHandler

	repoManager repositories.RepositoryManager
	port        string
	environment string
}

func NewHandlerManager(serviceManager services.ServiceManager, repoManager repositories.RepositoryManager, logger utils.Logger, port, environment string) *HandlerManager {
	return &HandlerManager{
		userHandler:     NewUserHandler(serviceManager.User(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Question(), logger),
		answerHandler:   NewAnswerHandler(serviceManager.Answer(), logger),
		repoManager:     repoManager,
		port:            port,
		environment:     environment,
	}
}

// SetupRoutes sets up all API routes. Identity is self-asserted through
// request body fields, so there is no auth middleware on these groups.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", hm.userHandler.CreateUser)
			users.GET("/:id", hm.userHandler.GetUser)
		}

		questions := api.Group("/questions")
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)

			// Answers live under their question.
			questions.POST("/:id/answers", hm.answerHandler.CreateAnswer)
			questions.GET("/:id/answers", hm.answerHandler.ListAnswers)
			questions.PUT("/:id/answers/:answer_id", hm.answerHandler.UpdateAnswer)
			questions.DELETE("/:id/answers/:answer_id", hm.answerHandler.DeleteAnswer)
		}
	}

	// API index
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Classroom Q&A API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"health":    "/health",
				"users":     "/api/users",
				"questions": "/api/questions",
				"answers":   "/api/questions/:id/answers",
			},
		})
	})

	// Health probe including store liveness.
	router.GET("/health", func(c *gin.Context) {
		status := "OK"
		database := "up"
		code := http.StatusOK
		if err := hm.repoManager.HealthCheck(c.Request.Context()); err != nil {
			status = "DEGRADED"
			database = "down"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":      status,
			"database":    database,
			"port":        hm.port,
			"environment": hm.environment,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	})
}
