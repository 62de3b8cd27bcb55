package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/x2002uwh/SurveyBundle/internal/config"
	"github.com/x2002uwh/SurveyBundle/internal/service"
	"github.com/x2002uwh/SurveyBundle/pkg/auth"
)

// Router собирает все обработчики и настраивает маршруты API
type Router struct {
	cfg         *config.Config
	jwtService  *auth.JWTService
	authService *service.AuthService
	authH       *AuthHandler
	surveyH     *SurveyHandler
	questionH   *QuestionHandler
	answerH     *AnswerHandler
	resultsH    *ResultsHandler
}

// NewRouter создает новый роутер
func NewRouter(
	cfg *config.Config,
	jwtService *auth.JWTService,
	authService *service.AuthService,
	authH *AuthHandler,
	surveyH *SurveyHandler,
	questionH *QuestionHandler,
	answerH *AnswerHandler,
	resultsH *ResultsHandler,
) *Router {
	return &Router{
		cfg:         cfg,
		jwtService:  jwtService,
		authService: authService,
		authH:       authH,
		surveyH:     surveyH,
		questionH:   questionH,
		answerH:     answerH,
		resultsH:    resultsH,
	}
}

// Setup настраивает gin.Engine со всеми маршрутами приложения
func (r *Router) Setup() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RateLimitMiddleware(r.cfg.Server.RateLimit, r.cfg.Server.RateBurst))

	corsConfig := cors.DefaultConfig()
	if len(r.cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = r.cfg.CORS.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.MaxAge = 12 * time.Hour
	engine.Use(cors.New(corsConfig))

	api := engine.Group("/api/v1")

	api.POST("/auth/register", r.authH.Register)
	api.POST("/auth/login", r.authH.Login)

	// Публичные результаты по токену, без аутентификации
	api.GET("/results/public/:token", r.resultsH.Public)

	authorized := api.Group("")
	authorized.Use(AuthMiddleware(r.jwtService, r.authService))
	{
		authorized.GET("/auth/me", r.authH.Me)

		surveys := authorized.Group("/surveys")
		{
			surveys.POST("", r.surveyH.Create)
			surveys.GET("", r.surveyH.List)
			surveys.GET("/:id", r.surveyH.Get)
			surveys.PATCH("/:id", r.surveyH.Update)
			surveys.DELETE("/:id", r.surveyH.Delete)

			surveys.POST("/:id/publish", r.surveyH.Publish)
			surveys.POST("/:id/close", r.surveyH.Close)

			surveys.GET("/:id/questions", r.surveyH.Questions)
			surveys.POST("/:id/questions", r.surveyH.AttachQuestion)
			surveys.DELETE("/:id/questions/:questionId", r.surveyH.DetachQuestion)

			surveys.GET("/:id/answers/forms", r.answerH.Forms)
			surveys.POST("/:id/answers", r.answerH.Submit)

			surveys.GET("/:id/results", r.resultsH.Survey)
			surveys.GET("/:id/results/:questionId", r.resultsH.Question)
			surveys.GET("/:id/results.xlsx", r.resultsH.Export)
		}

		relations := authorized.Group("/relations")
		{
			relations.POST("/:relationId/mandatory", r.surveyH.SwitchMandatory)
			relations.POST("/:relationId/position", r.surveyH.Reorder)
		}

		questions := authorized.Group("/questions")
		{
			questions.POST("", r.questionH.Create)
			questions.GET("", r.questionH.List)
			questions.GET("/form", r.questionH.CreationForm)
			questions.GET("/:id", r.questionH.Get)
			questions.GET("/:id/form", r.questionH.EditForm)
			questions.PATCH("/:id", r.questionH.Update)
			questions.DELETE("/:id", r.questionH.Delete)
		}
	}

	return engine
}
