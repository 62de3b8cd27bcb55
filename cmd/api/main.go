package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/x2002uwh/SurveyBundle/internal/access"
	"github.com/x2002uwh/SurveyBundle/internal/config"
	"github.com/x2002uwh/SurveyBundle/internal/handler"
	"github.com/x2002uwh/SurveyBundle/internal/qtype"
	"github.com/x2002uwh/SurveyBundle/internal/repository/postgres"
	"github.com/x2002uwh/SurveyBundle/internal/service"
	"github.com/x2002uwh/SurveyBundle/pkg/auth"
	"github.com/x2002uwh/SurveyBundle/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	flag.Parse()

	// .env не обязателен: переменные окружения могут приходить извне
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("ошибка загрузки конфигурации: %v", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.JSON)

	db, err := postgres.NewDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("ошибка инициализации базы данных: %v", err)
	}

	surveyRepo := postgres.NewSurveyRepo(db)
	questionRepo := postgres.NewQuestionRepo(db)
	answerRepo := postgres.NewAnswerRepo(db)
	userRepo := postgres.NewUserRepo(db)
	workspaceRepo := postgres.NewWorkspaceRepo(db)

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Fatalf("ошибка инициализации JWT: %v", err)
	}

	registry := qtype.Default(questionRepo)
	checker := access.NewRoleChecker()

	authService := service.NewAuthService(userRepo, workspaceRepo, jwtService)
	surveyService := service.NewSurveyService(surveyRepo, questionRepo, checker)
	statusService := service.NewStatusService(surveyRepo, checker)
	questionService := service.NewQuestionService(questionRepo, registry, checker)
	answerService := service.NewAnswerService(surveyRepo, questionRepo, answerRepo, registry, checker)
	resultsService := service.NewResultsService(surveyRepo, questionRepo, answerRepo, registry, checker)
	exportService := service.NewExportService(surveyRepo, questionRepo, resultsService)

	router := handler.NewRouter(
		cfg,
		jwtService,
		authService,
		handler.NewAuthHandler(authService, log),
		handler.NewSurveyHandler(surveyService, statusService, log),
		handler.NewQuestionHandler(questionService, log),
		handler.NewAnswerHandler(answerService, log),
		handler.NewResultsHandler(resultsService, exportService, log),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	log.Infof("сервер запускается на порту %s", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("ошибка запуска сервера: %v", err)
	}
}
