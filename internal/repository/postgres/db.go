package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
)

// NewDB открывает соединение с PostgreSQL и выполняет миграции схемы
func NewDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Нарушения ограничений приходят как gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate выполняет автомиграцию всех сущностей
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Workspace{},
		&entity.User{},
		&entity.Survey{},
		&entity.Question{},
		&entity.MultipleChoiceQuestion{},
		&entity.Choice{},
		&entity.SurveyQuestionRelation{},
		&entity.SurveyAnswer{},
		&entity.QuestionAnswer{},
		&entity.OpenEndedQuestionAnswer{},
		&entity.MultipleChoiceQuestionAnswer{},
	)
	if err != nil {
		return fmt.Errorf("ошибка миграции схемы: %w", err)
	}
	return nil
}
