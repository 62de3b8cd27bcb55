package repository

import (
	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
)

// UserRepository интерфейс для работы с пользователями
type UserRepository interface {
	// GetByID возвращает пользователя по ID
	GetByID(id uint) (*entity.User, error)

	// GetByEmail возвращает пользователя по email
	GetByEmail(email string) (*entity.User, error)

	// Create создает нового пользователя
	Create(user *entity.User) error
}

// WorkspaceRepository интерфейс для работы с рабочими пространствами
type WorkspaceRepository interface {
	// GetByID возвращает workspace по ID
	GetByID(id uint) (*entity.Workspace, error)

	// Create создает новый workspace
	Create(workspace *entity.Workspace) error
}
