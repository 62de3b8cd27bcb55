package service

import (
	"errors"
	"fmt"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	"github.com/x2002uwh/SurveyBundle/internal/domain/repository"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
	"github.com/x2002uwh/SurveyBundle/pkg/auth"
)

// AuthService управляет регистрацией и входом пользователей
type AuthService struct {
	userRepo      repository.UserRepository
	workspaceRepo repository.WorkspaceRepository
	jwtService    *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	workspaceRepo repository.WorkspaceRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		workspaceRepo: workspaceRepo,
		jwtService:    jwtService,
	}
}

// RegisterInput - данные регистрации пользователя
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	// ID существующего workspace; 0 означает создание нового
	WorkspaceID uint `json:"workspace_id"`
	// Название нового workspace, когда WorkspaceID не задан
	WorkspaceName string `json:"workspace_name"`
}

// Register регистрирует нового пользователя. Если workspace не указан,
// создается новый, и пользователь становится его первым участником.
func (s *AuthService) Register(input RegisterInput) (*entity.User, error) {
	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("ошибка проверки email: %w", err)
	}

	workspaceID := input.WorkspaceID
	if workspaceID == 0 {
		name := input.WorkspaceName
		if name == "" {
			name = input.Username
		}
		workspace := &entity.Workspace{Name: name}
		if err := s.workspaceRepo.Create(workspace); err != nil {
			return nil, fmt.Errorf("ошибка создания workspace: %w", err)
		}
		workspaceID = workspace.ID
	} else {
		if _, err := s.workspaceRepo.GetByID(workspaceID); err != nil {
			return nil, fmt.Errorf("workspace не найден: %w", err)
		}
	}

	user := &entity.User{
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		Role:        entity.RoleUser,
		WorkspaceID: workspaceID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return user, nil
}

// Login проверяет учетные данные и возвращает пользователя с токеном доступа
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации токена: %w", err)
	}
	return user, token, nil
}

// GetUser возвращает пользователя по ID
func (s *AuthService) GetUser(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}
