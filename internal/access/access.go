package access

import (
	"fmt"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

// Action - действие над ресурсом, на которое запрашивается разрешение
type Action string

const (
	ActionOpen Action = "OPEN"
	ActionEdit Action = "EDIT"
)

// Resource описывает проверяемый ресурс: его workspace и владельца
type Resource struct {
	WorkspaceID uint
	OwnerID     uint
}

// SurveyResource строит Resource из опроса
func SurveyResource(s *entity.Survey) Resource {
	return Resource{WorkspaceID: s.WorkspaceID, OwnerID: s.OwnerID}
}

// QuestionResource строит Resource из вопроса
func QuestionResource(q *entity.Question) Resource {
	return Resource{WorkspaceID: q.WorkspaceID}
}

// Checker принимает решение о доступе пользователя к ресурсу.
// Реализации передаются сервисам явно при сборке приложения.
type Checker interface {
	// Allowed сообщает, разрешено ли пользователю действие над ресурсом
	Allowed(user *entity.User, action Action, res Resource) bool
}

// Assert возвращает ErrAccessDenied, если действие запрещено
func Assert(c Checker, user *entity.User, action Action, res Resource) error {
	if !c.Allowed(user, action, res) {
		return fmt.Errorf("действие %s запрещено: %w", action, apperrors.ErrAccessDenied)
	}
	return nil
}

// RoleChecker - проверка доступа по роли и принадлежности к workspace.
// OPEN разрешен любому пользователю workspace ресурса, EDIT - владельцу
// ресурса и администраторам.
type RoleChecker struct{}

// NewRoleChecker создает RoleChecker
func NewRoleChecker() *RoleChecker {
	return &RoleChecker{}
}

// Allowed реализует интерфейс Checker
func (c *RoleChecker) Allowed(user *entity.User, action Action, res Resource) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	if res.WorkspaceID != 0 && user.WorkspaceID != res.WorkspaceID {
		return false
	}

	switch action {
	case ActionOpen:
		return true
	case ActionEdit:
		return res.OwnerID == 0 || res.OwnerID == user.ID
	default:
		return false
	}
}
