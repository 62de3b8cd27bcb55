package entity

import (
	"time"
)

// Workspace представляет рабочее пространство, которому принадлежат
// опросы и вопросы. Вопрос из чужого workspace нельзя прикрепить к опросу.
type Workspace struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
