package errors

import "errors"

// Общие ошибки уровня приложения.
// Репозитории и сервисы возвращают эти ошибки, а HTTP-слой
// преобразует их в статусы ответа.
var (
	// ErrNotFound возвращается, когда запись не найдена
	ErrNotFound = errors.New("запись не найдена")

	// ErrAccessDenied возвращается при отказе в доступе к ресурсу,
	// в том числе при несоответствии workspace вопроса и опроса
	ErrAccessDenied = errors.New("доступ запрещен")

	// ErrDuplicateAnswer возвращается при нарушении уникальности
	// пары (опрос, пользователь) для SurveyAnswer
	ErrDuplicateAnswer = errors.New("ответ на опрос уже существует")

	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("неверный email или пароль")

	// ErrEmailTaken возвращается при регистрации с занятым email
	ErrEmailTaken = errors.New("email уже используется")
)
