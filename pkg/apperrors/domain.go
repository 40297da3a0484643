package apperrors

import "net/http"

// Сообщения, которые видит клиент при ошибках логина и токенов.
const (
	MsgUnableToLogin   = "Unable to login with provided credentials."
	MsgBothFieldsEmpty = "Both fields needs to be filled"
	MsgInvalidToken    = "Invalid token."
	MsgNotLoggedIn     = "Not logged in!"
	MsgPasswordsDiffer = "Passwords do not match."
	NonFieldErrorsKey  = "non_field_errors"
)

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrDatabase оборачивает ошибку репозитория
func ErrDatabase(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database", "Database error", http.StatusInternalServerError)
}

// ErrQueue оборачивает ошибку брокера задач
func ErrQueue(err error) *AppError {
	return Wrap(err, CodeQueueError, "tasks", "Task queue unavailable", http.StatusServiceUnavailable)
}

// --- Auth ---

var (
	// ErrInvalidCredentials отдается как 400 с non_field_errors.
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", MsgUnableToLogin, http.StatusBadRequest).
				FieldErrors(NonFieldErrorsKey, MsgUnableToLogin)

	ErrCredentialsMissing = New(CodeValidationFailed, "auth", MsgBothFieldsEmpty, http.StatusBadRequest).
				FieldErrors(NonFieldErrorsKey, MsgBothFieldsEmpty)

	// ErrOneTimeTokenDoesNotExist - подпись неверна, срок истек или пользователь не найден.
	ErrOneTimeTokenDoesNotExist = New(CodeInvalidToken, "users", MsgInvalidToken, http.StatusBadRequest).
					FieldErrors("token", MsgInvalidToken)

	ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)
	ErrTokenExpired = New(CodeTokenExpired, "auth", "Refresh has expired", http.StatusUnauthorized)

	ErrNotLoggedIn = New(CodeUnauthorized, "auth", MsgNotLoggedIn, http.StatusUnauthorized)

	ErrInsufficientPermissions = New(CodeForbidden, "auth", "Insufficient permissions", http.StatusForbidden)
)

// --- Users ---

var (
	ErrUserNotFound       = New(CodeUserNotFound, "users", "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "users", "Email already exists", http.StatusConflict).
				FieldErrors("email", "User with this email address already exists.")
	ErrPasswordMismatch = New(CodePasswordMismatch, "users", MsgPasswordsDiffer, http.StatusBadRequest).
				FieldErrors("confirmed_password", MsgPasswordsDiffer)
)

// --- Tasks ---

var ErrTaskNotFound = New(CodeTaskNotFound, "tasks", "Task not found", http.StatusNotFound)
