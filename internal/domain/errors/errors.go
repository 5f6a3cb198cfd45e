package errors

import (
	"fmt"
	"net/http"

	"dezapego/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Usuário não encontrado",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"Este e-mail já está cadastrado",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"Este nome de usuário já está em uso",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Falha ao criar usuário",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"Falha ao atualizar usuário",
		"",
	)

	ErrAccountBlocked = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_BLOCKED",
		"Sua conta está suspensa ou banida",
		"",
	)

	// Authentication-related errors
	ErrAuthNotFound = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_NOT_FOUND",
		"Credencial de acesso não encontrada",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"E-mail ou senha incorretos",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Autenticação necessária",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Token de renovação inválido ou expirado",
		"",
	)

	ErrRefreshTokenNotFound = NewBaseError(
		http.StatusNotFound,
		"REFRESH_TOKEN_NOT_FOUND",
		"Token de renovação não encontrado",
		"",
	)

	ErrRefreshTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_EXPIRED",
		"Token de renovação expirado",
		"",
	)

	ErrSessionLimitExceeded = NewBaseError(
		http.StatusForbidden,
		"SESSION_LIMIT_EXCEEDED",
		"Número máximo de sessões ativas atingido",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Falha ao processar a senha",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"A senha deve ter pelo menos 6 caracteres",
		"",
	)

	// Listing-related errors
	ErrListingNotFound = NewBaseError(
		http.StatusNotFound,
		"LISTING_NOT_FOUND",
		"Anúncio não encontrado",
		"",
	)

	ErrListingOwnershipViolation = NewBaseError(
		http.StatusForbidden,
		"LISTING_OWNERSHIP_VIOLATION",
		"Você não tem permissão para alterar este anúncio",
		"",
	)

	ErrListingStatusConflict = NewBaseError(
		http.StatusConflict,
		"LISTING_STATUS_CONFLICT",
		"O anúncio não permite esta operação no estado atual",
		"",
	)

	ErrImageLimitExceeded = NewBaseError(
		http.StatusBadRequest,
		"IMAGE_LIMIT_EXCEEDED",
		"Número máximo de fotos por anúncio atingido",
		"",
	)

	ErrImageUploadFailed = NewBaseError(
		http.StatusInternalServerError,
		"IMAGE_UPLOAD_FAILED",
		"Falha ao enviar a imagem",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Dados de entrada inválidos",
		"",
	)

	// Engagement-related errors
	ErrInvalidEventType = NewBaseError(
		http.StatusBadRequest,
		"INVALID_EVENT_TYPE",
		"Tipo de evento desconhecido",
		"",
	)

	// Report-related errors
	ErrReportTargetMissing = NewBaseError(
		http.StatusBadRequest,
		"REPORT_TARGET_MISSING",
		"A denúncia precisa indicar um anúncio ou um usuário",
		"",
	)

	ErrDuplicateReport = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_REPORT",
		"Você já denunciou este conteúdo",
		"",
	)

	// CEP lookup errors
	ErrCEPNotFound = NewBaseError(
		http.StatusNotFound,
		"CEP_NOT_FOUND",
		"CEP não encontrado",
		"",
	)

	ErrCEPLookupFailed = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_ERROR",
		"Serviço de consulta de CEP indisponível",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Falha na transação do banco de dados",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Erro interno do sistema",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Acesso negado",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Recurso não encontrado",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Conflito de recursos",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Falha ao executar operação no banco de dados"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// QuotaExceededError is returned when a profile tries to publish beyond its
// plan's active-listing allowance. It carries the counts so the client can
// render an upgrade prompt.
type QuotaExceededError struct {
	Plan    string
	Current int64
	Limit   int64
}

// NewQuotaExceededError creates a quota error for the given plan and counts
func NewQuotaExceededError(plan string, current, limit int64) AppError {
	return &QuotaExceededError{
		Plan:    plan,
		Current: current,
		Limit:   limit,
	}
}

// Error implements the error interface
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("active listing quota exceeded: %d/%d on plan %s", e.Current, e.Limit, e.Plan)
}

// HTTPCode returns the HTTP status code
func (e *QuotaExceededError) HTTPCode() int {
	return http.StatusForbidden
}

// ErrorCode returns the business error code
func (e *QuotaExceededError) ErrorCode() string {
	return "QUOTA_EXCEEDED"
}

// Message returns the user-friendly error message
func (e *QuotaExceededError) Message() string {
	return "Você atingiu o limite de anúncios ativos do seu plano"
}

// Details returns detailed error information
func (e *QuotaExceededError) Details() string {
	return fmt.Sprintf("plano %s: %d de %d anúncios ativos", e.Plan, e.Current, e.Limit)
}
