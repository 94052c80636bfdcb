// errors стандартизирует ответы об ошибках HTTP-слоя videohub.
// На вход принимает ошибку сервисного слоя, на выход даёт HTTP-статус
// и краткое безопасное message без деталей хранилища.
//
// Источник истинности по таксономии: sentinel-ошибки internal/service.
package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/go-videohub/internal/service"

	json "github.com/goccy/go-json"
)

// StatusClientClosedRequest - нестандартный код "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// ErrRateLimited - превышен лимит запросов с одного IP.
var ErrRateLimited = stderrors.New("rate limited")

// APIError - единый формат ошибки для клиентов.
// Code - короткий стабильный код; Message - безопасное описание;
// RequestID - из X-Request-Id, если он есть.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse - корневой объект ответа.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и тело ответа.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal;
//   - отмена и таймаут контекста проверяются раньше сервисных ошибок,
//     потому что ErrUnavailable сохраняет причину в цепочке;
//   - нераспознанная ошибка - 500/internal.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)
	return status, ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

// WriteError пишет статус и тело ошибки, добавляя request_id из заголовка.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// classify - маппинг ошибок сервиса -> HTTP/код/сообщение:
//   - ErrInvalidCursor -> 400 invalid_cursor
//   - ErrInvalidArgument -> 400 invalid_argument
//   - ErrUnauthorized -> 401 unauthenticated
//   - ErrNotFound -> 404 not_found
//   - ErrConflict -> 409 already_exists
//   - ErrRateLimited -> 429 resource_exhausted
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504
//   - ErrUnavailable -> 503
func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case stderrors.Is(err, service.ErrInvalidCursor):
		return http.StatusBadRequest, "invalid_cursor", "invalid cursor"
	case stderrors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case stderrors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case stderrors.Is(err, service.ErrConflict):
		return http.StatusConflict, "already_exists", "already exists"
	case stderrors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "resource_exhausted", "too many requests"
	case stderrors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable", "service unavailable"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
