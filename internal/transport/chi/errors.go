package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stayfinder/internal/domain"
	"github.com/kailas-cloud/stayfinder/internal/logger"
)

// retryAfterSeconds is sent with 503 responses for store failures.
const retryAfterSeconds = "1"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		invalidInputHandler,
		landmarkNotFoundHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeListingNotFound),
		storeUnavailableHandler,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error
// and reports only the sentinel text.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// invalidInputHandler echoes the validation reason, which is client-facing by construction.
func invalidInputHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidInput) {
		return false
	}
	writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
	return true
}

func landmarkNotFoundHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrLandmarkNotFound) {
		return false
	}
	msg := domain.ErrLandmarkNotFound.Error()
	var lnf *domain.LandmarkNotFoundError
	if errors.As(err, &lnf) {
		msg = lnf.Error()
	}
	writeError(w, http.StatusNotFound, codeLandmarkNotFound, msg)
	return true
}

func storeUnavailableHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		return false
	}
	w.Header().Set("Retry-After", retryAfterSeconds)
	writeError(w, http.StatusServiceUnavailable, codeStoreUnavailable, domain.ErrStoreUnavailable.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
