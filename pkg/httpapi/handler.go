// Package httpapi exposes a script cache over HTTP for the test server.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"

	"github.com/bitechdev/RedisScriptCache/pkg/common"
	"github.com/bitechdev/RedisScriptCache/pkg/logger"
	"github.com/bitechdev/RedisScriptCache/pkg/scriptcache"
)

// Handler serves register, invoke and list operations over one cache.
type Handler struct {
	cache *scriptcache.Cache
}

// NewHandler creates a new HTTP handler around the given cache.
func NewHandler(cache *scriptcache.Cache) *Handler {
	return &Handler{cache: cache}
}

// Routes mounts the handler's endpoints on the router.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/scripts", h.HandleList).Methods("GET")
	r.HandleFunc("/scripts/{name}", h.HandleRegister).Methods("POST")
	r.HandleFunc("/scripts/{name}/invoke", h.HandleInvoke).Methods("POST")
}

// handlePanic converts a panic into a 500 response with a logged stack.
func (h *Handler) handlePanic(w http.ResponseWriter, method string, err interface{}) {
	stack := debug.Stack()
	logger.Error("Panic in %s: %v\nStack trace:\n%s", method, err, string(stack))
	h.sendError(w, http.StatusInternalServerError, "internal_error", fmt.Sprintf("Internal server error in %s", method), fmt.Errorf("%v", err))
}

// HandleRegister registers the posted source under the name in the URL and
// returns the content identifier.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.handlePanic(w, "HandleRegister", err)
		}
	}()

	name := mux.Vars(r)["name"]

	var req common.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode register body: %v", err)
		h.sendError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}

	contentID, err := h.cache.Register(r.Context(), name, req.Source)
	if err != nil {
		logger.Error("Failed to register script %s: %v", name, err)
		h.sendCacheError(w, err)
		return
	}

	h.sendResponse(w, http.StatusOK, common.RegisterResponse{Name: name, ContentID: contentID})
}

// HandleInvoke executes a registered script with the posted keys and args.
func (h *Handler) HandleInvoke(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.handlePanic(w, "HandleInvoke", err)
		}
	}()

	name := mux.Vars(r)["name"]

	var req common.InvokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode invoke body: %v", err)
		h.sendError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}

	result, err := h.cache.Invoke(r.Context(), name, req.Keys, req.Args...)
	if err != nil {
		logger.Error("Failed to invoke script %s: %v", name, err)
		h.sendCacheError(w, err)
		return
	}

	h.sendResponse(w, http.StatusOK, result)
}

// HandleList returns the registered name to identifier mapping.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.sendResponse(w, http.StatusOK, h.cache.Scripts())
}

// sendCacheError maps the cache error taxonomy onto HTTP statuses.
func (h *Handler) sendCacheError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrInvalidArgument), errors.Is(err, common.ErrFileReadFailed):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrUnknownScript):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrRemoteLoadFailed), errors.Is(err, common.ErrRemoteInvokeFailed):
		status = http.StatusBadGateway
	}
	h.sendError(w, status, common.CodeForError(err), err.Error(), errors.Unwrap(err))
}

func (h *Handler) sendResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(common.Response{Success: true, Data: data}); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}

func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string, cause error) {
	apiErr := &common.APIError{Code: code, Message: message}
	if cause != nil {
		apiErr.Detail = cause.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(common.Response{Success: false, Error: apiErr}); err != nil {
		logger.Error("Failed to encode error response: %v", err)
	}
}
