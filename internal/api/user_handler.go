package api

import (
	"log/slog"
	"net/http"

	"github.com/rburris/roster-api/internal/api/shared"
	"github.com/rburris/roster-api/internal/domain"
	"github.com/rburris/roster-api/internal/platform/logger"
	"github.com/rburris/roster-api/internal/redact"
	"github.com/rburris/roster-api/internal/store"
	"github.com/rburris/roster-api/internal/validation"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userStore store.UserStore
	gate      *validation.Gate
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userStore store.UserStore,
	gate *validation.Gate,
	logger *slog.Logger,
) *UserHandler {
	if userStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userStore cannot be nil for UserHandler")
	}
	if gate == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("gate cannot be nil for UserHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userStore: userStore,
		gate:      gate,
		logger:    logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /users requests.
// It returns every user known to the system.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	users, err := h.userStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("listed users",
		slog.Int("count", len(users)),
		slog.String("subject", callerID(r)))
	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// CreateUser handles POST /users requests.
// The username must be unique; the optional password is checked against the
// password policy and then discarded.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var input domain.CreateUserInput
	if err := shared.DecodeJSON(r, &input); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("subject", callerID(r)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.gate.ValidateCreate(input); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	user, err := h.userStore.Create(r.Context(), input)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("user created",
		slog.String("user_id", user.ID),
		slog.String("subject", callerID(r)))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// GetUser handles GET /users/{id} requests.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id := pathID(r)
	if id == "" {
		log.Warn("user ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("user retrieved",
		slog.String("user_id", user.ID),
		slog.String("subject", callerID(r)))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateUser handles PATCH /users/{id} requests.
// Absent fields keep their values; first_name and last_name can be cleared
// with an explicit null. The username cannot be cleared.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id := pathID(r)
	if id == "" {
		log.Warn("user ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id),
			slog.String("subject", callerID(r)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	update := req.ToUpdate()
	if err := h.gate.ValidateUpdate(update); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	user, err := h.userStore.Update(r.Context(), id, update)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("user updated",
		slog.String("user_id", user.ID),
		slog.String("subject", callerID(r)))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// DeleteUser handles DELETE /users/{id} requests.
// The response body is the state of the user at the moment of removal.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id := pathID(r)
	if id == "" {
		log.Warn("user ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}

	user, err := h.userStore.Delete(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("user deleted",
		slog.String("user_id", user.ID),
		slog.String("subject", callerID(r)))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}
