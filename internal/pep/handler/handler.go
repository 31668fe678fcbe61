// Package handler is the HTTP boundary of the declaration pipeline. It owns
// the exhaustive mapping from typed pipeline failures to response envelopes;
// no other layer knows about status codes.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	jwttoken "pepgate/internal/jwt_token"
	"pepgate/internal/pep/models"
	"pepgate/internal/pep/service"
	"pepgate/internal/platform/middleware"
	dErrors "pepgate/pkg/domain-errors"
	"pepgate/pkg/requestcontext"
)

const maxBodyBytes = 64 << 10

// TokenValidator verifies a bearer session token.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

// DeviceResolver resolves the device-info header into a device context.
type DeviceResolver interface {
	Resolve(ctx context.Context, headerValue, rawUserAgent string) (*models.DeviceContext, error)
}

// Updater runs the declaration update pipeline.
type Updater interface {
	Update(ctx context.Context, input service.UpdateInput) error
}

// Handler handles the politically-exposed declaration endpoint.
type Handler struct {
	logger            *slog.Logger
	validator         TokenValidator
	devices           DeviceResolver
	updater           Updater
	requireDeviceInfo bool
}

func New(validator TokenValidator, devices DeviceResolver, updater Updater, requireDeviceInfo bool, logger *slog.Logger) *Handler {
	return &Handler{
		logger:            logger,
		validator:         validator,
		devices:           devices,
		updater:           updater,
		requireDeviceInfo: requireDeviceInfo,
	}
}

// Register mounts the declaration routes with the standard middleware chain.
func (h *Handler) Register(r chi.Router) {
	pr := chi.NewRouter()
	pr.Use(middleware.Recovery(h.logger))
	pr.Use(middleware.RequestID)
	pr.Use(middleware.Logger(h.logger))
	pr.Use(middleware.Timeout(30 * time.Second))
	pr.Use(middleware.ContentTypeJSON)
	pr.Put("/onboarding/politically-exposed", h.handleUpdateDeclaration)

	r.Mount("/", pr)
}

func (h *Handler) handleUpdateDeclaration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.writeFailure(ctx, w, dErrors.Wrap(dErrors.CodeValidation, "unreadable request body", err))
		return
	}
	declaration, err := models.ParseDeclaration(raw)
	if err != nil {
		h.writeFailure(ctx, w, err)
		return
	}

	token := bearerToken(r)
	if token == "" {
		h.writeFailure(ctx, w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
		return
	}
	claims, err := h.validator.ValidateToken(token)
	if err != nil {
		h.writeFailure(ctx, w, err)
		return
	}
	identity := models.Identity{UniqueID: claims.UniqueID}

	var deviceCtx *models.DeviceContext
	if h.requireDeviceInfo {
		deviceCtx, err = h.devices.Resolve(ctx, r.Header.Get("X-Device-Info"), r.UserAgent())
		if err != nil {
			h.writeFailure(ctx, w, err)
			return
		}
	}

	err = h.updater.Update(ctx, service.UpdateInput{
		Token:       token,
		Identity:    identity,
		Declaration: declaration,
		Device:      deviceCtx,
	})
	if err != nil {
		h.writeFailure(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.Response{
		Result:  nil,
		Message: "Register Updated.",
		Success: true,
		Code:    models.CodeSuccess,
	})
}

// writeFailure logs the typed error with context, then converts it to the
// response row it maps to. Logging never alters control flow.
func (h *Handler) writeFailure(ctx context.Context, w http.ResponseWriter, err error) {
	status, apiCode, message := mapError(err)

	logFn := h.logger.ErrorContext
	if status < http.StatusInternalServerError {
		logFn = h.logger.WarnContext
	}
	logFn(ctx, message,
		"error", err,
		"code", string(apiCode),
		"request_id", requestcontext.RequestID(ctx),
	)

	writeJSON(w, status, models.Response{
		Result:  nil,
		Message: message,
		Success: false,
		Code:    apiCode,
	})
}

// mapError is the exhaustive failure table. Anything unclassified falls
// through to an internal error without leaking detail to the client.
func mapError(err error) (int, models.APICode, string) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation:
		return http.StatusBadRequest, models.CodeInvalidParams, "Invalid parameters"
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized, models.CodeJWTInvalid, "JWT invalid or not supplied"
	case dErrors.CodeInvalidStep:
		return http.StatusUnauthorized, models.CodeInvalidParams, "User in invalid onboarding step"
	case dErrors.CodeSuitabilityRequired:
		return http.StatusUnauthorized, models.CodeInvalidParams, "User has no suitability profile"
	case dErrors.CodeDeviceNotSupplied:
		return http.StatusBadRequest, models.CodeInvalidParams, "Device info not supplied"
	case dErrors.CodeDeviceRequestFailed:
		return http.StatusInternalServerError, models.CodeInternalServerError, "Error trying to get device info"
	default:
		return http.StatusInternalServerError, models.CodeInternalServerError, "Failed to update register"
	}
}

func writeJSON(w http.ResponseWriter, status int, body models.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return after
	}
	return ""
}
