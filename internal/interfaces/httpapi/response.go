package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/crickslab/crex-api/internal/usecase"
)

// Error responses share the `success` discriminator with the normalized
// match documents, so clients can branch on one field regardless of outcome.
type errorEnvelope struct {
	Success bool       `json:"success"`
	Error   *errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Code       string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"internal","message":"encode response"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope{
		Success: false,
		Error: &errorBody{
			Code:    mapped.Code,
			Message: err.Error(),
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorEnvelope{
		Success: false,
		Error: &errorBody{
			Code:    "internal",
			Message: "internal server error",
		},
	})
}

// mapError collapses the usecase failure taxonomy to HTTP statuses. Upstream
// parse and fetch failures surface as 502 because the fault sits on the far
// side of this service; bot-protection blocks are 503 since retrying later
// usually clears them.
func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Code: "invalid_input"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Code: "unauthorized"}
	case errors.Is(err, usecase.ErrMatchNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Code: "match_not_found"}
	case errors.Is(err, usecase.ErrBlocked):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Code: "upstream_blocked"}
	case errors.Is(err, usecase.ErrDataTagNotFound):
		return mappedError{HTTPStatus: http.StatusBadGateway, Code: "data_tag_not_found"}
	case errors.Is(err, usecase.ErrMalformedPayload):
		return mappedError{HTTPStatus: http.StatusBadGateway, Code: "malformed_payload"}
	case errors.Is(err, usecase.ErrRequiredDataMissing):
		return mappedError{HTTPStatus: http.StatusBadGateway, Code: "required_data_missing"}
	case errors.Is(err, usecase.ErrUpstreamUnreachable):
		return mappedError{HTTPStatus: http.StatusBadGateway, Code: "upstream_unreachable"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Code: "dependency_unavailable"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Code: "internal"}
	}
}
