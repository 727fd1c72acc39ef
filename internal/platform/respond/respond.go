// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response (Success or Error) follows the same JSON envelope:
//
//	{"status": <int>, "message": <string>, "data": <payload, optional>}
//
// The envelope status is a logical code and does not always mirror the
// transport status (see [Deleted]). Clients must read the envelope field.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/heroes/internal/platform/apperr"
	"github.com/taibuivan/heroes/internal/platform/ctxutil"
)

// Envelope is the JSON envelope shared by every response.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard envelope.
func OK(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusOK, Envelope{Status: http.StatusOK, Message: message, Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard envelope.
func Created(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusCreated, Envelope{Status: http.StatusCreated, Message: message, Data: data})
}

// Deleted announces a logical 204 in the envelope.
//
// The transport code stays 200 because a real 204 cannot carry a body.
func Deleted(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, Envelope{Status: http.StatusNoContent, Message: message})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	envelope := Envelope{Status: appError.HTTPStatus, Message: appError.Message}
	if len(appError.Details) > 0 {
		envelope.Data = appError.Details
	}

	JSON(writer, appError.HTTPStatus, envelope)
}
