// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/heroes/internal/platform/validate"
)

// Body kinds recognised by [ParseBody].
const (
	BodyJSON      = "application/json"
	BodyMultipart = "multipart/form-data"
	BodyForm      = "application/x-www-form-urlencoded"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ParseBody prepares request.Form (and request.MultipartForm) for reading.

JSON bodies are not parsed here; the returned media type tells the caller to
use [DecodeJSON] instead.

Returns:
  - string: The normalised media type of the body
  - error: validate.ErrInvalidForm if the body cannot be parsed
*/
func ParseBody(request *http.Request, maxMemory int64) (string, error) {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case BodyJSON:
		return mediaType, nil
	case BodyMultipart:
		if err := request.ParseMultipartForm(maxMemory); err != nil {
			return mediaType, validate.ErrInvalidForm
		}
	default:
		if err := request.ParseForm(); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return mediaType, validate.ErrInvalidForm
		}
	}

	return mediaType, nil
}

/*
IntID retrieves a named URL parameter and parses it as a positive integer.

Returns:
  - int: The parsed identifier
  - error: A validation error naming the parameter when it is not a positive integer
*/
func IntID(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}

	return id, nil
}
