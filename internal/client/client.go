// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the data layer used by heroctl to talk to the Heroes API.

Every call returns the decoded "data" member of the response envelope. Non-2xx
responses are returned as [*APIError] so callers can tell a missing hero
([IsNotFound]) from validation failures.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taibuivan/heroes/internal/core/hero"
)

// PerPage is the page size requested by the list view.
const PerPage = 5

// quoteEscaper escapes file names inside Content-Disposition, like mime/multipart does.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Client wraps the HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API at baseURL. A nil httpClient means [http.DefaultClient].
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Form holds the create/edit form values.
type Form struct {
	Nickname          string
	RealName          string
	OriginDescription string
	Superpowers       string
	CatchPhrase       string

	// Images are local file paths uploaded as "images" parts, in order.
	Images []string
}

// FieldError is a single validation failure reported by the API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}

	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, field.Field+": "+field.Message)
	}
	return fmt.Sprintf("api: %d %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.Status == http.StatusNotFound
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// FetchHeroes returns one page of heroes, optionally filtered by nickname.
func (client *Client) FetchHeroes(ctx context.Context, page int, search string) (*hero.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("perPage", strconv.Itoa(PerPage))
	if search != "" {
		query.Set("search", search)
	}

	result := &hero.Page{}
	if err := client.do(ctx, http.MethodGet, "/superhero?"+query.Encode(), nil, "", result); err != nil {
		return nil, err
	}
	return result, nil
}

// FetchHero returns a single hero.
func (client *Client) FetchHero(ctx context.Context, id int) (*hero.Hero, error) {
	result := &hero.Hero{}
	if err := client.do(ctx, http.MethodGet, heroPath(id), nil, "", result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateHero submits form as a new hero.
func (client *Client) CreateHero(ctx context.Context, form Form) (*hero.Hero, error) {
	return client.submit(ctx, http.MethodPost, "/superhero", form)
}

// UpdateHero replaces the text fields of hero id and appends form.Images.
func (client *Client) UpdateHero(ctx context.Context, id int, form Form) (*hero.Hero, error) {
	return client.submit(ctx, http.MethodPut, heroPath(id), form)
}

// DeleteHero removes hero id. Deleting an unknown id succeeds.
func (client *Client) DeleteHero(ctx context.Context, id int) error {
	return client.do(ctx, http.MethodDelete, heroPath(id), nil, "", nil)
}

func heroPath(id int) string {
	return "/superhero/" + strconv.Itoa(id)
}

func (client *Client) submit(ctx context.Context, method, path string, form Form) (*hero.Hero, error) {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return nil, err
	}

	result := &hero.Hero{}
	if err := client.do(ctx, method, path, body, contentType, result); err != nil {
		return nil, err
	}
	return result, nil
}

// encodeForm builds the multipart body, streaming each image file into it.
func encodeForm(form Form) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := [][2]string{
		{hero.FieldNickname, form.Nickname},
		{hero.FieldRealName, form.RealName},
		{hero.FieldOriginDescription, form.OriginDescription},
		{hero.FieldSuperpowers, form.Superpowers},
		{hero.FieldCatchPhrase, form.CatchPhrase},
	}
	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("client: write field %s: %w", field[0], err)
		}
	}

	for _, path := range form.Images {
		if err := writeImage(writer, path); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("client: close form: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

func writeImage(writer *multipart.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("client: open image: %w", err)
	}
	defer file.Close()

	name := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, hero.FieldImages, quoteEscaper.Replace(name)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("client: create image part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("client: copy image %s: %w", name, err)
	}
	return nil
}

// do sends the request and decodes the envelope data into target (if non-nil).
func (client *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, target any) error {
	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	var decoded envelope
	decodeErr := json.NewDecoder(response.Body).Decode(&decoded)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		apiError := &APIError{Status: response.StatusCode, Message: http.StatusText(response.StatusCode)}
		if decodeErr == nil {
			apiError.Message = decoded.Message
			_ = json.Unmarshal(decoded.Data, &apiError.Fields)
		}
		return apiError
	}

	if decodeErr != nil {
		return fmt.Errorf("client: decode response: %w", decodeErr)
	}
	if target == nil || len(decoded.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(decoded.Data, target); err != nil {
		return fmt.Errorf("client: decode data: %w", err)
	}
	return nil
}
