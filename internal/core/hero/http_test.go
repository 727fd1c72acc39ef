// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hero_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/heroes/internal/core/hero"
	"github.com/taibuivan/heroes/internal/core/hero/herotest"
	"github.com/taibuivan/heroes/internal/platform/storage"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type harness struct {
	server    *httptest.Server
	tempDir   string
	uploadDir string
}

func newHarness(t *testing.T, persister storage.Persister) *harness {
	t.Helper()

	h := &harness{tempDir: t.TempDir(), uploadDir: t.TempDir()}
	if persister == nil {
		persister = storage.NewLocalPersister(h.uploadDir, "http://heroes.test")
	}

	service := hero.NewService(herotest.NewMemoryRepository(), discardLogger())
	handler := hero.NewHandler(service, storage.NewStager(h.tempDir), persister)

	router := chi.NewRouter()
	router.Route("/superhero", handler.RegisterRoutes)

	h.server = httptest.NewServer(router)
	t.Cleanup(h.server.Close)
	return h
}

// multipartBody encodes fields and image files ("name" → content) as multipart.
func multipartBody(t *testing.T, fields map[string]string, files ...string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, name := range files {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("bytes of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func (h *harness) do(t *testing.T, method, path string, body *bytes.Buffer, contentType string) (int, envelope) {
	t.Helper()

	if body == nil {
		body = &bytes.Buffer{}
	}
	request, err := http.NewRequest(method, h.server.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}

	response, err := h.server.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	var decoded envelope
	require.NoError(t, json.NewDecoder(response.Body).Decode(&decoded))
	return response.StatusCode, decoded
}

func supermanFields() map[string]string {
	return map[string]string{
		"nickname":           "Superman",
		"real_name":          "Clark Kent",
		"origin_description": "From Krypton",
		"superpowers":        "Flight",
		"catch_phrase":       "Up, up and away!",
	}
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

/*
TestHandler_Lifecycle creates, reads, updates with an image and deletes a hero.
*/
func TestHandler_Lifecycle(t *testing.T) {
	h := newHarness(t, nil)

	// Create without files.
	body, contentType := multipartBody(t, supermanFields())
	code, created := h.do(t, http.MethodPost, "/superhero", body, contentType)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, http.StatusCreated, created.Status)
	assert.Equal(t, "Successfully created superhero!", created.Message)

	var record hero.Hero
	require.NoError(t, json.Unmarshal(created.Data, &record))
	require.Positive(t, record.ID)
	assert.NotNil(t, record.Images)
	assert.Empty(t, record.Images)
	assert.JSONEq(t, `[]`, string(mustField(t, created.Data, "images")))

	// Read back.
	code, fetched := h.do(t, http.MethodGet, fmt.Sprintf("/superhero/%d", record.ID), nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, fmt.Sprintf("Got superhero with id: %d", record.ID), fetched.Message)
	assert.JSONEq(t, string(created.Data), string(fetched.Data))

	// Update with one image.
	body, contentType = multipartBody(t, supermanFields(), "cape.png")
	code, updated := h.do(t, http.MethodPut, fmt.Sprintf("/superhero/%d", record.ID), body, contentType)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Successfully updated superhero!", updated.Message)

	var after hero.Hero
	require.NoError(t, json.Unmarshal(updated.Data, &after))
	require.Len(t, after.Images, 1)
	assert.True(t, strings.HasPrefix(after.Images[0], "http://heroes.test/uploads/"))
	assert.True(t, strings.HasSuffix(after.Images[0], "-cape.png"))
	assert.Len(t, dirEntries(t, h.uploadDir), 1)
	assert.Empty(t, dirEntries(t, h.tempDir))

	// Delete, twice.
	for range 2 {
		code, deleted := h.do(t, http.MethodDelete, fmt.Sprintf("/superhero/%d", record.ID), nil, "")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, http.StatusNoContent, deleted.Status)
		assert.Equal(t, fmt.Sprintf("Successfully deleted superhero with id: %d", record.ID), deleted.Message)
	}

	code, missing := h.do(t, http.MethodGet, fmt.Sprintf("/superhero/%d", record.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, http.StatusNotFound, missing.Status)
	assert.Equal(t, fmt.Sprintf("Superhero with id %d not found", record.ID), missing.Message)
}

func mustField(t *testing.T, data json.RawMessage, key string) json.RawMessage {
	t.Helper()
	var object map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &object))
	return object[key]
}

/*
TestHandler_CreateValidation rejects a short nickname before storing any file.
*/
func TestHandler_CreateValidation(t *testing.T) {
	h := newHarness(t, nil)

	fields := supermanFields()
	fields["nickname"] = "Su"
	body, contentType := multipartBody(t, fields, "cape.png")

	code, response := h.do(t, http.MethodPost, "/superhero", body, contentType)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, http.StatusBadRequest, response.Status)
	assert.Equal(t, "Validation failed", response.Message)

	var details []fieldError
	require.NoError(t, json.Unmarshal(response.Data, &details))
	assert.Equal(t, []fieldError{{Field: "nickname", Message: "Minimum 3 characters"}}, details)

	assert.Empty(t, dirEntries(t, h.uploadDir))
	assert.Empty(t, dirEntries(t, h.tempDir))
}

// keyedFilesBody encodes fields and files, each part under its own form key.
func keyedFilesBody(t *testing.T, fields map[string]string, files ...[2]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file[0], file[1])
		require.NoError(t, err)
		_, err = part.Write([]byte("bytes of " + file[1]))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

/*
TestHandler_CreateFileKeys keeps upload order under one file key and rejects mixed keys.
*/
func TestHandler_CreateFileKeys(t *testing.T) {
	t.Run("bracket_key_in_order", func(t *testing.T) {
		h := newHarness(t, nil)
		body, contentType := keyedFilesBody(t, supermanFields(),
			[2]string{"images[]", "first.png"},
			[2]string{"images[]", "second.png"},
			[2]string{"images[]", "third.png"},
		)

		code, response := h.do(t, http.MethodPost, "/superhero", body, contentType)
		require.Equal(t, http.StatusCreated, code)

		var record hero.Hero
		require.NoError(t, json.Unmarshal(response.Data, &record))
		require.Len(t, record.Images, 3)
		assert.True(t, strings.HasSuffix(record.Images[0], "-first.png"))
		assert.True(t, strings.HasSuffix(record.Images[1], "-second.png"))
		assert.True(t, strings.HasSuffix(record.Images[2], "-third.png"))
	})

	t.Run("mixed_keys_rejected", func(t *testing.T) {
		h := newHarness(t, nil)
		body, contentType := keyedFilesBody(t, supermanFields(),
			[2]string{"images[]", "first.png"},
			[2]string{"images", "second.png"},
		)

		code, response := h.do(t, http.MethodPost, "/superhero", body, contentType)
		require.Equal(t, http.StatusBadRequest, code)

		var details []fieldError
		require.NoError(t, json.Unmarshal(response.Data, &details))
		require.Len(t, details, 1)
		assert.Equal(t, "images", details[0].Field)

		assert.Empty(t, dirEntries(t, h.uploadDir))
		assert.Empty(t, dirEntries(t, h.tempDir))
	})
}

/*
TestHandler_CreateBodies accepts urlencoded and JSON bodies with client image URIs.
*/
func TestHandler_CreateBodies(t *testing.T) {
	h := newHarness(t, nil)

	t.Run("urlencoded", func(t *testing.T) {
		form := url.Values{}
		for key, value := range supermanFields() {
			form.Set(key, value)
		}
		form.Add("images[]", "https://cdn.example.com/a.png")
		form.Add("images[]", "https://cdn.example.com/b.png")

		code, response := h.do(t, http.MethodPost, "/superhero", bytes.NewBufferString(form.Encode()), "application/x-www-form-urlencoded")
		require.Equal(t, http.StatusCreated, code)

		var record hero.Hero
		require.NoError(t, json.Unmarshal(response.Data, &record))
		assert.Equal(t, []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"}, record.Images)
	})

	t.Run("json", func(t *testing.T) {
		payload := `{"nickname":"Batman","real_name":"Bruce Wayne","origin_description":"Gotham","superpowers":"Money","catch_phrase":"I am the night","images":["https://cdn.example.com/bat.png"]}`

		code, response := h.do(t, http.MethodPost, "/superhero", bytes.NewBufferString(payload), "application/json")
		require.Equal(t, http.StatusCreated, code)

		var record hero.Hero
		require.NoError(t, json.Unmarshal(response.Data, &record))
		assert.Equal(t, "Batman", record.Nickname)
		assert.Equal(t, []string{"https://cdn.example.com/bat.png"}, record.Images)
	})

	t.Run("invalid_image_uri", func(t *testing.T) {
		payload := `{"nickname":"Batman","real_name":"Bruce Wayne","origin_description":"Gotham","superpowers":"Money","catch_phrase":"I am the night","images":["nope"]}`

		code, response := h.do(t, http.MethodPost, "/superhero", bytes.NewBufferString(payload), "application/json")
		require.Equal(t, http.StatusBadRequest, code)

		var details []fieldError
		require.NoError(t, json.Unmarshal(response.Data, &details))
		require.Len(t, details, 1)
		assert.Equal(t, "images[0]", details[0].Field)
	})

	t.Run("malformed_json", func(t *testing.T) {
		code, response := h.do(t, http.MethodPost, "/superhero", bytes.NewBufferString("{"), "application/json")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Invalid JSON payload", response.Message)
	})
}

/*
TestHandler_UpdateAppendsAfterClientImages puts uploaded files after client URIs.
*/
func TestHandler_UpdateAppendsAfterClientImages(t *testing.T) {
	h := newHarness(t, nil)

	fields := supermanFields()
	body, contentType := multipartBody(t, fields, "first.png")
	_, created := h.do(t, http.MethodPost, "/superhero", body, contentType)
	var record hero.Hero
	require.NoError(t, json.Unmarshal(created.Data, &record))
	require.Len(t, record.Images, 1)

	fields["images"] = "https://cdn.example.com/linked.png"
	body, contentType = multipartBody(t, fields, "second.png", "third.png")
	code, updated := h.do(t, http.MethodPut, fmt.Sprintf("/superhero/%d", record.ID), body, contentType)
	require.Equal(t, http.StatusOK, code)

	var after hero.Hero
	require.NoError(t, json.Unmarshal(updated.Data, &after))
	require.Len(t, after.Images, 4)
	assert.Equal(t, record.Images[0], after.Images[0])
	assert.Equal(t, "https://cdn.example.com/linked.png", after.Images[1])
	assert.True(t, strings.HasSuffix(after.Images[2], "-second.png"))
	assert.True(t, strings.HasSuffix(after.Images[3], "-third.png"))
}

/*
TestHandler_UpdateUnknownHero answers 404 without storing the upload.
*/
func TestHandler_UpdateUnknownHero(t *testing.T) {
	h := newHarness(t, nil)

	body, contentType := multipartBody(t, supermanFields(), "cape.png")
	code, response := h.do(t, http.MethodPut, "/superhero/77", body, contentType)

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Superhero with id 77 not found", response.Message)
	assert.Empty(t, dirEntries(t, h.uploadDir))
	assert.Empty(t, dirEntries(t, h.tempDir))
}

/*
TestHandler_InvalidID reports a validation error on the id parameter.
*/
func TestHandler_InvalidID(t *testing.T) {
	h := newHarness(t, nil)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			code, response := h.do(t, method, "/superhero/abc", nil, "")
			require.Equal(t, http.StatusBadRequest, code)

			var details []fieldError
			require.NoError(t, json.Unmarshal(response.Data, &details))
			require.Len(t, details, 1)
			assert.Equal(t, "id", details[0].Field)
		})
	}
}

/*
TestHandler_StorageFailure hides the cause and removes staged files.
*/
func TestHandler_StorageFailure(t *testing.T) {
	h := newHarness(t, &herotest.Persister{Err: errors.New("bucket unreachable")})

	body, contentType := multipartBody(t, supermanFields(), "cape.png")
	code, response := h.do(t, http.MethodPost, "/superhero", body, contentType)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "An unexpected error occurred", response.Message)
	assert.Empty(t, dirEntries(t, h.tempDir))

	_, list := h.do(t, http.MethodGet, "/superhero", nil, "")
	assert.Equal(t, "0", string(mustField(t, list.Data, "total")))
}

/*
TestHandler_List pages and searches through the catalog.
*/
func TestHandler_List(t *testing.T) {
	h := newHarness(t, &herotest.Persister{BaseURL: "https://cdn.example.com/heroes"})

	for _, nickname := range []string{"Superman", "Batman", "Supergirl", "Flash", "Aquaman", "Cyborg", "Superboy"} {
		fields := supermanFields()
		fields["nickname"] = nickname
		body, contentType := multipartBody(t, fields)
		code, _ := h.do(t, http.MethodPost, "/superhero", body, contentType)
		require.Equal(t, http.StatusCreated, code)
	}

	type listPage struct {
		Heroes     []hero.Hero `json:"heroes"`
		Page       int         `json:"page"`
		PerPage    int         `json:"perPage"`
		Total      int         `json:"total"`
		TotalPages int         `json:"totalPages"`
	}

	tests := []struct {
		name       string
		query      string
		nicknames  []string
		page       int
		perPage    int
		total      int
		totalPages int
	}{
		{"defaults", "", []string{"Superman", "Batman", "Supergirl", "Flash", "Aquaman"}, 1, 5, 7, 2},
		{"second_page", "?page=2", []string{"Cyborg", "Superboy"}, 2, 5, 7, 2},
		{"garbage_falls_back", "?page=abc&perPage=-3", []string{"Superman", "Batman", "Supergirl", "Flash", "Aquaman"}, 1, 5, 7, 2},
		{"search", "?search=SUPER&perPage=2", []string{"Superman", "Supergirl"}, 1, 2, 3, 2},
		{"search_no_match", "?search=joker", []string{}, 1, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, response := h.do(t, http.MethodGet, "/superhero"+tt.query, nil, "")
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, "Successfully got superheroes!", response.Message)

			var page listPage
			require.NoError(t, json.Unmarshal(response.Data, &page))

			nicknames := make([]string, 0, len(page.Heroes))
			for _, record := range page.Heroes {
				nicknames = append(nicknames, record.Nickname)
			}
			assert.Equal(t, tt.nicknames, nicknames)
			assert.Equal(t, tt.page, page.Page)
			assert.Equal(t, tt.perPage, page.PerPage)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.totalPages, page.TotalPages)
		})
	}
}
