// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hero

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/heroes/internal/platform/constants"
	requestutil "github.com/taibuivan/heroes/internal/platform/request"
	"github.com/taibuivan/heroes/internal/platform/respond"
	"github.com/taibuivan/heroes/internal/platform/storage"
	"github.com/taibuivan/heroes/internal/platform/validate"
	"github.com/taibuivan/heroes/pkg/pagination"
)

// imageFields are the form keys accepted for images (text URIs and files).
var imageFields = []string{FieldImages, FieldImages + "[]"}

// # Handler Implementation

// Handler implements the HTTP layer for the superhero catalog.
type Handler struct {
	service   *Service
	stager    *storage.Stager
	persister storage.Persister
}

// NewHandler constructs a new hero [Handler].
//
// Uploaded files are staged by stager and made permanent by persister.
func NewHandler(service *Service, stager *storage.Stager, persister storage.Persister) *Handler {
	return &Handler{
		service:   service,
		stager:    stager,
		persister: persister,
	}
}

// RegisterRoutes attaches the catalog endpoints to router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listHeroes)
	router.Get("/{id}", handler.getHero)
	router.Post("/", handler.createHero)
	router.Put("/{id}", handler.updateHero)
	router.Delete("/{id}", handler.deleteHero)
}

// # Hero Endpoints

/*
GET /superhero.

Description: Lists heroes ordered by id.

Request:
  - page: int (default 1)
  - perPage: int (default 5)
  - search: string (case-insensitive nickname substring)

Response:
  - 200: Page: heroes plus pagination metadata
*/
func (handler *Handler) listHeroes(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Search: request.URL.Query().Get("search")}

	page, err := handler.service.ListHeroes(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Successfully got superheroes!", page)
}

/*
GET /superhero/{id}.

Response:
  - 200: Hero
  - 400: Non-numeric id
  - 404: Hero not found
*/
func (handler *Handler) getHero(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	hero, err := handler.service.GetHero(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fmt.Sprintf("Got superhero with id: %d", id), hero)
}

/*
POST /superhero.

Description: Creates a hero. Accepts multipart (fields plus files under
"images" or "images[]"), urlencoded or JSON bodies.

Response:
  - 201: Hero: Created record
  - 400: Validation failures, nothing is stored
  - 500: Storage failure
*/
func (handler *Handler) createHero(writer http.ResponseWriter, request *http.Request) {
	input, files, err := decodeHero(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := Validate(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	uploaded, err := handler.upload(request.Context(), files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.Images = append(input.Images, uploaded...)

	if err := handler.service.CreateHero(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Successfully created superhero!", input)
}

/*
PUT /superhero/{id}.

Description: Replaces the text fields and appends new images (client URIs
first, then uploaded files in upload order) to the stored list.

Response:
  - 200: Hero: Updated record
  - 400: Validation failures
  - 404: Hero not found, no file is stored
*/
func (handler *Handler) updateHero(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, files, err := decodeHero(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := Validate(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if len(files) > 0 {
		if _, err := handler.service.GetHero(request.Context(), id); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	uploaded, err := handler.upload(request.Context(), files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.Images = append(input.Images, uploaded...)

	if err := handler.service.UpdateHero(request.Context(), id, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Successfully updated superhero!", input)
}

/*
DELETE /superhero/{id}.

Response:
  - 200: Envelope announcing a logical 204, also for unknown ids
*/
func (handler *Handler) deleteHero(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteHero(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer, fmt.Sprintf("Successfully deleted superhero with id: %d", id))
}

// # Body Decoding

// decodeHero reads the writable fields and the uploaded image files of a request.
func decodeHero(request *http.Request) (*Hero, []*multipart.FileHeader, error) {
	mediaType, err := requestutil.ParseBody(request, constants.MaxUploadMemory)
	if err != nil {
		return nil, nil, err
	}

	if mediaType == requestutil.BodyJSON {
		input := &Hero{}
		if err := requestutil.DecodeJSON(request, input); err != nil {
			return nil, nil, err
		}
		input.ID = 0
		return input, nil, nil
	}

	form := request.PostForm
	input := &Hero{
		Nickname:          form.Get(FieldNickname),
		RealName:          form.Get(FieldRealName),
		OriginDescription: form.Get(FieldOriginDescription),
		Superpowers:       form.Get(FieldSuperpowers),
		CatchPhrase:       form.Get(FieldCatchPhrase),
	}

	// Parts are kept in arrival order within one key only, so files must
	// all use the same key.
	var files []*multipart.FileHeader
	fileKeys := 0
	for _, field := range imageFields {
		for _, value := range form[field] {
			if strings.TrimSpace(value) != "" {
				input.Images = append(input.Images, value)
			}
		}
		if request.MultipartForm != nil && len(request.MultipartForm.File[field]) > 0 {
			fileKeys++
			files = append(files, request.MultipartForm.File[field]...)
		}
	}
	if fileKeys > 1 {
		return nil, nil, validate.RequiredError(FieldImages, "Upload files under either images or images[], not both")
	}

	return input, files, nil
}

// upload stages files and persists them, returning their URLs in upload order.
//
// Staged copies that were not moved are removed before returning.
func (handler *Handler) upload(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	staged, err := handler.stager.Stage(files)
	if err != nil {
		return nil, err
	}
	defer storage.Discard(staged)

	return storage.PersistAll(ctx, handler.persister, staged)
}
