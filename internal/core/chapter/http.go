// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches chapter endpoints to the root API router.
// Chapter endpoints span both /books/{id}/... and /chapters/... prefixes.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/books/{bookID}/chapters", handler.ListChapters)
	api.Post("/books/{bookID}/chapters", handler.CreateChapter)

	api.Get("/chapters/{id}", handler.GetChapter)
	api.Put("/chapters/{id}", handler.UpdateChapter)
	api.Delete("/chapters/{id}", handler.DeleteChapter)
	api.Get("/chapters/{id}/tree", handler.GetChapterTree)
}

// # Chapter Retrieval

/*
GET /api/v1/books/{bookID}/chapters.

Description: Returns a paginated list of a book's chapters in reading order.

Request:
  - bookID: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Chapter: Paginated list
*/
func (handler *Handler) ListChapters(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	chapters, total, err := handler.service.ListChapters(request.Context(), requestutil.ID(request, "bookID"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, params.Meta(total))
}

// GET /api/v1/chapters/{id}.
func (handler *Handler) GetChapter(writer http.ResponseWriter, request *http.Request) {
	chapter, err := handler.service.GetChapter(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

/*
GET /api/v1/chapters/{id}/tree.

Description: Returns the chapter with every paragraph and sentence, in order.

Response:
  - 200: Chapter: With nested paragraphs and sentences
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) GetChapterTree(writer http.ResponseWriter, request *http.Request) {
	tree, err := handler.service.GetChapterTree(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tree)
}

// # Chapter Mutations

// createChapterRequest defines the inbound JSON schema for chapter creation.
//
// chapter_number is kept raw so that strings and out-of-range numbers reach
// ordinal resolution instead of failing JSON decoding.
type createChapterRequest struct {
	Title         string          `json:"title"`
	ChapterNumber json.RawMessage `json:"chapter_number"`
	Content       string          `json:"content"`
}

// updateChapterRequest defines the inbound JSON schema for partial updates.
type updateChapterRequest struct {
	Title         *string `json:"title"`
	ChapterNumber *int    `json:"chapter_number"`
	Content       *string `json:"content"`
}

// rawOrdinal renders a JSON number or string as the raw ordinal text.
func rawOrdinal(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	value := strings.TrimSpace(string(raw))
	if value == "null" {
		return ""
	}
	return value
}

/*
POST /api/v1/books/{bookID}/chapters.

Description: Creates a chapter and decomposes its content into paragraphs and
sentences.

Request:
  - bookID: string (UUID)
  - body: createChapterRequest

Response:
  - 201: Chapter: Created chapter with paragraphs
  - 400: Validation: Invalid payload
  - 404: ErrNotFound: Book not found
  - 409: CONFLICT / ORDINAL_CONFLICT
  - 500: PARTIAL_CASCADE_FAILURE
*/
func (handler *Handler) CreateChapter(writer http.ResponseWriter, request *http.Request) {
	var input createChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.CreateChapter(request.Context(), CreateInput{
		BookID:  requestutil.ID(request, "bookID"),
		Title:   input.Title,
		Number:  rawOrdinal(input.ChapterNumber),
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

/*
PUT /api/v1/chapters/{id}.

Description: Updates a chapter in place. Sending content rebuilds the tree.

Response:
  - 200: Chapter: Updated chapter
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) UpdateChapter(writer http.ResponseWriter, request *http.Request) {
	var input updateChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.UpdateChapter(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Title:   input.Title,
		Number:  input.ChapterNumber,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

// DELETE /api/v1/chapters/{id}.
func (handler *Handler) DeleteChapter(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteChapter(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
