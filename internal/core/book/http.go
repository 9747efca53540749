// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for books.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches book endpoints to the root API router.
//
// Chapter collections live under /books/{bookID}/chapters, so book routes
// share the {bookID} segment instead of being mounted as a sub-router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/books", handler.listBooks)
	api.Post("/books", handler.createBook)
	api.Get("/books/{bookID}", handler.getBook)
	api.Delete("/books/{bookID}", handler.deleteBook)
}

// # Book Endpoints

/*
GET /api/v1/books.

Request:
  - q: string (Title search)
  - author_id: string
  - publisher_id: string
  - limit: int
  - page: int

Response:
  - 200: []Book: Paginated list of books
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Query:       query.Get("q"),
		AuthorID:    query.Get("author_id"),
		PublisherID: query.Get("publisher_id"),
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, params.Meta(total))
}

/*
GET /api/v1/books/{bookID}.

Request:
  - bookID: string (UUID or Slug)

Response:
  - 200: Book: Success
  - 404: NOT_FOUND: Book not found
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetBook(request.Context(), requestutil.ID(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

// createBookRequest defines the inbound JSON schema for book creation.
type createBookRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	AuthorID    *string `json:"author_id"`
	PublisherID *string `json:"publisher_id"`
}

/*
POST /api/v1/books.

Description: Slugs are derived from the title when omitted.

Response:
  - 201: Book: Created book
  - 400: VALIDATION_ERROR: Invalid input or unknown author/publisher
  - 409: CONFLICT: Slug already taken
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input createBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book := &Book{
		Title:       input.Title,
		Slug:        input.Slug,
		AuthorID:    input.AuthorID,
		PublisherID: input.PublisherID,
	}

	if err := handler.service.CreateBook(request.Context(), book); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

/*
DELETE /api/v1/books/{bookID}.

Description: Cascades to the book's chapters and their content.
*/
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBook(request.Context(), requestutil.ID(request, "bookID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
