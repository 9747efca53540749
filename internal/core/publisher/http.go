// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package publisher

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for publishers.
type Handler struct {
	service *Service
}

// NewHandler constructs a new publisher [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with publisher endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublishers)
	router.Post("/", handler.createPublisher)
	router.Get("/{id}", handler.getPublisher)
	router.Delete("/{id}", handler.deletePublisher)

	return router
}

// # Publisher Endpoints

/*
GET /api/v1/publishers.

Request:
  - q: string (Name search)
  - limit: int
  - page: int

Response:
  - 200: []Publisher: Paginated list
*/
func (handler *Handler) listPublishers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	publishers, total, err := handler.service.ListPublishers(request.Context(), Filter{Query: request.URL.Query().Get("q")}, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, publishers, params.Meta(total))
}

func (handler *Handler) getPublisher(writer http.ResponseWriter, request *http.Request) {
	publisher, err := handler.service.GetPublisher(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, publisher)
}

type createPublisherRequest struct {
	Name string `json:"name"`
}

/*
POST /api/v1/publishers.

Response:
  - 201: Publisher: Created publisher with its derived id
  - 400: Validation failure
  - 409: CONFLICT: Name already registered
*/
func (handler *Handler) createPublisher(writer http.ResponseWriter, request *http.Request) {
	var input createPublisherRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher := &Publisher{Name: input.Name}
	if err := handler.service.CreatePublisher(request.Context(), publisher); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, publisher)
}

func (handler *Handler) deletePublisher(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeletePublisher(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
