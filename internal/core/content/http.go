// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for paragraphs and sentences.
type Handler struct {
	service *Service
}

// NewHandler constructs a new content [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// updateParagraphInput is the body accepted by PUT /paragraphs/{id}.
type updateParagraphInput struct {
	Content string `json:"content"`
}

// RegisterRoutes attaches paragraph and sentence endpoints to the root API router.
// Endpoints span both /chapters/{id}/... and /paragraphs/... prefixes.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/chapters/{id}/paragraphs", handler.listParagraphs)
	api.Get("/paragraphs/{id}", handler.getParagraph)
	api.Put("/paragraphs/{id}", handler.updateParagraph)
	api.Get("/paragraphs/{id}/sentences", handler.listSentences)
}

func (handler *Handler) listParagraphs(writer http.ResponseWriter, request *http.Request) {
	paragraphs, err := handler.service.ListParagraphs(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paragraphs)
}

func (handler *Handler) getParagraph(writer http.ResponseWriter, request *http.Request) {
	paragraph, err := handler.service.GetParagraph(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paragraph)
}

func (handler *Handler) updateParagraph(writer http.ResponseWriter, request *http.Request) {
	var input updateParagraphInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	paragraph, err := handler.service.UpdateParagraph(request.Context(), requestutil.ID(request, "id"), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paragraph)
}

func (handler *Handler) listSentences(writer http.ResponseWriter, request *http.Request) {
	sentences, err := handler.service.ListSentences(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sentences)
}
