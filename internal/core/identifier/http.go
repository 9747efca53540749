// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identifier exposes the deterministic id generator over HTTP.

Clients use it to predict the id an author, publisher or chapter will receive
before creating it, and to derive RFC 4122 name-based ids for hostnames, URLs
and OIDs. Nothing is persisted.
*/
package identifier

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/identity"
)

const maxValueLength = 2048

// Identifier is a derived name-based UUID.
type Identifier struct {
	Namespace identity.Namespace `json:"namespace"`
	Value     string             `json:"value"`
	ID        string             `json:"id"`
	Version   int                `json:"version"`
}

// # Handler Implementation

// Handler implements the HTTP layer for id derivation.
type Handler struct{}

// NewHandler constructs a new identifier [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns a [chi.Router] configured with identifier endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.derive)
	return router
}

/*
GET /api/v1/identifiers.

Request:
  - namespace: string (dns, url, oid, x500)
  - value: string (Hostname, URL, OID or canonical DN)

Response:
  - 200: Identifier: The derived UUIDv5
  - 400: VALIDATION_ERROR: Missing value or unknown namespace
  - 400: INVALID_INPUT_FORMAT: Value is malformed for the namespace
*/
func (handler *Handler) derive(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	value := query.Get("value")

	validator := &validate.Validator{}
	validator.Required("value", value).MaxLen("value", value, maxValueLength)
	namespace, err := identity.ParseNamespace(query.Get("namespace"))
	validator.Custom("namespace", err != nil, "Must be one of: dns, url, oid, x500")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := identity.ForNamespace(value, namespace)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidInputFormat) {
			respond.Error(writer, request, apperr.InvalidInputFormat(value, string(namespace), err))
			return
		}
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, Identifier{
		Namespace: namespace,
		Value:     value,
		ID:        id.String(),
		Version:   int(id.Version()),
	})
}
