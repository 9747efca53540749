package author

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the author endpoints on a router scoped to /authors.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAuthors)
	router.Post("/", handler.createAuthor)
	router.Get("/{id}", handler.getAuthor)
	router.Delete("/{id}", handler.deleteAuthor)
}

type createAuthorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	authors, total, err := handler.service.ListAuthors(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, authors, paginationParams.Meta(total))
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	author, err := handler.service.GetAuthor(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, author)
}

func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	var input createAuthorRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	author := &Author{FirstName: input.FirstName, LastName: input.LastName}
	if err := handler.service.CreateAuthor(request.Context(), author); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, author)
}

func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteAuthor(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
