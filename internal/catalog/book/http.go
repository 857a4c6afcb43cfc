// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
	"github.com/taibuivan/inkwell/pkg/pointer"
)

// Handler implements book endpoints.
type Handler struct {
	bookService   *Service
	authenticator middleware.PrincipalAuthenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator middleware.PrincipalAuthenticator) *Handler {
	return &Handler{bookService: service, authenticator: authenticator}
}

// Routes returns the book router, mounted at /books.
//
// # Endpoints
//   - GET    /authors/{id} : Public list of an author's books.
//   - POST   /             : Create (writer, publisher user or publisher house).
//   - PUT    /{id}         : Owner or promoted publisher.
//   - DELETE /{id}         : Owner or promoted publisher.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/authors/{id}", handler.listByAuthor)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(handler.authenticator))

		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type bookRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	IsFree      *bool    `json:"is_free"`
	Price       *float64 `json:"price"`
	CoverURL    *string  `json:"cover_url"`
}

// decodeBook reads and validates a book payload. is_free defaults to true.
func decodeBook(request *http.Request) (Input, error) {
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return Input{}, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 255)
	if input.CoverURL != nil {
		validator.MaxLen(FieldCoverURL, *input.CoverURL, 255)
	}
	if err := validator.Err(); err != nil {
		return Input{}, err
	}

	if input.IsFree == nil {
		input.IsFree = pointer.To(true)
	}

	return Input{
		Title:       input.Title,
		Description: input.Description,
		IsFree:      *input.IsFree,
		Price:       input.Price,
		CoverURL:    input.CoverURL,
	}, nil
}

// GET /api/v1/books/authors/{id}
func (handler *Handler) listByAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, meta, err := handler.bookService.ListByAuthor(request.Context(), authorID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, meta)
}

// POST /api/v1/books
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeBook(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.bookService.Create(request.Context(), principal, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, book)
}

// PUT /api/v1/books/{id}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeBook(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.bookService.Update(request.Context(), principal, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

// DELETE /api/v1/books/{id}
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.bookService.Delete(request.Context(), principal, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
