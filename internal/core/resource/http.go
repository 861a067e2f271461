package resource

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/ortheo/internal/platform/request"
	"github.com/taibuivan/ortheo/internal/platform/respond"
	"github.com/taibuivan/ortheo/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listResources)
	router.Post("/", handler.createResource)
	router.Get("/{id}", handler.getResource)
	router.Put("/{id}", handler.updateResource)
	router.Delete("/{id}", handler.deleteResource)
}

func (handler *Handler) listResources(writer http.ResponseWriter, request *http.Request) {
	resources, err := handler.service.ListResources(request.Context(), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	total := len(resources)
	page := paginate(resources, params)
	respond.Paginated(writer, page, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getResource(writer http.ResponseWriter, request *http.Request) {
	res, err := handler.service.GetResource(request.Context(),
		requestutil.ID(request, "id"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, res)
}

func (handler *Handler) createResource(writer http.ResponseWriter, request *http.Request) {
	input := &Input{}
	if err := requestutil.DecodeJSON(request, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Locale == "" {
		input.Locale = requestutil.Locale(request)
	}

	res, err := handler.service.CreateResource(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, res)
}

func (handler *Handler) updateResource(writer http.ResponseWriter, request *http.Request) {
	input := &Input{}
	if err := requestutil.DecodeJSON(request, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Locale == "" {
		input.Locale = requestutil.Locale(request)
	}

	res, err := handler.service.UpdateResource(request.Context(),
		requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, res)
}

func (handler *Handler) deleteResource(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteResource(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func paginate(resources []*Resource, params pagination.Params) []*Resource {
	start := params.Offset()
	if start >= len(resources) {
		return []*Resource{}
	}
	end := start + params.Limit
	if end > len(resources) {
		end = len(resources)
	}
	return resources[start:end]
}
