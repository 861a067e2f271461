package tool

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
	router.Get("/", handler.listTools)
	router.Post("/", handler.createTool)
	router.Get("/{id}", handler.getTool)
	router.Put("/{id}", handler.updateTool)
	router.Delete("/{id}", handler.deleteTool)
}

func (handler *Handler) listTools(writer http.ResponseWriter, request *http.Request) {
	tools, err := handler.service.ListTools(request.Context(), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	total := len(tools)
	page := paginate(tools, params)
	respond.Paginated(writer, page, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getTool(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.GetTool(request.Context(),
		requestutil.ID(request, "id"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) createTool(writer http.ResponseWriter, request *http.Request) {
	input := &Input{}
	if err := requestutil.DecodeJSON(request, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Locale == "" {
		input.Locale = requestutil.Locale(request)
	}

	item, err := handler.service.CreateTool(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

func (handler *Handler) updateTool(writer http.ResponseWriter, request *http.Request) {
	input := &Input{}
	if err := requestutil.DecodeJSON(request, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Locale == "" {
		input.Locale = requestutil.Locale(request)
	}

	item, err := handler.service.UpdateTool(request.Context(),
		requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) deleteTool(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteTool(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func paginate(tools []*Tool, params pagination.Params) []*Tool {
	start := params.Offset()
	if start >= len(tools) {
		return []*Tool{}
	}
	end := start + params.Limit
	if end > len(tools) {
		end = len(tools)
	}
	return tools[start:end]
}
