package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/ortheo/internal/platform/request"
	"github.com/taibuivan/ortheo/internal/platform/respond"
	"github.com/taibuivan/ortheo/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.buildIndex)
}

func (handler *Handler) buildIndex(writer http.ResponseWriter, request *http.Request) {
	index, err := handler.service.BuildIndex(request.Context(), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	domains := query.StringSlice(request.URL.Query().Get("domains"))
	respond.OK(writer, FilterByDomains(index, domains))
}
