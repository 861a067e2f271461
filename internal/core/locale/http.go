package locale

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/ortheo/internal/platform/request"
	"github.com/taibuivan/ortheo/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listLocales)
	router.Get("/{code}", handler.getLocale)
}

func (handler *Handler) listLocales(writer http.ResponseWriter, request *http.Request) {
	locales, err := handler.service.ListLocales(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, locales)
}

func (handler *Handler) getLocale(writer http.ResponseWriter, request *http.Request) {
	l, err := handler.service.GetLocale(request.Context(), requestutil.Param(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, l)
}
