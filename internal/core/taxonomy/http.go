package taxonomy

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
	router.Get("/domains", handler.listDomains)
	router.Get("/tags", handler.listTags)
	router.Get("/pathologies", handler.listPathologies)
	router.Get("/domains/{id}", handler.getDomain)
	router.Get("/tags/{id}", handler.getTag)
	router.Get("/pathologies/{id}", handler.getPathology)
	router.Delete("/domains/{id}", handler.deleteKind(KindDomain))
	router.Delete("/tags/{id}", handler.deleteKind(KindTag))
	router.Delete("/pathologies/{id}", handler.deleteKind(KindPathology))
}

func (handler *Handler) listDomains(writer http.ResponseWriter, request *http.Request) {
	domains, err := handler.service.ListDomains(request.Context(), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, domains)
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListTags(request.Context(), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) listPathologies(writer http.ResponseWriter, request *http.Request) {
	pathologies, err := handler.service.ListPathologies(request.Context(), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pathologies)
}

func (handler *Handler) getDomain(writer http.ResponseWriter, request *http.Request) {
	domain, err := handler.service.GetDomain(request.Context(), requestutil.ID(request, "id"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, domain)
}

func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	tag, err := handler.service.GetTag(request.Context(), requestutil.ID(request, "id"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}

func (handler *Handler) getPathology(writer http.ResponseWriter, request *http.Request) {
	pathology, err := handler.service.GetPathology(request.Context(), requestutil.ID(request, "id"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pathology)
}

func (handler *Handler) deleteKind(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id := requestutil.ID(request, "id")
		if err := handler.service.Delete(request.Context(), kind, id); err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.NoContent(writer)
	}
}
