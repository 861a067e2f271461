package assessment

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
	router.Get("/", handler.listAssessments)
	router.Post("/", handler.createAssessment)
	router.Get("/{id}", handler.getAssessment)
	router.Put("/{id}", handler.updateAssessment)
	router.Delete("/{id}", handler.deleteAssessment)
}

func (handler *Handler) listAssessments(writer http.ResponseWriter, request *http.Request) {
	assessments, err := handler.service.ListAssessments(request.Context(), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The query service resolves and sorts the full catalogue; the window is
	// cut at the boundary.
	params := pagination.FromRequest(request)
	total := len(assessments)
	page := paginate(assessments, params)
	respond.Paginated(writer, page, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getAssessment(writer http.ResponseWriter, request *http.Request) {
	assessment, err := handler.service.GetAssessment(request.Context(),
		requestutil.ID(request, "id"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, assessment)
}

func (handler *Handler) createAssessment(writer http.ResponseWriter, request *http.Request) {
	input := &Input{}
	if err := requestutil.DecodeJSON(request, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Locale == "" {
		input.Locale = requestutil.Locale(request)
	}

	assessment, err := handler.service.CreateAssessment(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, assessment)
}

func (handler *Handler) updateAssessment(writer http.ResponseWriter, request *http.Request) {
	input := &Input{}
	if err := requestutil.DecodeJSON(request, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Locale == "" {
		input.Locale = requestutil.Locale(request)
	}

	assessment, err := handler.service.UpdateAssessment(request.Context(),
		requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, assessment)
}

func (handler *Handler) deleteAssessment(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteAssessment(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func paginate(assessments []*Assessment, params pagination.Params) []*Assessment {
	start := params.Offset()
	if start >= len(assessments) {
		return []*Assessment{}
	}
	end := start + params.Limit
	if end > len(assessments) {
		end = len(assessments)
	}
	return assessments[start:end]
}
