package resource_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ortheo/internal/core/resource"
	"github.com/taibuivan/ortheo/internal/platform/apperr"
)

type stubRepository struct {
	created map[string]*resource.Input
}

func (repo *stubRepository) ListAll(context.Context, string, string) ([]*resource.Resource, error) {
	return nil, nil
}

func (repo *stubRepository) FindByID(_ context.Context, id, _, _ string) (*resource.Resource, error) {
	input, ok := repo.created[id]
	if !ok {
		return nil, apperr.NotFound("resource")
	}
	return &resource.Resource{ID: id, Title: input.Title, URL: input.URL, Format: input.Format}, nil
}

func (repo *stubRepository) Create(_ context.Context, id string, input *resource.Input) error {
	repo.created[id] = input
	return nil
}

func (repo *stubRepository) Update(context.Context, string, *resource.Input) error { return nil }
func (repo *stubRepository) Delete(context.Context, string) error                  { return nil }

func newService(repo resource.Repository) *resource.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return resource.NewService(repo, "fr", []string{"fr", "en"}, nil, logger)
}

/*
TestCreateResource_Valid verifies the happy path returns the stored
projection.
*/
func TestCreateResource_Valid(t *testing.T) {
	repo := &stubRepository{created: make(map[string]*resource.Input)}
	service := newService(repo)

	created, err := service.CreateResource(context.Background(), &resource.Input{
		Locale: "fr",
		Title:  "Grille d'observation du langage oral",
		URL:    "https://cdn.ortheo.app/grille-langage-oral.pdf",
		Format: resource.FormatPDF,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, resource.FormatPDF, created.Format)
}

/*
TestCreateResource_RejectsBadInput verifies URL and format preconditions
are enforced before any write.
*/
func TestCreateResource_RejectsBadInput(t *testing.T) {
	repo := &stubRepository{created: make(map[string]*resource.Input)}
	service := newService(repo)

	cases := []struct {
		name  string
		input *resource.Input
	}{
		{"relative url", &resource.Input{
			Locale: "fr", Title: "Grille", URL: "grille.pdf", Format: resource.FormatPDF,
		}},
		{"unknown format", &resource.Input{
			Locale: "fr", Title: "Grille", URL: "https://ortheo.app/g.pdf", Format: "docx",
		}},
		{"missing url", &resource.Input{
			Locale: "fr", Title: "Grille", Format: resource.FormatPDF,
		}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.CreateResource(context.Background(), testCase.input)
			require.Error(t, err)
			assert.Empty(t, repo.created)
		})
	}
}
