package tool_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ortheo/internal/core/tool"
	"github.com/taibuivan/ortheo/internal/platform/apperr"
)

type stubRepository struct {
	created map[string]*tool.Input
}

func (repo *stubRepository) ListAll(context.Context, string, string) ([]*tool.Tool, error) {
	return nil, nil
}

func (repo *stubRepository) FindByID(_ context.Context, id, _, _ string) (*tool.Tool, error) {
	input, ok := repo.created[id]
	if !ok {
		return nil, apperr.NotFound("tool")
	}
	return &tool.Tool{ID: id, Name: input.Name, URL: input.URL}, nil
}

func (repo *stubRepository) Create(_ context.Context, id string, input *tool.Input) error {
	repo.created[id] = input
	return nil
}

func (repo *stubRepository) Update(context.Context, string, *tool.Input) error { return nil }
func (repo *stubRepository) Delete(context.Context, string) error              { return nil }

func newService(repo tool.Repository) *tool.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return tool.NewService(repo, "fr", []string{"fr", "en"}, nil, logger)
}

/*
TestCreateTool_Valid verifies the happy path returns the stored projection.
*/
func TestCreateTool_Valid(t *testing.T) {
	repo := &stubRepository{created: make(map[string]*tool.Input)}
	service := newService(repo)

	created, err := service.CreateTool(context.Background(), &tool.Input{
		Locale: "fr",
		Name:   "Chronomètre de débit de parole",
		URL:    "https://tools.ortheo.app/chronometre",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Chronomètre de débit de parole", created.Name)
}

/*
TestCreateTool_RejectsBadInput verifies name, locale, and URL preconditions
are enforced before any write.
*/
func TestCreateTool_RejectsBadInput(t *testing.T) {
	repo := &stubRepository{created: make(map[string]*tool.Input)}
	service := newService(repo)

	cases := []struct {
		name  string
		input *tool.Input
	}{
		{"relative url", &tool.Input{
			Locale: "fr", Name: "Chronomètre", URL: "chronometre",
		}},
		{"missing url", &tool.Input{
			Locale: "fr", Name: "Chronomètre",
		}},
		{"unsupported locale", &tool.Input{
			Locale: "de", Name: "Chronomètre", URL: "https://tools.ortheo.app/chronometre",
		}},
		{"missing name", &tool.Input{
			Locale: "fr", URL: "https://tools.ortheo.app/chronometre",
		}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.CreateTool(context.Background(), testCase.input)
			require.Error(t, err)
			assert.True(t, apperr.IsAppError(err))
			assert.Empty(t, repo.created)
		})
	}
}
