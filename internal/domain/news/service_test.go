package news

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cityportal/internal/pkg/upload"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *Article) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Article), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Article), args.Error(1)
}

func (m *MockRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, a *Article) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, f Filters) ([]Article, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Article), args.Get(1).(int64), args.Error(2)
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	return NewService(repo, upload.NewIntake(t.TempDir()), "https://cdn.example.com")
}

func TestService_Create_NoImage(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ExistsBySlug", mock.Anything, "budget-vote-2026", "").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(t, repo)
	article, err := svc.Create(context.Background(), CreateArticleRequest{
		Title:   "Budget Vote 2026",
		Excerpt: "short",
		Content: "long",
		Date:    time.Now(),
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "budget-vote-2026", article.Slug)
	assert.NotEmpty(t, article.ID)
	assert.Nil(t, article.ImageURL)
	repo.AssertExpectations(t)
}

func TestService_Create_SlugCollisionGetsSuffix(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ExistsBySlug", mock.Anything, "budget-vote-2026", "").Return(true, nil)
	repo.On("ExistsBySlug", mock.Anything, mock.MatchedBy(func(s string) bool {
		return regexp.MustCompile(`^budget-vote-2026-[0-9a-f]{6}$`).MatchString(s)
	}), "").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(t, repo)
	article, err := svc.Create(context.Background(), CreateArticleRequest{
		Title: "Budget Vote 2026", Excerpt: "e", Content: "c", Date: time.Now(),
	}, nil)

	require.NoError(t, err)
	assert.NotEqual(t, "budget-vote-2026", article.Slug)
	assert.Regexp(t, `^budget-vote-2026-[0-9a-f]{6}$`, article.Slug)
}

func TestService_Create_WithImage(t *testing.T) {
	root := t.TempDir()
	tmpDir := filepath.Join(root, "tmp", "news")
	require.NoError(t, os.MkdirAll(tmpDir, 0o755))
	tmpFile := filepath.Join(tmpDir, "pic.jpg")
	require.NoError(t, os.WriteFile(tmpFile, []byte("jpeg"), 0o644))

	repo := new(MockRepository)
	repo.On("ExistsBySlug", mock.Anything, "with-image", "").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, upload.NewIntake(root), "")
	article, err := svc.Create(context.Background(), CreateArticleRequest{
		Title: "With Image", Excerpt: "e", Content: "c", Date: time.Now(),
	}, &upload.File{OriginalName: "pic.jpg", TempPath: tmpFile, Size: 4})

	require.NoError(t, err)
	require.NotNil(t, article.ImageURL)
	assert.Regexp(t, `^/uploads/news/`+article.ID+`/\d+\.jpg$`, *article.ImageURL)
	assert.NoFileExists(t, tmpFile)
}

func TestService_Create_RejectsBadImageType(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ExistsBySlug", mock.Anything, mock.Anything, "").Return(false, nil)

	svc := newTestService(t, repo)
	_, err := svc.Create(context.Background(), CreateArticleRequest{
		Title: "Bad", Excerpt: "e", Content: "c", Date: time.Now(),
	}, &upload.File{OriginalName: "virus.exe", Size: 10})

	assert.ErrorIs(t, err, upload.ErrUnsupportedFileType)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_List_Meta(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything, mock.Anything).Return([]Article{{ID: "1"}, {ID: "2"}}, int64(25), nil)

	svc := newTestService(t, repo)
	articles, meta, err := svc.List(context.Background(), SearchQuery{})

	require.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestService_ToResponse_CDNPrefix(t *testing.T) {
	svc := newTestService(t, new(MockRepository))
	img := "/uploads/news/abc/1.jpg"
	resp := svc.ToResponse(&Article{ID: "abc", ImageURL: &img})
	require.NotNil(t, resp.ImageURL)
	assert.Equal(t, "https://cdn.example.com/uploads/news/abc/1.jpg", *resp.ImageURL)

	respNoImg := svc.ToResponse(&Article{ID: "def"})
	assert.Nil(t, respNoImg.ImageURL)
}

func TestService_Update_TitleChangeReslugs(t *testing.T) {
	repo := new(MockRepository)
	existing := &Article{ID: "a1", Slug: "old-title", Title: "Old Title"}
	repo.On("GetByID", mock.Anything, "a1").Return(existing, nil)
	repo.On("ExistsBySlug", mock.Anything, "new-title", "a1").Return(false, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(t, repo)
	title := "New Title"
	article, err := svc.Update(context.Background(), "a1", UpdateArticleRequest{Title: &title}, nil)

	require.NoError(t, err)
	assert.Equal(t, "new-title", article.Slug)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "ghost").Return(nil, ErrArticleNotFound)

	svc := newTestService(t, repo)
	err := svc.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrArticleNotFound)
}
