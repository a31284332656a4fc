package e2e_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/resize-cache/internal/adapter/handler"
	pgRepo "github.com/marcos-nsantos/resize-cache/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/database"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/server"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/storage"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/factory"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/resize"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/thumbnail"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
	apiBasePath    = "/api/v1"
	uploadPath     = "files"
	cacheDir       = "assets/images"
	errorHTML      = `<br><p class="preview-image broken-image">Broken image!</p>`
)

type TestApp struct {
	Server      *httptest.Server
	Pool        *pgxpool.Pool
	Container   testcontainers.Container
	FileRepo    *pgRepo.FileRepo
	SizeRepo    *pgRepo.ImageSizeRepo
	ProjectRoot string
	BaseURL     string
	httpClient  *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	fsys := afero.NewOsFs()
	err = database.RunMigrations(ctx, pool, fsys, getMigrationsPath())
	require.NoError(t, err)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, uploadPath), 0o755))

	logger, _ := zap.NewDevelopment()

	fileRepo := pgRepo.NewFileRepo(pool)
	sizeRepo := pgRepo.NewImageSizeRepo(pool)

	processor := storage.NewImageProcessor(storage.ProcessorConfig{JPEGQuality: 85}, logger)
	resizer := resize.NewResizer(fsys, processor, resize.Config{
		CacheDir: filepath.Join(root, cacheDir),
	}, logger)
	imageFactory := factory.NewService(resizer, fileRepo, sizeRepo, factory.Config{
		ProjectRoot:     root,
		ValidExtensions: []string{"jpg", "jpeg", "png", "gif"},
	}, logger)

	thumbnailSvc := thumbnail.NewService(fsys, imageFactory, nil, thumbnail.Config{
		Enabled:        true,
		ProjectRoot:    root,
		UploadPath:     uploadPath,
		CacheDir:       filepath.Join(root, cacheDir),
		ValidFileTypes: []string{"jpg", "jpeg", "png", "gif", "svg"},
	}, logger)

	router := server.NewRouter(server.RouterConfig{
		ThumbnailHandler: handler.NewThumbnailHandler(thumbnailSvc, errorHTML, logger),
		Logger:           logger,
		Environment:      "test",
	})

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:      ts,
		Pool:        pool,
		Container:   pgContainer,
		FileRepo:    fileRepo,
		SizeRepo:    sizeRepo,
		ProjectRoot: root,
		BaseURL:     ts.URL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Pool.Close()

	ctx := context.Background()
	if err := app.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// thumbnail requests a thumbnail for the project-relative path src.
func (app *TestApp) thumbnail(src string, params url.Values) (*http.Response, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("src", base64.StdEncoding.EncodeToString([]byte(src)))

	req, err := http.NewRequest(http.MethodGet, app.BaseURL+apiBasePath+"/thumbnails?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return app.httpClient.Do(req)
}

// writePNG stores a w x h image at the project-relative path rel. The left
// half is red and the right half blue.
func (app *TestApp) writePNG(t *testing.T, rel string, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if x >= w/2 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(app.ProjectRoot, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, img))
	return path
}

type thumbnailResponse struct {
	State     string         `json:"state"`
	Message   string         `json:"message"`
	Code      string         `json:"code"`
	Parameter map[string]any `json:"parameter"`
	Src       string         `json:"src"`
	ErrorHTML string         `json:"error_html"`
	Load      *string        `json:"load"`
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if dest != nil {
		err = json.Unmarshal(body, dest)
		require.NoError(t, err, "response body: %s", string(body))
	}
}

// getMigrationsPath returns the absolute path to the migrations directory
func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)
	return filepath.Join(testDir, "..", "..", "migrations")
}
