package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/screenbattle/internal/db"
	"github.com/terraincognita07/screenbattle/internal/i18n"
	"github.com/terraincognita07/screenbattle/internal/services"
	"go.uber.org/zap"
)

type gameTestApp struct {
	app       *fiber.App
	store     *db.FileStore
	staticDir string
}

func newGameTestApp(t *testing.T) gameTestApp {
	t.Helper()

	root := t.TempDir()
	store := db.NewFileStore(filepath.Join(root, "db.json"))
	if err := db.EnsureInitialized(store, zap.NewNop()); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return newGameTestAppWithStore(t, store, root)
}

func newGameTestAppWithStore(t *testing.T, store *db.FileStore, root string) gameTestApp {
	t.Helper()

	staticDir := filepath.Join(root, "public")
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		t.Fatalf("create static dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>battle</html>"), 0o644); err != nil {
		t.Fatalf("write index.html: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log('battle')"), 0o644); err != nil {
		t.Fatalf("write app.js: %v", err)
	}

	queue := services.NewWriteQueue(store, zap.NewNop(), services.WriteQueueConfig{})
	queue.Start(context.Background())
	t.Cleanup(queue.Stop)

	game := services.NewGameService(store, queue, services.FixedWeek(1), zap.NewNop())

	i18nManager, err := i18n.NewEmbeddedManager("pt")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(game, store, i18nManager, zap.NewNop(), staticDir)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	return gameTestApp{app: app, store: store, staticDir: staticDir}
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	request.Header.Set("Accept-Language", "en")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(content, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(content), err)
	}
}

func readAPIError(t *testing.T, response *http.Response) map[string]string {
	t.Helper()
	payload := map[string]string{}
	decodeBody(t, response, &payload)
	return payload
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		content, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(content))
	}
}
