package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"kafe-backend/internal/config"
	"kafe-backend/internal/database"
	"kafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // in-memory sqlite tek bağlantı ister
	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func newTableTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"success": false, "message": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false})
		},
	})
	app.Get("/generate-qr/:table", GenerateQRHandler(cfg))
	app.Get("/list-qr", ListQRHandler(cfg))
	app.Post("/api/tables", CreateTableHandler(cfg))
	app.Get("/api/tables", ListTablesHandler(cfg))
	app.Get("/api/tables/:number", GetTableHandler(cfg))
	app.Delete("/api/tables/:id", DeleteTableHandler(cfg))
	return app
}

func testTableConfig(t *testing.T) *config.Config {
	return &config.Config{
		UploadPath:    t.TempDir(),
		PublicBaseURL: "http://localhost:8080",
	}
}

func createTable(t *testing.T, app *fiber.App, number int) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/tables",
		bytes.NewBufferString(fmt.Sprintf(`{"number":%d}`, number)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateTableGeneratesQR(t *testing.T) {
	setupTestDB(t)
	cfg := testTableConfig(t)
	app := newTableTestApp(cfg)

	resp := createTable(t, app, 5)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body TableResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 5, body.Number)
	assert.Equal(t, models.TableStatusAvailable, body.Status)
	assert.Equal(t, "http://localhost:8080/uploads/qr_codes/table_5.png", body.QRCodeURL)

	_, err := os.Stat(filepath.Join(cfg.UploadPath, "qr_codes", "table_5.png"))
	require.NoError(t, err)
}

func TestCreateTableDuplicateNumber(t *testing.T) {
	setupTestDB(t)
	cfg := testTableConfig(t)
	app := newTableTestApp(cfg)

	resp := createTable(t, app, 5)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = createTable(t, app, 5)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Masa numarası zorunlu
	resp = createTable(t, app, 0)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegenerateQRKeepsSingleFile(t *testing.T) {
	setupTestDB(t)
	cfg := testTableConfig(t)
	app := newTableTestApp(cfg)

	resp := createTable(t, app, 7)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Tekrar üretim aynı dosyanın üstüne yazar
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/generate-qr/7", nil)
		qrResp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, qrResp.StatusCode)
	}

	entries, err := os.ReadDir(filepath.Join(cfg.UploadPath, "qr_codes"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetTable(t *testing.T) {
	setupTestDB(t)
	cfg := testTableConfig(t)
	app := newTableTestApp(cfg)

	resp := createTable(t, app, 3)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/tables/3", nil)
	getResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var body TableResponse
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&body))
	assert.Equal(t, 3, body.Number)

	req = httptest.NewRequest("GET", "/api/tables/99", nil)
	getResp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestDeleteTableRemovesQR(t *testing.T) {
	setupTestDB(t)
	cfg := testTableConfig(t)
	app := newTableTestApp(cfg)

	resp := createTable(t, app, 9)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body TableResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	qrPath := filepath.Join(cfg.UploadPath, "qr_codes", "table_9.png")
	_, err := os.Stat(qrPath)
	require.NoError(t, err)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/tables/%d", body.ID), nil)
	delResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, delResp.StatusCode)

	_, err = os.Stat(qrPath)
	assert.True(t, os.IsNotExist(err))

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/tables/%d", body.ID), nil)
	delResp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, delResp.StatusCode)
}

func TestListQR(t *testing.T) {
	setupTestDB(t)
	cfg := testTableConfig(t)
	app := newTableTestApp(cfg)

	require.Equal(t, http.StatusOK, createTable(t, app, 1).StatusCode)
	require.Equal(t, http.StatusOK, createTable(t, app, 2).StatusCode)

	req := httptest.NewRequest("GET", "/list-qr", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 2)
}
