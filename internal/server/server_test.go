package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"salesdash/internal/config"
	"salesdash/internal/log"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Data.DataDir = t.TempDir()
	cfg.Server.DevMode = true

	s, err := NewServer(cfg, log.New(false))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func salesWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Samkaup_Dagssala_Birgdir")
	cells := map[string]interface{}{
		"A1": "Dagssala og birgðir",
		"B2": "5.8.2025",
		"A3": "Verslun", "B3": "Undirkeðja", "C3": "Vörunúmer", "D3": "Vöruheiti", "E3": "Magn",
		"A4": "Akureyri", "B4": "Kjörbúð", "C4": "HHLL001", "D4": "Lemon Lime", "E4": 5,
		"A5": "Samtals", "E5": 5,
	}
	for cell, v := range cells {
		if err := f.SetCellValue("Samkaup_Dagssala_Birgdir", cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.WriteField("operator", "anna"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func TestUploadConfirmExportFlow(t *testing.T) {
	s := testServer(t)

	body, contentType := multipartUpload(t, "dagssala.xlsx", salesWorkbook(t))
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}
	var session struct {
		ID     string `json:"id"`
		State  string `json:"state"`
		Result struct {
			DetectedFormat string `json:"detectedFormat"`
			TotalBoxes     int    `json:"totalBoxes"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.State != "preview" || session.Result.DetectedFormat != "samkaup" {
		t.Fatalf("session: %+v", session)
	}

	req = httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/uploads/%s/confirm", session.ID), bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm status = %d: %s", rec.Code, rec.Body.String())
	}

	// Exactly one audit record after the save.
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/audit", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("audit status = %d", rec.Code)
	}
	var logs []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &logs); err != nil || len(logs) != 1 {
		t.Fatalf("audit: %v, %d records", err, len(logs))
	}

	// The saved day exports as a workbook.
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/export?from=2025-08-05&to=2025-08-05", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d: %s", rec.Code, rec.Body.String())
	}
	exported, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer exported.Close()
	rows, err := exported.GetRows("Yfirlit")
	if err != nil || len(rows) < 3 {
		t.Fatalf("exported overview: %v, %d rows", err, len(rows))
	}
}

func TestUploadRejectsUnrecognizedWorkbook(t *testing.T) {
	s := testServer(t)

	f := excelize.NewFile()
	_ = f.SetCellValue("Sheet1", "A1", "Óþekkt skjal")
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	body, contentType := multipartUpload(t, "annad.xlsx", buf.Bytes())
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestNewServerFailsOnUnusableDataDir(t *testing.T) {
	// A regular file where the data directory should be makes both the
	// directory preparation and the SQLite open fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Data.DataDir = filepath.Join(blocker, "data")

	if _, err := NewServer(cfg, log.New(false)); err == nil {
		t.Fatalf("expected error for unusable data directory")
	}
}

func TestExportValidatesDates(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export?from=05.08.2025&to=x", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
