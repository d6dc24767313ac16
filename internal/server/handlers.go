package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"salesdash/internal/exporter"
	"salesdash/internal/importer"
	"salesdash/internal/parser"
)

// handleUpload accepts a multipart spreadsheet, runs the parse pipeline and
// returns the preview. Nothing is persisted by this endpoint.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	if fileHeader.Size > int64(s.maxUploadMB)<<20 {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := importer.ParseOptions{
		Filename: fileHeader.Filename,
		Operator: c.PostForm("operator"),
	}
	if v := c.PostForm("manualTotal"); v != "" {
		total, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "manualTotal must be an integer"})
			return
		}
		opts.ManualTotal = &total
	}

	session, err := s.coordinator.Parse(data, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, parser.ErrUnknownFormat) || errors.Is(err, parser.ErrNoRows) || errors.Is(err, parser.ErrNoDate) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error(), "session": session.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// handleGetUpload returns a session's current state and preview.
func (s *Server) handleGetUpload(c *gin.Context) {
	session, ok := s.coordinator.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown upload session"})
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// handleConfirm resumes a previewed session into the save phase.
func (s *Server) handleConfirm(c *gin.Context) {
	var body struct {
		Acknowledge bool `json:"acknowledge"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.coordinator.Confirm(c.Param("id"), body.Acknowledge)
	if err != nil {
		if errors.Is(err, importer.ErrAcknowledgeRequired) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleListStores(c *gin.Context) {
	stores, err := s.store.ListStores()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (s *Server) handleListProducts(c *gin.Context) {
	products, err := s.store.ListProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// handleExport streams an Excel report of the facts in an inclusive date
// range.
func (s *Server) handleExport(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	for _, d := range []string{from, to} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be YYYY-MM-DD dates"})
			return
		}
	}

	f, err := s.exporter.Export(exporter.ExportOptions{From: from, To: to})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("salesdash_%s_%s.xlsx", from, to)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(c.Writer); err != nil {
		s.log.Error("export write failed", "err", err)
	}
}

func (s *Server) handleListAudit(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	logs, err := s.store.ListUploadLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}
