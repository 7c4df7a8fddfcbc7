package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/cutsheet/internal/analyzer"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
	"github.com/nguyentantai21042004/cutsheet/internal/processor"
	"github.com/nguyentantai21042004/cutsheet/internal/subtitle"
)

const maxHistoryLimit = 500

var errMissingFile = errors.New("multipart field \"file\" is required")

func (s *Server) createEditList(c *gin.Context) {
	ctx := c.Request.Context()

	in, err := s.readInput(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.proc.Process(ctx, in)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, editListOutput{
		RequestID: res.RequestID,
		Filename:  res.Filename,
		Template:  res.Template,
		Document:  newDocumentOutput(res.Document),
		EditList:  res.EditList,
	})
}

func (s *Server) inspect(c *gin.Context) {
	in, err := s.readInput(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	doc, err := s.proc.Inspect(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newDocumentOutput(doc))
}

func (s *Server) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, templatesOutput{Templates: s.templates.List()})
}

func (s *Server) getTemplate(c *gin.Context) {
	name := c.Param("name")
	content := s.templates.Get(name)
	c.JSON(http.StatusOK, templateOutput{
		Name:    name,
		Content: content,
		Valid:   s.templates.Validate(content),
	})
}

func (s *Server) reloadTemplates(c *gin.Context) {
	if err := s.templates.Reload(); err != nil {
		s.logger.Error(c.Request.Context(), "Template reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, errorOutput{
			RequestID: logger.RequestID(c.Request.Context()),
			Kind:      "reload_failed",
			Message:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, templatesOutput{Templates: s.templates.List()})
}

func (s *Server) listHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusOK, historyOutput{Records: nil})
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, errorOutput{Kind: "invalid_request", Message: "limit must be a non-negative integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := s.history.List(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error(c.Request.Context(), "List history failed: %v", err)
		c.JSON(http.StatusInternalServerError, errorOutput{Kind: "history_failed", Message: "could not read history"})
		return
	}
	c.JSON(http.StatusOK, historyOutput{Records: records})
}

func (s *Server) getHealth(c *gin.Context) {
	out := healthOutput{Status: "ok"}
	if s.analyzer != nil {
		out.Cache = s.analyzer.CacheStats()
	}
	c.JSON(http.StatusOK, out)
}

// readInput reads the uploaded subtitle file and the optional form fields.
func (s *Server) readInput(c *gin.Context) (processor.Input, error) {
	limit := s.cfg.Limits.MaxFileSize

	fh, err := c.FormFile("file")
	if err != nil {
		return processor.Input{}, fmt.Errorf("%w: %v", errMissingFile, err)
	}
	if limit > 0 && fh.Size > limit {
		return processor.Input{}, fmt.Errorf("%w: %d bytes, limit %d", processor.ErrFileTooLarge, fh.Size, limit)
	}

	f, err := fh.Open()
	if err != nil {
		return processor.Input{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return processor.Input{}, fmt.Errorf("read upload: %w", err)
	}

	return processor.Input{
		Filename: fh.Filename,
		Data:     data,
		Template: c.PostForm("template"),
		Encoding: c.PostForm("encoding"),
	}, nil
}

// fail writes err as JSON. Analysis failures only expose the fixed user-facing message.
func (s *Server) fail(c *gin.Context, err error) {
	ctx := c.Request.Context()
	out := errorOutput{RequestID: logger.RequestID(ctx)}
	status := http.StatusBadRequest

	var ufe *subtitle.UnsupportedFormatError
	var de *subtitle.DecodeError
	switch {
	case errors.Is(err, errMissingFile):
		out.Kind, out.Message = "invalid_request", errMissingFile.Error()
	case errors.Is(err, processor.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
		out.Kind, out.Message = "file_too_large", err.Error()
	case errors.As(err, &ufe):
		status = http.StatusUnsupportedMediaType
		out.Kind, out.Message = "unsupported_format", ufe.Error()
	case errors.As(err, &de):
		status = http.StatusUnprocessableEntity
		out.Kind, out.Message = "decode_failed", de.Error()
	case analyzer.KindOf(err) != "":
		status = analysisStatus(analyzer.KindOf(err))
		out.Kind, out.Message = string(analyzer.KindOf(err)), analyzer.Message(err)
	default:
		out.Kind, out.Message = processor.ErrorKind(err), err.Error()
	}

	s.logger.Warn(ctx, "%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, out)
}

func analysisStatus(k analyzer.Kind) int {
	switch k {
	case analyzer.KindRateLimited, analyzer.KindRetriesExhausted:
		return http.StatusServiceUnavailable
	case analyzer.KindCanceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusBadGateway
	}
}
