package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	huffman "github.com/jba/huffpack"
	"github.com/jba/huffpack/internal/logger"
	"github.com/jba/huffpack/internal/service"
)

type CodecHandler struct {
	svc     *service.CodecService
	maxBody int64
	logger  logger.Logger
}

func NewCodecHandler(s *service.CodecService, maxBody int64, l logger.Logger) *CodecHandler {
	return &CodecHandler{svc: s, maxBody: maxBody, logger: l}
}

func (h *CodecHandler) Encode(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	out, err := h.svc.Encode(body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", out)
}

func (h *CodecHandler) Decode(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	out, err := h.svc.Decode(body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", out)
}

func (h *CodecHandler) Inspect(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	in, err := h.svc.Inspect(body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (h *CodecHandler) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return body, true
}

func (h *CodecHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, huffman.ErrEmptyInput),
		errors.Is(err, huffman.ErrUnsupportedAlphabetSize),
		errors.Is(err, huffman.ErrMalformedContainer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	default:
		h.logger.Errorf("%s %s: %+v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
