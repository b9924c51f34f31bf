package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adilg123/gzdecomp/internal/config"
	"github.com/adilg123/gzdecomp/internal/gzip"
	"github.com/adilg123/gzdecomp/internal/sink"
	"github.com/adilg123/gzdecomp/internal/source"
)

const maxFileSize = 50 * 1024 * 1024 // 50MB

// DecompressRequest represents the decompression request payload.
type DecompressRequest struct {
	VerifyChecksum *bool `form:"verify_checksum,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse describes a completed decompression. HandleDecompress does
// not send it: a success returns the payload itself as the body, with
// Content-Disposition, Content-Length and X-Original-Name headers.
type SuccessResponse struct {
	OriginalSize     int    `json:"original_size"`
	DecompressedSize int    `json:"decompressed_size"`
	Filename         string `json:"filename"`
}

// HandleDecompress accepts an uploaded GZIP file and streams the
// decompressed payload back.
func HandleDecompress(c *gin.Context) {
	var req DecompressRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "File upload error",
			Code:    http.StatusBadRequest,
			Message: "No file provided or file upload failed",
		})
		return
	}
	defer file.Close()

	if header.Size > maxFileSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "File too large",
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Maximum file size is %d bytes", maxFileSize),
		})
		return
	}

	fileContent, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "File read error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
		return
	}

	opts := config.Default()
	if req.VerifyChecksum != nil {
		opts.VerifyChecksum = *req.VerifyChecksum
	}

	reader, err := gzip.NewReader(source.FromBytes(fileContent), gzip.Config{
		Config:         opts.DeflateConfig(),
		VerifyChecksum: opts.VerifyChecksum,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Malformed GZIP stream",
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}

	decompressed, err := sink.ReadAll(reader)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Decompression failed",
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("%s.out", getBaseFilename(header.Filename))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Length", strconv.Itoa(len(decompressed)))
	c.Header("X-Original-Name", reader.Header().Name)

	c.Data(http.StatusOK, "application/octet-stream", decompressed)
}

// HandleInfo provides information about the service.
func HandleInfo(c *gin.Context) {
	info := map[string]interface{}{
		"service": "gzdecomp",
		"version": "1.0.0",
		"formats": map[string]interface{}{
			"supported": []string{"gzip", "deflate"},
			"description": "Streaming RFC 1951 DEFLATE decoder and RFC 1952 GZIP " +
				"container decoder. Compression, ZLIB framing, random access and " +
				"multi-member GZIP streams are not supported.",
		},
		"limits": map[string]interface{}{
			"max_file_size": fmt.Sprintf("%d bytes (%.1f MB)", maxFileSize, float64(maxFileSize)/(1024*1024)),
		},
		"endpoints": map[string]interface{}{
			"decompress": "POST /decompress - Upload a .gz file for decompression",
			"info":       "GET /info - Get service information",
			"health":     "GET /health - Health check",
		},
	}

	c.JSON(http.StatusOK, info)
}

// HandleHealth provides a simple health check endpoint.
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "gzdecomp",
	})
}

func getBaseFilename(filename string) string {
	if filename == "" {
		return "file"
	}
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[:i]
		}
	}
	return filename
}
