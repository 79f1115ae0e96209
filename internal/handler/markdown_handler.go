package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type MarkdownHandler struct {
	dir string
}

func NewMarkdownHandler(dir string) *MarkdownHandler {
	return &MarkdownHandler{dir: dir}
}

func (h *MarkdownHandler) Get(c *gin.Context) {
	name := c.Query("file")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	rel := filepath.Clean(name)
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file path"})
		return
	}

	path := filepath.Join(h.dir, rel)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	body, err := os.ReadFile(path)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
