package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"firemonitor/internal/config"
	"firemonitor/internal/logger"
)

type imageInfo struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// ImagesHandler lists the stored capture files, newest first.
func ImagesHandler(cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := os.ReadDir(cfg.ImageDirectory)
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: []imageInfo{}, Message: "image directory empty"}, logger)
			return
		}
		if err != nil {
			logger.Error("Error reading image directory: %v", err)
			writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "failed to read image directory"}, logger)
			return
		}

		type fileWithTime struct {
			name    string
			size    int64
			modTime time.Time
		}

		var files []fileWithTime
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".jpg") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			files = append(files, fileWithTime{name: entry.Name(), size: info.Size(), modTime: info.ModTime()})
		}

		sort.Slice(files, func(i, j int) bool {
			return files[i].modTime.After(files[j].modTime)
		})
		if len(files) > cfg.ImageListLimit {
			files = files[:cfg.ImageListLimit]
		}

		images := make([]imageInfo, 0, len(files))
		for _, file := range files {
			images = append(images, imageInfo{
				Filename: file.name,
				Path:     "/images/" + file.name,
				Size:     file.size,
				Modified: file.modTime.UTC().Format(time.RFC3339),
			})
		}

		writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: images}, logger)
	}
}

// ImageFileHandler serves a stored capture, 404ing outside the image dir.
func ImageFileHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Base(r.URL.Path)
		path := filepath.Join(cfg.ImageDirectory, name)

		if _, err := os.Stat(path); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	}
}
