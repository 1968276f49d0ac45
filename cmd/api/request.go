package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/duartesilva/plantshop/internal/media"
)

const maxUploadBytes = 10 << 20

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

// formImage pulls the optional "image" part out of a multipart form.
// Returns nil when the caller sent no file.
func formImage(r *http.Request) (*media.File, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image upload: %w", err)
	}

	return &media.File{
		Reader:      file,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}
