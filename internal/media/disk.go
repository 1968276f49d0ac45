package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DiskStore keeps files under root/<bucket>/<name> and exposes them as
// <baseURL>/<bucket>/<name>.
type DiskStore struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

func NewDiskStore(root, baseURL string, logger *zap.Logger) *DiskStore {
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (s *DiskStore) Upload(ctx context.Context, r io.Reader, name, contentType, bucket string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create bucket directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	s.logger.Info("file stored",
		zap.String("bucket", bucket),
		zap.String("name", name),
		zap.String("content_type", contentType),
	)

	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, name), nil
}

// Delete removes the file behind fileURL. A missing or unparseable file
// is not an error: deletes run after the owning record is already gone
// and must not fail the operation that triggered them.
func (s *DiskStore) Delete(ctx context.Context, fileURL, bucket string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if fileURL == "" {
		return nil
	}

	name := path.Base(fileURL)
	if name == "." || name == "/" {
		s.logger.Warn("could not extract file name from URL", zap.String("url", fileURL))
		return nil
	}

	err := os.Remove(filepath.Join(s.root, bucket, name))
	if err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to delete file",
			zap.Error(err),
			zap.String("bucket", bucket),
			zap.String("name", name),
		)
	}
	return nil
}
