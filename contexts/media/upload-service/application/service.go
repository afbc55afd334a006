package application

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	domainerrors "github.com/16SULPHUR/courseify/contexts/media/upload-service/domain/errors"
	"github.com/16SULPHUR/courseify/contexts/media/upload-service/ports"
)

type Service struct {
	Host   ports.Host
	Logger *slog.Logger
}

// Upload pushes one file to the image host and returns its public URL. The
// stored object name is randomized; only the extension of the original
// filename is kept.
func (s Service) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if file == nil || strings.TrimSpace(filename) == "" {
		return "", domainerrors.ErrInvalidRequest
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	url, err := s.Host.Upload(ctx, name, file)
	if err != nil {
		return "", err
	}
	resolveLogger(s.Logger).Info("image uploaded",
		"event", "image_uploaded",
		"module", "media/upload-service",
		"layer", "application",
		"object", name,
	)
	return url, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
