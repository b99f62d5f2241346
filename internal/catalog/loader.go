package catalog

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"

	"quickbite/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for catalogue files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a JSON or YAML catalogue file, optionally gzipped.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.Recipe, error) {
	l.logger.Info().Str("file", filePath).Msg("loading catalog file")

	format, gzipped, err := detectFormat(filePath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", filePath, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if gzipped {
		gzipReader, err := gzip.NewReader(file)
		if err != nil {
			l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	recipes, err := Decode(reader, format)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading catalog file")
		return nil, fmt.Errorf("error reading catalog file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("recipes_loaded", len(recipes)).
		Msg("catalog file loaded successfully")

	return recipes, nil
}
