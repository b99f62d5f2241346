package catalog

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"

	"quickbite/internal/config"
	"quickbite/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectGetter is the subset of the S3 client used by the loader.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader implements Loader for reading catalogue documents from AWS S3.
type s3Loader struct {
	client objectGetter
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based catalogue loader. A custom endpoint and
// static credentials may be configured for S3-compatible stores such as MinIO.
func NewS3Loader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-catalog-loader").Logger()

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	// Load AWS configuration
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Str("endpoint", cfg.Endpoint).
		Msg("S3 loader initialised")

	return newS3Loader(client, cfg.Bucket, logger), nil
}

func newS3Loader(client objectGetter, bucket string, logger zerolog.Logger) *s3Loader {
	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Load reads a catalogue document from S3. The key parameter should be the full
// S3 key (including any prefix); its extension selects the format.
func (l *s3Loader) Load(ctx context.Context, key string) ([]model.Recipe, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("loading catalog from S3")

	format, gzipped, err := detectFormat(key)
	if err != nil {
		return nil, err
	}

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	var reader io.Reader = result.Body
	if gzipped {
		gzipReader, err := gzip.NewReader(result.Body)
		if err != nil {
			l.logger.Error().
				Err(err).
				Str("bucket", l.bucket).
				Str("key", key).
				Msg("failed to create gzip reader")
			return nil, fmt.Errorf("failed to create gzip reader for S3 object %s: %w", key, err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	recipes, err := Decode(reader, format)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("error reading catalog from S3")
		return nil, fmt.Errorf("error reading catalog from S3 %s: %w", key, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("recipes_loaded", len(recipes)).
		Msg("catalog loaded successfully from S3")

	return recipes, nil
}

// fallbackLoader tries S3 first, then falls back to the local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	s3Prefix   string
	logger     zerolog.Logger
	s3Enabled  bool
}

// NewFallbackLoader creates a loader that tries S3 first, then falls back to local file system.
// If s3Loader is nil, it will only use the file loader.
func NewFallbackLoader(s3Loader, fileLoader Loader, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		s3Prefix:   s3Prefix,
		s3Enabled:  s3Enabled,
		logger:     logger.With().Str("component", "fallback-loader").Logger(),
	}
}

// Load attempts S3 with the prefixed key, then the local path as given.
func (l *fallbackLoader) Load(ctx context.Context, source string) ([]model.Recipe, error) {
	if l.s3Enabled && l.s3Loader != nil {
		s3Key := l.s3Prefix + source

		recipes, err := l.s3Loader.Load(ctx, s3Key)
		if err == nil {
			return recipes, nil
		}

		// A cancelled load must not be retried locally.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		l.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Str("local_fallback", source).
			Msg("failed to load from S3, falling back to local file system")
	}

	return l.fileLoader.Load(ctx, source)
}
