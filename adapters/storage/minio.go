package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain/repositories"
)

// MinioConfig configures an S3-compatible bucket for audio artifacts
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string // Optional key prefix, e.g. "audio/"
}

// MinioAudioStore keeps clips in an S3-compatible bucket. Lifecycle rules on the
// bucket, not this code, are expected to expire old objects.
type MinioAudioStore struct {
	client *minio.Client
	bucket string
	prefix string
	logger *zap.Logger
}

var _ repositories.AudioStore = (*MinioAudioStore)(nil)

func NewMinioAudioStore(ctx context.Context, config MinioConfig, logger *zap.Logger) (*MinioAudioStore, error) {
	if config.Endpoint == "" || config.Bucket == "" {
		return nil, errors.New("minio endpoint and bucket are required")
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
		Region: config.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{Region: config.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", config.Bucket, err)
		}
		logger.Info("Created audio bucket", zap.String("bucket", config.Bucket))
	}

	return &MinioAudioStore{
		client: client,
		bucket: config.Bucket,
		prefix: config.Prefix,
		logger: logger,
	}, nil
}

func (s *MinioAudioStore) Save(ctx context.Context, audio *repositories.SpeechAudio) (string, error) {
	if audio == nil || len(audio.Data) == 0 {
		return "", errors.New("audio cannot be empty")
	}

	id := uuid.NewString()
	key := s.key(id, audio.Format)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(audio.Data), int64(len(audio.Data)), minio.PutObjectOptions{
		ContentType:  audio.ContentType,
		UserMetadata: map[string]string{"created-at": time.Now().Format(time.RFC3339)},
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	s.logger.Debug("Stored audio object", zap.String("bucket", s.bucket), zap.String("key", key))
	return id, nil
}

func (s *MinioAudioStore) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, "", repositories.ErrAudioNotFound
	}

	// The format is not part of the id, so look for whichever extension was written
	key, err := s.find(ctx, id)
	if err != nil {
		return nil, "", err
	}

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", repositories.ErrAudioNotFound
		}
		return nil, "", fmt.Errorf("stat failed: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("download failed: %w", err)
	}
	return obj, info.ContentType, nil
}

func (s *MinioAudioStore) find(ctx context.Context, id string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix + id + "."}) {
		if object.Err != nil {
			return "", fmt.Errorf("list failed: %w", object.Err)
		}
		return object.Key, nil
	}
	return "", repositories.ErrAudioNotFound
}

func (s *MinioAudioStore) key(id, format string) string {
	if format == "" {
		format = "mp3"
	}
	return s.prefix + id + "." + format
}
