package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/seguroplus/polizas-api/internal/application/ports"
	"github.com/seguroplus/polizas-api/pkg/config"
)

var _ ports.FileStore = (*S3FileStore)(nil)

// S3FileStore almacén de archivos sobre S3 o compatible (MinIO vía Endpoint).
// Guarda adjuntos de plantillas y anexos; la lectura sale por URL firmada.
type S3FileStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3FileStore construye el almacén desde la configuración de storage.
// Con Endpoint definido apunta a un compatible (MinIO); si no, AWS.
func NewS3FileStore(ctx context.Context, cfg config.StorageConfig) (*S3FileStore, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("cargar config AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // MinIO y compatibles no soportan virtual-host
		}
	})

	return &S3FileStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// Upload sube un archivo bajo la ruta dada.
func (s *S3FileStore) Upload(ctx context.Context, path string, content []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("subir archivo %s: %w", path, err)
	}
	return nil
}

// SignedURL emite una URL de lectura temporal para un archivo ya subido.
func (s *S3FileStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	out, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("firmar URL de %s: %w", path, err)
	}
	return out.URL, nil
}
