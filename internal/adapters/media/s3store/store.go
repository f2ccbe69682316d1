// Package s3store genera URLs prefirmadas para subir fotos de mascotas a un
// bucket compatible con S3 (MinIO en desarrollo).
package s3store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

type Config struct {
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

type Store struct {
	presign *s3.PresignClient
	cfg     Config
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO no resuelve buckets por subdominio
			o.UsePathStyle = true
		}
	})

	return &Store{
		presign: s3.NewPresignClient(client),
		cfg:     cfg,
	}, nil
}

// PresignUpload devuelve una URL PUT prefirmada para que el cliente suba el
// archivo directo al bucket, y la URL pública con la que queda accesible.
func (s *Store) PresignUpload(ctx context.Context, key, contentType string) (string, string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return req.URL, s.publicURL(key), nil
}

func (s *Store) publicURL(key string) string {
	base := strings.TrimSuffix(s.cfg.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.cfg.Bucket, s.cfg.Region)
	}
	return base + "/" + strings.TrimPrefix(key, "/")
}
