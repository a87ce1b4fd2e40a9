package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config acceso a un bucket S3 o compatible (R2, MinIO).
type S3Config struct {
	Bucket    string // bucket por defecto para claves sin "s3://bucket/"
	Endpoint  string // vacío = AWS
	Region    string
	AccessKey string
	SecretKey string
}

// S3Source lee assets de "s3://bucket/key" o de una clave del bucket por defecto.
type S3Source struct {
	client *s3.Client
	bucket string
}

// NewS3Source construye el cliente. Sin AccessKey se usa la cadena de credenciales
// por defecto del SDK.
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("assets: configurar s3: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Source{client: client, bucket: cfg.Bucket}, nil
}

// Fetch implementa Source.
func (s *S3Source) Fetch(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := s.locate(location)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("assets: s3 get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	return readLimited(out.Body)
}

func (s *S3Source) locate(location string) (bucket, key string, err error) {
	return ParseS3Location(location, s.bucket)
}

// ParseS3Location separa "s3://bucket/key". Una clave sin esquema usa defaultBucket.
func ParseS3Location(location, defaultBucket string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		bucket, key = defaultBucket, strings.TrimLeft(location, "/")
	} else {
		bucket, key, _ = strings.Cut(rest, "/")
	}
	if bucket == "" || key == "" {
		return "", "", errors.New("assets: ubicación s3 incompleta: " + location)
	}
	return bucket, key, nil
}
