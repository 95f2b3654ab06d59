package pinning

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/chainvote/internal/server/config"
)

// ObjectKeyPrefix is prepended to the content identifier to form the key.
const ObjectKeyPrefix = "profiles/"

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3Pinner stores files in an S3-compatible bucket (MinIO in development)
// under their SHA-256 digest.
type S3Pinner struct {
	client *s3.Client
	bucket string
}

func NewS3Pinner(ctx context.Context, cfg *config.Config) (*S3Pinner, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Pinner{client: client, bucket: cfg.S3Bucket}, nil
}

// ContentID returns the identifier S3Pinner assigns to data.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (p *S3Pinner) Pin(ctx context.Context, f File) (string, error) {
	data, err := io.ReadAll(f.Content)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	cid := ContentID(data)
	key := ObjectKeyPrefix + cid

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = putObject(p.client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	return cid, nil
}
