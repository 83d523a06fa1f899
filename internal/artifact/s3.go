package artifact

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config configures the optional publisher for S3-compatible storage.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Publisher mirrors emitted artifacts into a bucket, keyed per run.
type S3Publisher struct {
	client     *minio.Client
	bucketName string
	region     string
	initOnce   sync.Once
	initErr    error
}

func NewS3Publisher(cfg S3Config) (*S3Publisher, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("artifact: s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("artifact: s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("artifact: s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("artifact: init s3 client: %w", err)
	}
	return &S3Publisher{client: client, bucketName: bucket, region: region}, nil
}

func (p *S3Publisher) ensureBucket(ctx context.Context) error {
	if p == nil || p.client == nil {
		return fmt.Errorf("artifact: publisher is nil")
	}
	p.initOnce.Do(func() {
		exists, err := p.client.BucketExists(ctx, p.bucketName)
		if err != nil {
			p.initErr = err
			return
		}
		if exists {
			return
		}
		p.initErr = p.client.MakeBucket(ctx, p.bucketName, minio.MakeBucketOptions{Region: p.region})
	})
	return p.initErr
}

// Publish uploads one emitted file under <runID>/<name>.
func (p *S3Publisher) Publish(ctx context.Context, runID, name string, content []byte) error {
	if p == nil {
		return fmt.Errorf("artifact: publisher is nil")
	}
	runID = strings.TrimSpace(runID)
	name = strings.TrimLeft(strings.TrimSpace(name), "/")
	if runID == "" {
		return fmt.Errorf("artifact: run id is required")
	}
	if name == "" {
		return fmt.Errorf("artifact: object name is required")
	}
	if err := p.ensureBucket(ctx); err != nil {
		return fmt.Errorf("artifact: ensure bucket: %w", err)
	}
	contentType := "application/octet-stream"
	if strings.HasSuffix(name, ".json") {
		contentType = "application/json"
	}
	_, err := p.client.PutObject(ctx, p.bucketName, runID+"/"+name, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}
