// Package media archives uploaded audio recordings and scene images in
// S3-compatible object storage for later review. The archive is
// optional; a nil *Archive turns every call into a no-op.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrNotFound = errors.New("media: object not found")

type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether the config carries enough to reach a server.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

type Archive struct {
	client   *minio.Client
	bucket   string
	region   string
	initOnce sync.Once
	initErr  error
}

// New connects to the configured object store. It returns (nil, nil)
// when the config is empty so callers can wire the archive
// unconditionally.
func New(cfg Config) (*Archive, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("media: access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("media: bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(strings.TrimSpace(cfg.Endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("media: init client: %w", err)
	}
	return &Archive{client: client, bucket: bucket, region: region}, nil
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	a.initOnce.Do(func() {
		exists, err := a.client.BucketExists(ctx, a.bucket)
		if err != nil {
			a.initErr = err
			return
		}
		if exists {
			return
		}
		a.initErr = a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region})
	})
	return a.initErr
}

// Store writes an upload under kind/date/uuid-filename and returns the
// object key. A nil archive returns "" without error.
func (a *Archive) Store(ctx context.Context, kind, filename, contentType string, content []byte) (string, error) {
	if a == nil {
		return "", nil
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		kind = "misc"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := a.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("media: ensure bucket: %w", err)
	}

	key := objectKey(kind, filename)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// Fetch retrieves a stored object by key.
func (a *Archive) Fetch(ctx context.Context, key string) ([]byte, error) {
	if a == nil {
		return nil, ErrNotFound
	}
	if err := a.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("media: ensure bucket: %w", err)
	}
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NoSuchBucket" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// List returns all object keys of a kind, sorted.
func (a *Archive) List(ctx context.Context, kind string) ([]string, error) {
	if a == nil {
		return nil, nil
	}
	if err := a.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("media: ensure bucket: %w", err)
	}

	prefix := strings.TrimSuffix(strings.TrimSpace(kind), "/") + "/"
	keys := make([]string, 0, 32)
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if obj.Key == "" {
			continue
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// URL returns a presigned link valid for one hour.
func (a *Archive) URL(ctx context.Context, key string) (string, error) {
	if a == nil {
		return "", ErrNotFound
	}
	u, err := a.client.PresignedGetObject(ctx, a.bucket, key, time.Hour, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func objectKey(kind, filename string) string {
	name := strings.TrimLeft(strings.TrimSpace(filename), "/")
	if name == "" {
		name = "upload.bin"
	}
	day := time.Now().UTC().Format("2006-01-02")
	return kind + "/" + day + "/" + uuid.NewString() + "-" + name
}
