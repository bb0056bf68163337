package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"cityportal/internal/pkg/upload"
)

// ErrUploadFailed wraps any transfer error from the backend.
var ErrUploadFailed = errors.New("storage upload failed")

type Variant string

const (
	VariantOriginal  Variant = "original"
	VariantOptimized Variant = "optimized"
)

const optimizedContentType = "image/jpeg"

// UploadResult describes one uploaded variant.
type UploadResult struct {
	Variant     Variant `json:"variant"`
	URL         string  `json:"url"`
	Bucket      string  `json:"bucket"`
	Key         string  `json:"key"`
	ContentType string  `json:"content_type"`
	SizeBytes   int64   `json:"size_bytes"`
	ETag        string  `json:"etag"`
}

// FileUpload pairs a temp file with an optional precomputed optimized buffer.
type FileUpload struct {
	Original  upload.File
	Optimized []byte
}

// objectClient is the slice of the MinIO client the uploader needs.
type objectClient interface {
	FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
}

// Config tunes the uploader. PartSize and Concurrency bound the memory
// used per transfer so large files never need full buffering.
type Config struct {
	Bucket      string
	BaseURL     string // public URL prefix for constructed object URLs
	PartSize    uint64 // bytes per multipart chunk
	Concurrency uint
}

type Uploader struct {
	client objectClient
	cfg    Config
}

// Connect builds a MinIO client from static credentials.
func Connect(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
}

func NewUploader(client objectClient, cfg Config) *Uploader {
	if cfg.PartSize == 0 {
		cfg.PartSize = 5 * 1024 * 1024
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}
	return &Uploader{client: client, cfg: cfg}
}

// UploadFiles streams each file (and its optional optimized buffer) to the
// backend under destination, returning one result per uploaded variant.
// The local temp file is always removed afterwards, best-effort. A failed
// transfer aborts that file's processing; variants already uploaded for it
// are not rolled back.
func (u *Uploader) UploadFiles(ctx context.Context, files []FileUpload, destination string) ([]UploadResult, error) {
	results := make([]UploadResult, 0, len(files)*2)
	for _, f := range files {
		rs, err := u.processFile(ctx, f, destination)
		results = append(results, rs...)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (u *Uploader) processFile(ctx context.Context, f FileUpload, destination string) ([]UploadResult, error) {
	defer u.cleanupTemp(f.Original.TempPath)

	// trust the signature bytes, not the client-declared type
	contentType := "application/octet-stream"
	ext := ""
	if mt, err := mimetype.DetectFile(f.Original.TempPath); err == nil {
		contentType = mt.String()
		ext = mt.Extension()
	}

	base := strings.TrimSuffix(f.Original.OriginalName, f.Original.Ext())
	ts := time.Now().UnixMilli()

	var results []UploadResult

	key := fmt.Sprintf("%s/%d-%s%s", destination, ts, base, ext)
	info, err := u.client.FPutObject(ctx, u.cfg.Bucket, key, f.Original.TempPath, minio.PutObjectOptions{
		ContentType: contentType,
		PartSize:    u.cfg.PartSize,
		NumThreads:  u.cfg.Concurrency,
	})
	if err != nil {
		return results, fmt.Errorf("%w: original %s: %v", ErrUploadFailed, key, err)
	}
	results = append(results, UploadResult{
		Variant:     VariantOriginal,
		URL:         u.objectURL(key),
		Bucket:      u.cfg.Bucket,
		Key:         key,
		ContentType: contentType,
		SizeBytes:   f.Original.Size,
		ETag:        strings.Trim(info.ETag, `"`),
	})

	if len(f.Optimized) > 0 {
		optKey := fmt.Sprintf("%s/optimized-%d-%s.jpg", destination, ts, base)
		optInfo, err := u.client.PutObject(ctx, u.cfg.Bucket, optKey, bytes.NewReader(f.Optimized), int64(len(f.Optimized)), minio.PutObjectOptions{
			ContentType: optimizedContentType,
		})
		if err != nil {
			return results, fmt.Errorf("%w: optimized %s: %v", ErrUploadFailed, optKey, err)
		}
		results = append(results, UploadResult{
			Variant:     VariantOptimized,
			URL:         u.objectURL(optKey),
			Bucket:      u.cfg.Bucket,
			Key:         optKey,
			ContentType: optimizedContentType,
			SizeBytes:   int64(len(f.Optimized)),
			ETag:        strings.Trim(optInfo.ETag, `"`),
		})
	}

	return results, nil
}

// DeleteFile removes an object by key. Backend errors, including
// not-found, pass through untouched.
func (u *Uploader) DeleteFile(ctx context.Context, bucket, key string) error {
	if bucket == "" {
		bucket = u.cfg.Bucket
	}
	return u.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}

func (u *Uploader) objectURL(key string) string {
	return strings.TrimSuffix(u.cfg.BaseURL, "/") + "/" + key
}

func (u *Uploader) cleanupTemp(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to unlink temp file path=%s error=%q", path, err)
	}
}
