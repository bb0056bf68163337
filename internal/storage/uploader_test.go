package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityportal/internal/pkg/upload"
)

type fakeClient struct {
	fputKeys   []string
	putKeys    []string
	removed    []string
	fputErr    error
	putErr     error
	lastOpts   minio.PutObjectOptions
	putPayload []byte
}

func (f *fakeClient) FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.fputErr != nil {
		return minio.UploadInfo{}, f.fputErr
	}
	f.fputKeys = append(f.fputKeys, object)
	f.lastOpts = opts
	return minio.UploadInfo{ETag: `"etag-original"`}, nil
}

func (f *fakeClient) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	f.putKeys = append(f.putKeys, object)
	f.putPayload, _ = io.ReadAll(reader)
	return minio.UploadInfo{ETag: `"etag-optimized"`}, nil
}

func (f *fakeClient) RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error {
	f.removed = append(f.removed, bucket+"/"+object)
	return nil
}

func tempFile(t *testing.T, name string, content []byte) upload.File {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, content, 0o644))
	return upload.File{OriginalName: name, TempPath: p, Size: int64(len(content))}
}

// %PDF magic so signature sniffing lands on application/pdf
var pdfBytes = []byte("%PDF-1.4 fake body")

func TestUploadFiles_OriginalOnly(t *testing.T) {
	client := &fakeClient{}
	u := NewUploader(client, Config{Bucket: "media", BaseURL: "https://cdn.example.com"})

	f := tempFile(t, "report.pdf", pdfBytes)
	results, err := u.UploadFiles(context.Background(), []FileUpload{{Original: f}}, "reports")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, VariantOriginal, r.Variant)
	assert.Equal(t, "media", r.Bucket)
	assert.Equal(t, "application/pdf", r.ContentType)
	assert.Equal(t, f.Size, r.SizeBytes)
	assert.Equal(t, "etag-original", r.ETag)
	assert.True(t, strings.HasPrefix(r.Key, "reports/"))
	assert.True(t, strings.HasSuffix(r.Key, ".pdf"))
	assert.Equal(t, "https://cdn.example.com/"+r.Key, r.URL)

	// temp file cleaned up after transfer
	assert.NoFileExists(t, f.TempPath)
}

func TestUploadFiles_WithOptimizedBuffer(t *testing.T) {
	client := &fakeClient{}
	u := NewUploader(client, Config{Bucket: "media", BaseURL: "https://cdn.example.com"})

	f := tempFile(t, "photo.jpg", pdfBytes)
	optimized := []byte("optimized jpeg bytes")
	results, err := u.UploadFiles(context.Background(), []FileUpload{{Original: f, Optimized: optimized}}, "news")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, VariantOriginal, results[0].Variant)
	assert.Equal(t, VariantOptimized, results[1].Variant)
	assert.Equal(t, "image/jpeg", results[1].ContentType)
	assert.Equal(t, int64(len(optimized)), results[1].SizeBytes)
	assert.Equal(t, "etag-optimized", results[1].ETag)
	assert.True(t, strings.HasPrefix(results[1].Key, "news/optimized-"))
	assert.True(t, strings.HasSuffix(results[1].Key, ".jpg"))
	assert.Equal(t, optimized, client.putPayload)
}

func TestUploadFiles_TransferFailure(t *testing.T) {
	client := &fakeClient{fputErr: errors.New("connection reset")}
	u := NewUploader(client, Config{Bucket: "media", BaseURL: "https://cdn.example.com"})

	f := tempFile(t, "photo.jpg", pdfBytes)
	_, err := u.UploadFiles(context.Background(), []FileUpload{{Original: f}}, "news")
	assert.ErrorIs(t, err, ErrUploadFailed)
	// cleanup still ran
	assert.NoFileExists(t, f.TempPath)
}

func TestUploadFiles_OptimizedFailureKeepsOriginalResult(t *testing.T) {
	client := &fakeClient{putErr: errors.New("timeout")}
	u := NewUploader(client, Config{Bucket: "media", BaseURL: "https://cdn.example.com"})

	f := tempFile(t, "photo.jpg", pdfBytes)
	results, err := u.UploadFiles(context.Background(), []FileUpload{{Original: f, Optimized: []byte("x")}}, "news")
	assert.ErrorIs(t, err, ErrUploadFailed)
	// no rollback of the variant that already landed
	require.Len(t, results, 1)
	assert.Equal(t, VariantOriginal, results[0].Variant)
}

func TestDeleteFile(t *testing.T) {
	client := &fakeClient{}
	u := NewUploader(client, Config{Bucket: "media"})

	require.NoError(t, u.DeleteFile(context.Background(), "", "news/1-a.jpg"))
	require.NoError(t, u.DeleteFile(context.Background(), "other", "k"))
	assert.Equal(t, []string{"media/news/1-a.jpg", "other/k"}, client.removed)
}

func TestNewUploader_Defaults(t *testing.T) {
	u := NewUploader(&fakeClient{}, Config{Bucket: "b"})
	assert.Equal(t, uint64(5*1024*1024), u.cfg.PartSize)
	assert.Equal(t, uint(4), u.cfg.Concurrency)
}
