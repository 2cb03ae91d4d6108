package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	storage "github.com/supabase-community/storage-go"
)

// ErrObjectNotFound is returned when a key is absent from the bucket.
var ErrObjectNotFound = errors.New("object not found")

const listPageSize = 1000

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(c *Client, bucket string) *StorageClient {
	return &StorageClient{
		client:  c.Supabase.Storage,
		bucket:  bucket,
		baseURL: c.URL,
	}
}

func (s *StorageClient) Bucket() string {
	return s.bucket
}

// EnsureBucket creates the private bucket on first start.
func (s *StorageClient) EnsureBucket(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.GetBucket(s.bucket); err == nil {
		return nil
	}
	if _, err := s.client.CreateBucket(s.bucket, storage.BucketOptions{Public: false}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *StorageClient) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	upsert := true
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

func (s *StorageClient) Download(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.client.DownloadFile(s.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", classify(err))
	}
	return data, nil
}

func (s *StorageClient) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// SignedURL issues a time-limited retrieval URL for a private object.
func (s *StorageClient) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	resp, err := s.client.CreateSignedUrl(s.bucket, key, int(expiry/time.Second))
	if err != nil {
		return "", fmt.Errorf("failed to sign url: %w", classify(err))
	}
	signed := resp.SignedURL
	if strings.HasPrefix(signed, "/") {
		signed = s.baseURL + "/storage/v1" + signed
	}
	return signed, nil
}

// Keys lists every object name at the bucket root.
func (s *StorageClient) Keys(ctx context.Context) (map[string]bool, error) {
	keys := make(map[string]bool)
	for offset := 0; ; offset += listPageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files, err := s.client.ListFiles(s.bucket, "", storage.FileSearchOptions{
			Limit:  listPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}
		for _, file := range files {
			keys[file.Name] = true
		}
		if len(files) < listPageSize {
			return keys, nil
		}
	}
}

func classify(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "not found") || strings.Contains(msg, "404") {
		return errors.Join(err, ErrObjectNotFound)
	}
	return err
}
