// Package s3io provides a thin adapter over S3 object get/put.
package s3io

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"userprofile/internal/apperr"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// API is the slice of the S3 client used by the store. Tests substitute an
// in-memory implementation.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store wraps an S3 client for whole-object reads and writes.
type Store struct {
	Client API
}

// Get downloads the full object body.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageRead, fmt.Sprintf("get s3://%s/%s", bucket, key), err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageRead, fmt.Sprintf("read s3://%s/%s", bucket, key), err)
	}
	return data, nil
}

// Put uploads data under bucket/key with the given content type.
func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return apperr.Wrap(apperr.KindStorageWrite, fmt.Sprintf("put s3://%s/%s", bucket, key), err)
	}
	return nil
}
