// Package main turns uploaded images into 128x128-bounded JPEG thumbnails
// and records the artifact metadata.
package main

import (
	"context"
	"net/http"
	"net/url"

	"userprofile/internal/awsutil"
	"userprofile/internal/config"
	"userprofile/internal/ddb"
	"userprofile/internal/httpx"
	"userprofile/internal/imaging"
	"userprofile/internal/models"
	"userprofile/internal/s3io"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectStore is the blob-storage surface the handler needs.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// MetadataStore persists the per-image artifact record.
type MetadataStore interface {
	PutImageRecord(ctx context.Context, rec models.ImageArtifactRecord) error
}

// App holds the application state, including configuration and AWS clients.
type App struct {
	outputBucket string
	store        ObjectStore
	meta         MetadataStore
	logger       *zap.Logger
}

// main initializes the app and starts the Lambda handler.
func main() {
	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	env := config.MustLoad()
	cfg, endpoint, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		logger.Fatal("load aws config", zap.Error(err))
	}

	s3c := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true // localstack/dev friendliness
		}
	})

	app := &App{
		outputBucket: env.MustOutputBucket(),
		store:        &s3io.Store{Client: s3c},
		meta:         &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table},
		logger:       logger,
	}
	lambda.Start(app.handler)
}

// handler processes an S3 notification. Every failure is converted to a 500
// envelope rather than propagated; the derived object is not rolled back
// when the metadata write fails.
func (a *App) handler(ctx context.Context, ev events.S3Event) (events.APIGatewayProxyResponse, error) {
	if len(ev.Records) == 0 {
		a.logger.Error("notification carried no records")
		return httpx.Error(http.StatusInternalServerError, "no records in event")
	}
	record := ev.Records[0]
	bucket := record.S3.Bucket.Name
	key, _ := url.QueryUnescape(record.S3.Object.Key)

	rec, err := a.process(ctx, bucket, key)
	if err != nil {
		a.logger.Error("image processing failed",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.Error(err),
		)
		return httpx.Error(http.StatusInternalServerError, err.Error())
	}

	a.logger.Info("image processed",
		zap.String("key", key),
		zap.String("thumbKey", rec.ProcessedImageName),
		zap.Int("width", rec.ProcessedWidth),
		zap.Int("height", rec.ProcessedHeight),
	)
	return httpx.JSON(http.StatusOK, map[string]any{
		"message":  "Image processed and metadata saved successfully!",
		"metadata": rec,
	})
}

// process runs the download/resize/upload/record pipeline for one object.
func (a *App) process(ctx context.Context, bucket, key string) (*models.ImageArtifactRecord, error) {
	data, err := a.store.Get(ctx, bucket, key)
	if err != nil {
		return nil, err
	}

	thumb, err := imaging.Thumbnail(data, imaging.ThumbnailBound)
	if err != nil {
		return nil, err
	}

	thumbKey := s3io.ThumbKey(key)
	if err := a.store.Put(ctx, a.outputBucket, thumbKey, thumb.JPEG, s3io.ContentTypeJPEG); err != nil {
		return nil, err
	}

	rec := models.ImageArtifactRecord{
		ImageName:          key,
		ProcessedImageName: thumbKey,
		OriginalWidth:      thumb.OriginalWidth,
		OriginalHeight:     thumb.OriginalHeight,
		ProcessedWidth:     thumb.Width,
		ProcessedHeight:    thumb.Height,
		InputBucket:        bucket,
		OutputBucket:       a.outputBucket,
		Timestamp:          ddb.NowISO(),
	}
	if err := a.meta.PutImageRecord(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
