package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"testing"

	"userprofile/internal/models"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type putCall struct {
	bucket, key, contentType string
	data                     []byte
}

type memObjects struct {
	objects map[string][]byte // "bucket/key"
	puts    []putCall
	getErr  error
	putErr  error
}

func (m *memObjects) Get(_ context.Context, bucket, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (m *memObjects) Put(_ context.Context, bucket, key string, data []byte, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts = append(m.puts, putCall{bucket: bucket, key: key, contentType: contentType, data: data})
	return nil
}

type memMeta struct {
	records []models.ImageArtifactRecord
	err     error
}

func (m *memMeta) PutImageRecord(_ context.Context, rec models.ImageArtifactRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func s3Event(bucket, key string) events.S3Event {
	return events.S3Event{Records: []events.S3EventRecord{{
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: bucket},
			Object: events.S3Object{Key: key},
		},
	}}}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newTestApp(store *memObjects, meta *memMeta) *App {
	return &App{outputBucket: "thumbs", store: store, meta: meta, logger: zap.NewNop()}
}

func TestResizeSuccess(t *testing.T) {
	store := &memObjects{objects: map[string][]byte{
		"uploads/2024/photo.png": pngBytes(t, 800, 600),
	}}
	meta := &memMeta{}
	app := newTestApp(store, meta)

	resp, err := app.handler(context.Background(), s3Event("uploads", "2024/photo.png"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, store.puts, 1)
	put := store.puts[0]
	assert.Equal(t, "thumbs", put.bucket)
	assert.Equal(t, "processed/thumb_photo.png", put.key)
	assert.Equal(t, "image/jpeg", put.contentType)

	thumb, err := jpeg.Decode(bytes.NewReader(put.data))
	require.NoError(t, err)
	assert.Equal(t, 128, thumb.Bounds().Dx())
	assert.Equal(t, 96, thumb.Bounds().Dy())

	require.Len(t, meta.records, 1)
	rec := meta.records[0]
	assert.Equal(t, "2024/photo.png", rec.ImageName)
	assert.Equal(t, "processed/thumb_photo.png", rec.ProcessedImageName)
	assert.Equal(t, 800, rec.OriginalWidth)
	assert.Equal(t, 600, rec.OriginalHeight)
	assert.Equal(t, 128, rec.ProcessedWidth)
	assert.Equal(t, 96, rec.ProcessedHeight)
	assert.Equal(t, "uploads", rec.InputBucket)
	assert.Equal(t, "thumbs", rec.OutputBucket)
	assert.Regexp(t, `Z$`, rec.Timestamp)

	var body struct {
		Message  string                     `json:"message"`
		Metadata models.ImageArtifactRecord `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, rec, body.Metadata)
}

func TestResizeUnescapesKey(t *testing.T) {
	store := &memObjects{objects: map[string][]byte{
		"uploads/my photo.png": pngBytes(t, 10, 10),
	}}
	meta := &memMeta{}
	app := newTestApp(store, meta)

	// S3 notifications deliver keys query-escaped.
	resp, err := app.handler(context.Background(), s3Event("uploads", "my+photo.png"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, store.puts, 1)
	assert.Equal(t, "processed/thumb_my photo.png", store.puts[0].key)
}

func TestResizeSmallImageKeepsDimensions(t *testing.T) {
	store := &memObjects{objects: map[string][]byte{
		"uploads/tiny.png": pngBytes(t, 50, 30),
	}}
	meta := &memMeta{}
	app := newTestApp(store, meta)

	_, err := app.handler(context.Background(), s3Event("uploads", "tiny.png"))
	require.NoError(t, err)
	require.Len(t, meta.records, 1)
	assert.Equal(t, 50, meta.records[0].ProcessedWidth)
	assert.Equal(t, 30, meta.records[0].ProcessedHeight)
}

func TestResizeMissingObject(t *testing.T) {
	app := newTestApp(&memObjects{objects: map[string][]byte{}}, &memMeta{})

	resp, err := app.handler(context.Background(), s3Event("uploads", "gone.png"))
	require.NoError(t, err, "failures become a 500 envelope, not a handler error")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, resp.Body, "error")
}

func TestResizeUndecodableBytes(t *testing.T) {
	store := &memObjects{objects: map[string][]byte{
		"uploads/notes.txt": []byte("just text"),
	}}
	app := newTestApp(store, &memMeta{})

	resp, err := app.handler(context.Background(), s3Event("uploads", "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, store.puts, "nothing may be uploaded for undecodable input")
}

func TestResizeWriteFailure(t *testing.T) {
	store := &memObjects{
		objects: map[string][]byte{"uploads/p.png": pngBytes(t, 10, 10)},
		putErr:  errors.New("access denied"),
	}
	meta := &memMeta{}
	app := newTestApp(store, meta)

	resp, err := app.handler(context.Background(), s3Event("uploads", "p.png"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, meta.records, "metadata must not be recorded when the upload failed")
}

func TestResizeMetadataFailureLeavesObject(t *testing.T) {
	store := &memObjects{objects: map[string][]byte{
		"uploads/p.png": pngBytes(t, 10, 10),
	}}
	meta := &memMeta{err: errors.New("throttled")}
	app := newTestApp(store, meta)

	resp, err := app.handler(context.Background(), s3Event("uploads", "p.png"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	// The derived object stays; there is no rollback.
	assert.Len(t, store.puts, 1)
}
