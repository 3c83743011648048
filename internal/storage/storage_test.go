package storage

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialmedia/internal/domain"
)

type putCall struct {
	bucket      string
	key         string
	contentType string
	body        []byte
}

type fakeUploader struct {
	calls []putCall
	err   error
}

func (u *fakeUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if u.err != nil {
		return nil, u.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	u.calls = append(u.calls, putCall{
		bucket:      aws.ToString(input.Bucket),
		key:         aws.ToString(input.Key),
		contentType: aws.ToString(input.ContentType),
		body:        body,
	})
	return &manager.UploadOutput{}, nil
}

// fakeS3 serves a fixed key set, two keys per page.
type fakeS3 struct {
	keys    []string
	deleted []string
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var matched []string
	for _, k := range f.keys {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			matched = append(matched, k)
		}
	}
	start := 0
	if in.ContinuationToken != nil {
		for i, k := range matched {
			if k == aws.ToString(in.ContinuationToken) {
				start = i
			}
		}
	}
	end := start + 2
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	if end < len(matched) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(matched[end])
	} else {
		end = len(matched)
	}
	for _, k := range matched[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k), Size: aws.Int64(10)})
	}
	return out, nil
}

func (f *fakeS3) DeleteObjects(_ context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	for _, obj := range in.Delete.Objects {
		f.deleted = append(f.deleted, aws.ToString(obj.Key))
	}
	return &s3.DeleteObjectsOutput{}, nil
}

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPutObjectRequiresBucketAndKey(t *testing.T) {
	svc := NewS3ServiceWith(&fakeS3{}, &fakeUploader{})
	_, err := svc.PutObject(context.Background(), strings.NewReader("x"), PutOptions{Key: "k"})
	require.Error(t, err)
	_, err = svc.PutObject(context.Background(), strings.NewReader("x"), PutOptions{Bucket: "b", Key: "/"})
	require.Error(t, err)
}

func TestListAndDeletePrefixPaginate(t *testing.T) {
	api := &fakeS3{keys: []string{"a/1/1.json", "a/1/2.json", "a/1/3.json", "a/2/1.json"}}
	svc := NewS3ServiceWith(api, &fakeUploader{})
	ctx := context.Background()

	objects, err := svc.ListObjects(ctx, "bucket", "a/")
	require.NoError(t, err)
	assert.Len(t, objects, 4)

	require.NoError(t, svc.DeletePrefix(ctx, "bucket", "a/1/"))
	assert.Equal(t, []string{"a/1/1.json", "a/1/2.json", "a/1/3.json"}, api.deleted)

	require.Error(t, svc.DeletePrefix(ctx, "bucket", " "))
}

func TestArchiverWritesSnapshot(t *testing.T) {
	uploader := &fakeUploader{}
	archiver := NewArchiver(NewS3ServiceWith(&fakeS3{}, uploader), "backups", "/accounts/", quietLogger())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	archiver.now = func() time.Time { return fixed }

	user := &domain.User{ID: 7, Email: "ann@example.com", Name: "ann", Avatar: "AN", IsActive: true}
	profile := &domain.Profile{ID: 3, UserID: 7, Avatar: "AN", FullName: "Ann"}
	require.NoError(t, archiver.Archive(context.Background(), user, profile))

	require.Len(t, uploader.calls, 1)
	call := uploader.calls[0]
	assert.Equal(t, "backups", call.bucket)
	assert.Equal(t, "accounts/7/1714564800000000000.json", call.key)
	assert.Equal(t, "application/json", call.contentType)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(call.body, &snap))
	assert.Equal(t, "ann@example.com", snap.User.Email)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "Ann", snap.Profile.FullName)
	assert.NotContains(t, string(call.body), "password")
}

func TestArchiverListAndPurge(t *testing.T) {
	api := &fakeS3{keys: []string{"accounts/7/1.json", "accounts/8/1.json", "other/7/1.json"}}
	archiver := NewArchiver(NewS3ServiceWith(api, &fakeUploader{}), "backups", "", quietLogger())
	ctx := context.Background()

	objects, err := archiver.List(ctx)
	require.NoError(t, err)
	assert.Len(t, objects, 2)

	require.NoError(t, archiver.Purge(ctx, 7))
	assert.Equal(t, []string{"accounts/7/1.json"}, api.deleted)
}
