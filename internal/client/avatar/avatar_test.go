package avatar

import (
	"context"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeObjects struct {
	lastPut    *s3.PutObjectInput
	putBody    []byte
	lastDelete *s3.DeleteObjectInput

	putErr    error
	deleteErr error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.lastPut = in
	if in.Body != nil {
		f.putBody, _ = io.ReadAll(in.Body)
	}
	return &s3.PutObjectOutput{}, f.putErr
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.lastDelete = in
	return &s3.DeleteObjectOutput{}, f.deleteErr
}

type fakePresigner struct {
	lastIn  *s3.GetObjectInput
	expires time.Duration
	url     string
	err     error
}

func (f *fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.lastIn = in
	var o s3.PresignOptions
	for _, fn := range optFns {
		fn(&o)
	}
	f.expires = o.Expires
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: f.url}, nil
}

func TestKey(t *testing.T) {
	assert.Equal(t, "UserAvatars/42.png", Key("42"))
}

func TestUpload(t *testing.T) {
	objs := &fakeObjects{}
	s := newStore(objs, &fakePresigner{}, "avatars", 0)

	key, err := s.Upload(context.Background(), "42", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "UserAvatars/42.png", key)

	require.NotNil(t, objs.lastPut)
	assert.Equal(t, "avatars", aws.ToString(objs.lastPut.Bucket))
	assert.Equal(t, "UserAvatars/42.png", aws.ToString(objs.lastPut.Key))
	assert.Equal(t, "image/png", aws.ToString(objs.lastPut.ContentType))
	assert.Equal(t, int64(len(pngHeader)), aws.ToInt64(objs.lastPut.ContentLength))
	assert.Equal(t, pngHeader, objs.putBody)
}

func TestUpload_Rejects(t *testing.T) {
	objs := &fakeObjects{}
	s := newStore(objs, &fakePresigner{}, "avatars", 0)
	ctx := context.Background()

	_, err := s.Upload(ctx, "", pngHeader)
	require.ErrorIs(t, err, ErrEmptyUserID)

	_, err = s.Upload(ctx, "42", []byte("just some text"))
	require.ErrorIs(t, err, ErrNotImage)

	_, err = s.Upload(ctx, "42", make([]byte, MaxSize+1))
	require.ErrorIs(t, err, ErrTooLarge)

	assert.Nil(t, objs.lastPut)
}

func TestUpload_BackendError(t *testing.T) {
	boom := errors.New("access denied")
	s := newStore(&fakeObjects{putErr: boom}, &fakePresigner{}, "avatars", 0)

	_, err := s.Upload(context.Background(), "42", pngHeader)
	require.ErrorIs(t, err, boom)
}

func TestURL(t *testing.T) {
	p := &fakePresigner{url: "https://s3.example/UserAvatars/42.png?sig"}
	s := newStore(&fakeObjects{}, p, "avatars", 5*time.Minute)

	u, err := s.URL(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/UserAvatars/42.png?sig", u)
	assert.Equal(t, "UserAvatars/42.png", aws.ToString(p.lastIn.Key))
	assert.Equal(t, 5*time.Minute, p.expires)

	p.err = errors.New("no creds")
	_, err = s.URL(context.Background(), "42")
	require.ErrorIs(t, err, p.err)
}

func TestDelete(t *testing.T) {
	objs := &fakeObjects{}
	s := newStore(objs, &fakePresigner{}, "avatars", 0)

	require.NoError(t, s.Delete(context.Background(), "7"))
	assert.Equal(t, "UserAvatars/7.png", aws.ToString(objs.lastDelete.Key))

	objs.deleteErr = errors.New("gone")
	require.ErrorIs(t, s.Delete(context.Background(), "7"), objs.deleteErr)
	require.ErrorIs(t, s.Delete(context.Background(), ""), ErrEmptyUserID)
}

func TestNewS3Store_WiresConfigAndPresigns(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	var gotRegion string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		gotRegion = lo.Region
		require.NotNil(t, lo.Credentials, "static credentials applied")
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
	}

	var gotEndpoint string
	var pathStyle bool
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		wrapped := append(optFns, func(o *s3.Options) {
			gotEndpoint = aws.ToString(o.BaseEndpoint)
			pathStyle = o.UsePathStyle
		})
		return s3.NewFromConfig(cfg, wrapped...)
	}

	s, err := NewS3Store(context.Background(), Config{
		Region:       "us-east-1",
		Bucket:       "avatars",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		URLExpiry:    10 * time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", gotRegion)
	assert.Equal(t, "http://127.0.0.1:9000", gotEndpoint)
	assert.True(t, pathStyle)

	raw, err := s.URL(context.Background(), "42")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/avatars/UserAvatars/42.png", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
}

func TestNewS3Store_Errors(t *testing.T) {
	_, err := NewS3Store(context.Background(), Config{})
	require.Error(t, err)

	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })
	boom := errors.New("bad profile")
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, boom
	}

	_, err = NewS3Store(context.Background(), Config{Bucket: "b"})
	require.ErrorIs(t, err, boom)
}
