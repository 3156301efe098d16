package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	puts    []*s3.PutObjectInput
	deletes []string
	err     error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, f.err
}

// Minimal file signatures, enough for content sniffing.
var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
	webpBytes = []byte("RIFF\x24\x00\x00\x00WEBPVP8 \x18\x00\x00\x00")
)

func TestUploadImage(t *testing.T) {
	fake := &fakeS3{}
	client := newSpacesClient(fake, SpacesConfig{Bucket: "media", Endpoint: "https://fra1.digitaloceanspaces.com"})

	key, url, err := client.UploadImage(context.Background(), "universities", pngBytes)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "universities/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, "https://media.fra1.digitaloceanspaces.com/"+key, url)

	require.Len(t, fake.puts, 1)
	assert.Equal(t, "media", aws.StringValue(fake.puts[0].Bucket))
	assert.Equal(t, "image/png", aws.StringValue(fake.puts[0].ContentType))
	assert.Equal(t, s3.ObjectCannedACLPublicRead, aws.StringValue(fake.puts[0].ACL))

	other, _, err := client.UploadImage(context.Background(), "universities", pngBytes)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestUploadImage_DetectsTypeFromContent(t *testing.T) {
	fake := &fakeS3{}
	client := newSpacesClient(fake, SpacesConfig{Bucket: "media", CDNURL: "https://cdn.example.com/"})

	tests := []struct {
		data        []byte
		contentType string
		ext         string
	}{
		{jpegBytes, "image/jpeg", ".jpg"},
		{gifBytes, "image/gif", ".gif"},
		{webpBytes, "image/webp", ".webp"},
	}
	for _, tt := range tests {
		key, url, err := client.UploadImage(context.Background(), "articles", tt.data)
		require.NoError(t, err, tt.contentType)
		assert.True(t, strings.HasSuffix(key, tt.ext), key)
		assert.Equal(t, "https://cdn.example.com/"+key, url)
		assert.Equal(t, tt.contentType, aws.StringValue(fake.puts[len(fake.puts)-1].ContentType))
	}
}

func TestUploadImage_Rejects(t *testing.T) {
	fake := &fakeS3{}
	client := newSpacesClient(fake, SpacesConfig{Bucket: "media"})
	ctx := context.Background()

	_, _, err := client.UploadImage(ctx, "articles", []byte("%PDF-1.7\n"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, _, err = client.UploadImage(ctx, "articles", []byte("<html><script>alert(1)</script></html>"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, _, err = client.UploadImage(ctx, "../etc", pngBytes)
	assert.ErrorIs(t, err, ErrInvalidFolder)

	_, _, err = client.UploadImage(ctx, "majors", make([]byte, MaxImageSize+1))
	assert.ErrorIs(t, err, ErrTooLarge)

	assert.Empty(t, fake.puts)

	fake.err = errors.New("boom")
	_, _, err = client.UploadImage(ctx, "majors", pngBytes)
	assert.Error(t, err)
}

func TestURL_WithoutEndpoint(t *testing.T) {
	client := newSpacesClient(&fakeS3{}, SpacesConfig{Bucket: "media", Region: "eu-central-1"})
	assert.Equal(t, "https://media.s3.eu-central-1.amazonaws.com/countries/x.png", client.URL("countries/x.png"))
}

func TestDelete(t *testing.T) {
	fake := &fakeS3{}
	client := newSpacesClient(fake, SpacesConfig{Bucket: "media"})

	require.NoError(t, client.Delete(context.Background(), "countries/x.png"))
	assert.Equal(t, []string{"countries/x.png"}, fake.deletes)
}
