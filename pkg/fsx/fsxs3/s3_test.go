package fsxs3_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Abraxas-365/mailgun/pkg/errx"
	"github.com/Abraxas-365/mailgun/pkg/fsx/fsxs3"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeS3 is an in-memory bucket keyed by object key.
type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	failGet error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	out := &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}
	if ct := f.types[aws.ToString(in.Key)]; ct != "" {
		out.ContentType = aws.String(ct)
	}
	return out, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, _ := io.ReadAll(in.Body)
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3FileSystem_PrefixedRoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	fs := fsxs3.NewS3FileSystem(api, "bucket", "/attachments/")

	if err := fs.WriteFile(ctx, "invoice.pdf", []byte("pdf")); err != nil {
		t.Fatal(err)
	}
	if _, ok := api.objects["attachments/invoice.pdf"]; !ok {
		t.Fatalf("expected prefixed key, have %v", api.objects)
	}

	rc, err := fs.ReadFileStream(ctx, "invoice.pdf")
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "pdf" {
		t.Fatalf("unexpected content %q", data)
	}

	info, err := fs.Stat(ctx, "invoice.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != 3 || info.ContentType != "application/octet-stream" || info.Name != "invoice.pdf" {
		t.Fatalf("unexpected info %+v", info)
	}

	if err := fs.DeleteFile(ctx, "invoice.pdf"); err != nil {
		t.Fatal(err)
	}
	ok, err := fs.Exists(ctx, "invoice.pdf")
	if err != nil || ok {
		t.Fatalf("expected missing object, ok=%v err=%v", ok, err)
	}
}

func TestS3FileSystem_ErrorsAreClassified(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	fs := fsxs3.NewS3FileSystem(api, "bucket", "")

	_, err := fs.ReadFileStream(ctx, "missing")
	if !errx.IsCode(err, fsxs3.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	api.failGet = errors.New("network down")
	_, err = fs.ReadFileStream(ctx, "missing")
	if !errx.IsCode(err, fsxs3.ErrRead) {
		t.Fatalf("expected read error, got %v", err)
	}
}
