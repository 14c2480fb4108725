package source

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/csvgraph/pkg/compression"
	"github.com/ajitpratap0/csvgraph/pkg/errors"
)

type fakeGetter struct {
	objects map[string][]byte
	calls   int
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func gzipped(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := compression.NewWriter(compression.Gzip, &buf)
	require.NoError(t, err)
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestS3Object(t *testing.T) {
	getter := &fakeGetter{objects: map[string][]byte{
		"data/people.csv":    []byte("name,age\nAda,36\n"),
		"data/people.csv.gz": gzipped(t, "name,age\nLin,29\n"),
	}}

	src := NewS3Object(getter, "data", "people.csv", CSVOptions{})
	assert.Equal(t, "s3://data/people.csv", src.ID())
	assert.Equal(t, "http://ex/people", src.WithID("http://ex/people").ID())

	for i := 0; i < 2; i++ {
		r, err := src.Open()
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"name", "age"}, {"Ada", "36"}}, readAll(t, r))
		require.NoError(t, r.Close())
	}
	assert.Equal(t, 2, getter.calls, "every open fetches the object again")

	r, err := NewS3Object(getter, "data", "people.csv.gz", CSVOptions{Compression: compression.Auto}).Open()
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, [][]string{{"name", "age"}, {"Lin", "29"}}, readAll(t, r))
}

func TestS3ObjectMissing(t *testing.T) {
	_, err := NewS3Object(&fakeGetter{}, "data", "absent.csv", CSVOptions{}).Open()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestParseS3URI(t *testing.T) {
	bucket, key, ok := ParseS3URI("s3://data/dir/people.csv")
	require.True(t, ok)
	assert.Equal(t, "data", bucket)
	assert.Equal(t, "dir/people.csv", key)

	for _, bad := range []string{"people.csv", "s3://", "s3://data", "s3://data/", "s3:///key", "http://data/key"} {
		_, _, ok := ParseS3URI(bad)
		assert.False(t, ok, bad)
	}
}

func TestNewS3ClientAgainstEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/data/people.csv" {
			w.Header().Set("Content-Type", "text/csv")
			_, _ = io.WriteString(w, "name,age\nAda,36\n")
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
	}))
	defer srv.Close()

	client, err := NewS3Client(context.Background(), S3ClientConfig{
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		Anonymous: true,
	})
	require.NoError(t, err)

	r, err := NewS3Object(client, "data", "people.csv", CSVOptions{}).Open()
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, [][]string{{"name", "age"}, {"Ada", "36"}}, readAll(t, r))

	_, err = NewS3Object(client, "data", "other.csv", CSVOptions{}).Open()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
	assert.True(t, strings.Contains(err.Error(), "NoSuchKey"), err.Error())
}
