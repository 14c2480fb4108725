package source

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ajitpratap0/csvgraph/pkg/compression"
	"github.com/ajitpratap0/csvgraph/pkg/errors"
)

// S3Scheme prefixes object sources given as URIs.
const S3Scheme = "s3://"

// ObjectGetter is the part of the S3 API an object source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Object is a CSV object in an S3 bucket, optionally compressed. Each Open
// issues a new GetObject and streams the body.
type S3Object struct {
	client ObjectGetter
	bucket string
	key    string
	id     string
	opts   CSVOptions
}

// NewS3Object returns a source reading s3://bucket/key through client.
func NewS3Object(client ObjectGetter, bucket, key string, opts CSVOptions) *S3Object {
	return &S3Object{
		client: client,
		bucket: bucket,
		key:    key,
		id:     S3Scheme + bucket + "/" + key,
		opts:   opts,
	}
}

// WithID returns a copy of o with a different source identifier.
func (o *S3Object) WithID(id string) *S3Object {
	c := *o
	c.id = id
	return &c
}

func (o *S3Object) ID() string { return o.id }

func (o *S3Object) Open() (Reader, error) {
	out, err := o.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to get object").
			WithDetail("bucket", o.bucket).
			WithDetail("key", o.key)
	}

	alg := compression.Resolve(o.opts.Compression, o.key)
	body, err := compression.NewReader(alg, out.Body)
	if err != nil {
		_ = out.Body.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to decompress object").
			WithDetail("key", o.key).
			WithDetail("compression", string(alg))
	}

	r, err := NewCSVReader(body, o.opts)
	if err != nil {
		_ = body.Close()
		_ = out.Body.Close()
		return nil, err
	}
	r.closers = []io.Closer{body, out.Body}
	r.name = o.id
	return r, nil
}

// ParseS3URI splits s3://bucket/key. ok is false for anything else.
func ParseS3URI(uri string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(uri, S3Scheme)
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// S3ClientConfig configures NewS3Client.
type S3ClientConfig struct {
	Region string `yaml:"region,omitempty" mapstructure:"region"`
	// Endpoint replaces the AWS endpoint, for S3-compatible stores. It
	// switches to path-style addressing.
	Endpoint string `yaml:"endpoint,omitempty" mapstructure:"endpoint"`
	// Anonymous skips request signing, for public buckets.
	Anonymous bool `yaml:"anonymous,omitempty" mapstructure:"anonymous"`
}

// NewS3Client builds a client from the default AWS credential chain.
func NewS3Client(ctx context.Context, cfg S3ClientConfig) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Anonymous {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to load AWS configuration")
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
