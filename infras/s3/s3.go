package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"folio/config"
	"folio/infras/otel"
	"folio/shared/constant"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultRegion = "auto"

// Object is one stored asset as reported by a bucket listing.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// S3 stores image assets in the configured bucket. Keys are bucket relative, e.g.
// images/<uuid>.jpg.
type S3 interface {
	Put(ctx context.Context, key, contentType string, body []byte) (url string, err error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Object, error)
	// KeyFromURL recovers the key of a public or API URL, or returns "" for foreign URLs.
	KeyFromURL(url string) string
}

type s3Impl struct {
	client   *s3.Client
	bucket   string
	endpoint string
	public   string
	otel     otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	store := cfg.External.S3

	region := store.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(store.AccessKeyID, store.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load asset store configuration")
	}

	return &s3Impl{
		client: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if store.APIEndpoint != "" {
				o.BaseEndpoint = aws.String(store.APIEndpoint)
			}

			o.UsePathStyle = true
		}),
		bucket:   store.BucketName,
		endpoint: strings.TrimSuffix(store.APIEndpoint, "/"),
		public:   strings.TrimSuffix(store.PublicDomain, "/"),
		otel:     otel,
	}
}

func (store *s3Impl) scope(ctx context.Context, operation, key string) (context.Context, otel.Scope) {
	ctx, scope := store.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+"."+operation)
	scope.SetAttributes(map[string]any{
		"bucket": store.bucket,
		"key":    key,
	})

	return ctx, scope
}

// Put uploads body under key and returns its public URL.
func (store *s3Impl) Put(ctx context.Context, key, contentType string, body []byte) (url string, err error) {
	ctx, scope := store.scope(ctx, "Put", key)
	defer scope.End()
	defer scope.TraceIfError(err)

	_, err = store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(store.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return constant.Empty, errors.Wrapf(err, "put object %s", key)
	}

	return store.public + "/" + key, nil
}

func (store *s3Impl) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := store.scope(ctx, "Delete", key)
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return errors.Wrapf(err, "delete object %s", key)
	}

	return nil
}

// List walks every page of the listing under prefix.
func (store *s3Impl) List(ctx context.Context, prefix string) (objects []Object, err error) {
	if prefix != "" {
		prefix = strings.TrimSuffix(prefix, "/") + "/"
	}

	ctx, scope := store.scope(ctx, "List", prefix)
	defer scope.End()
	defer scope.TraceIfError(err)

	pages := s3.NewListObjectsV2Paginator(store.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(store.bucket),
		Prefix: aws.String(prefix),
	})

	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "list objects under %q", prefix)
		}

		for _, item := range page.Contents {
			objects = append(objects, Object{
				Key:          aws.ToString(item.Key),
				Size:         aws.ToInt64(item.Size),
				LastModified: aws.ToTime(item.LastModified),
			})
		}
	}

	scope.SetAttribute("objects", len(objects))

	return objects, nil
}

func (store *s3Impl) KeyFromURL(url string) string {
	for _, base := range []string{store.public, store.endpoint + "/" + store.bucket} {
		if base == "" || base == "/"+store.bucket {
			continue
		}

		if key, ok := strings.CutPrefix(url, base+"/"); ok && key != "" {
			return key
		}
	}

	return constant.Empty
}
