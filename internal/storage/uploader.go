package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	appconfig "recipe-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const defaultContentType = "image/jpeg"

var (
	// ErrNotConfigured means no object storage connection is configured.
	ErrNotConfigured = errors.New("object storage is not configured")
	// ErrInvalidImage means the payload decoded to nothing usable.
	ErrInvalidImage = errors.New("invalid image data")
	// ErrUploadFailed wraps store-side failures. Handlers surface it as a
	// distinct upload error, never as a generic server error.
	ErrUploadFailed = errors.New("upload failed")
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// Uploader persists recipe images to an S3-compatible object store and
// returns publicly resolvable URLs.
type Uploader struct {
	client    s3API
	bucket    string
	publicURL string
}

func NewUploader(cfg *appconfig.Config) (*Uploader, error) {
	u := &Uploader{bucket: cfg.S3Bucket, publicURL: publicBase(cfg)}
	if cfg.S3Endpoint == "" {
		// Left unconfigured; Upload reports ErrNotConfigured.
		return u, nil
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	u.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})
	return u, nil
}

func publicBase(cfg *appconfig.Config) string {
	if cfg.S3PublicURL != "" {
		return strings.TrimRight(cfg.S3PublicURL, "/")
	}
	return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
}

// EnsureBucket creates the image bucket if it does not exist yet. Recipe
// images must be directly linkable, so the bucket allows public reads.
func (u *Uploader) EnsureBucket(ctx context.Context) error {
	if u.client == nil {
		return ErrNotConfigured
	}
	_, err := u.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(u.bucket),
		ACL:    types.BucketCannedACLPublicRead,
	})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return nil
}

// Upload decodes the image payload, writes it under a collision-resistant
// key and returns the public URL once the store has acknowledged the write.
func (u *Uploader) Upload(ctx context.Context, imageData, baseName string) (string, error) {
	if u.client == nil {
		return "", ErrNotConfigured
	}

	contentType, data, err := ParseImageData(imageData)
	if err != nil {
		return "", err
	}

	key := ObjectKey(baseName)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return u.publicURL + "/" + key, nil
}

// ParseImageData accepts either a data URI ("data:image/png;base64,...") or
// a bare base64 string and returns the declared content type and the decoded
// bytes. The content type defaults to image/jpeg when not declared.
func ParseImageData(imageData string) (string, []byte, error) {
	contentType := defaultContentType
	payload := imageData

	if prefix, rest, found := strings.Cut(imageData, ","); found {
		payload = rest
		if ct, ok := strings.CutPrefix(prefix, "data:"); ok {
			if semi := strings.Index(ct, ";"); semi >= 0 {
				ct = ct[:semi]
			}
			if ct != "" {
				contentType = ct
			}
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return "", nil, ErrInvalidImage
	}
	return contentType, data, nil
}

// ObjectKey builds a name that is unique with very high probability so
// near-simultaneous uploads cannot collide without a coordination step.
func ObjectKey(baseName string) string {
	return fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.Intn(10000), baseName)
}
