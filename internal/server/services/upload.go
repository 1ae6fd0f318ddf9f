package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/server/config"
	"github.com/google/uuid"
	"github.com/juju/clock"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// UploadURLTTL bounds how long a presigned PUT stays usable.
const UploadURLTTL = 15 * time.Minute

// uploadPrefixes maps an upload kind to its key prefix.
var uploadPrefixes = map[string]string{
	"person":        "people",
	"research-area": "research-areas",
	"logo":          "logos",
}

type UploadInput struct {
	Kind        string `json:"kind" validate:"required"`
	ContentType string `json:"contentType"`
}

// UploadTicket tells the client where to PUT the file and which URL to
// store in the photo or logo field afterwards.
type UploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	URL       string `json:"url"`
}

type UploadService struct {
	config *config.Config
	clock  clock.Clock
}

func NewUploadService(cfg *config.Config, clk clock.Clock) *UploadService {
	return &UploadService{config: cfg, clock: clk}
}

func (s *UploadService) Enabled() bool {
	return s.config.UploadsEnabled()
}

func (s *UploadService) storageKey(prefix string) string {
	d := s.clock.Now()
	return fmt.Sprintf("%s/%d/%d/%d/%v", prefix, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *UploadService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// Presign issues a presigned PUT for a new object of the given kind.
func (s *UploadService) Presign(ctx context.Context, in UploadInput) (*UploadTicket, error) {
	if !s.Enabled() {
		return nil, common.ErrUploadsDisabled
	}

	in.Kind = trimmed(in.Kind)
	in.ContentType = trimmed(in.ContentType)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	prefix, ok := uploadPrefixes[in.Kind]
	if !ok {
		return nil, common.NewValidationError("Invalid upload kind")
	}
	if in.ContentType != "" && !strings.HasPrefix(in.ContentType, "image/") {
		return nil, common.NewValidationError("Only images can be uploaded")
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := s.storageKey(prefix)
	put := &s3.PutObjectInput{Bucket: &bucket, Key: &key}
	if in.ContentType != "" {
		put.ContentType = aws.String(in.ContentType)
	}

	req, err := presignPutObject(presignClient, ctx, put, s3.WithPresignExpires(UploadURLTTL))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	public, err := s.publicURL(key, req.URL)
	if err != nil {
		return nil, fmt.Errorf("public url: %w", err)
	}

	return &UploadTicket{Key: key, UploadURL: req.URL, URL: public}, nil
}

// publicURL is where the object can be read once uploaded: under the
// configured public base, else the presigned URL without its signature.
func (s *UploadService) publicURL(key, presigned string) (string, error) {
	if base := s.config.S3PublicBaseURL; base != "" {
		return strings.TrimRight(base, "/") + "/" + key, nil
	}

	u, err := url.Parse(presigned)
	if err != nil {
		return "", err
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("presigned url %q is not absolute", presigned)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
