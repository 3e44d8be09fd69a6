package display

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-raycaster/pkg/core"
)

// UploadTimeout bounds a single frame upload
const UploadTimeout = 10 * time.Second

// S3Config holds object storage settings
type S3Config struct {
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders"
	Region    string
	Endpoint  string // Optional, for S3-compatible stores
	AccessKey string // Optional, falls back to the default credential chain
	SecretKey string
	Scale     int
}

// S3Sink uploads frames as PNG objects
type S3Sink struct {
	client s3iface.S3API
	config S3Config
	logger core.Logger
	now    func() time.Time
}

// NewS3Sink creates a session from config and returns a sink using it
func NewS3Sink(config S3Config, logger core.Logger) (*S3Sink, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("s3 sink requires a bucket")
	}

	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3SinkWithClient(s3.New(sess), config, logger), nil
}

// NewS3SinkWithClient creates a sink around an existing client
func NewS3SinkWithClient(client s3iface.S3API, config S3Config, logger core.Logger) *S3Sink {
	return &S3Sink{
		client: client,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Key returns the object key a frame is stored under
func (s *S3Sink) Key(frame Frame) string {
	sceneName := frame.Scene
	if sceneName == "" {
		sceneName = "default"
	}
	name := fmt.Sprintf("render_%s.png", s.now().UTC().Format("20060102_150405"))
	return path.Join(s.config.Prefix, sceneName, name)
}

// Present encodes the frame and uploads it
func (s *S3Sink) Present(ctx context.Context, frame Frame) error {
	data, err := EncodePNG(frame, s.config.Scale)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := s.Key(frame)
	size := int64(len(data))
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if s.logger != nil {
		s.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, s.config.Bucket, size)
	}
	return nil
}
