package storage

import (
	"bytes"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"
)

// S3 archives synthesized audio to a bucket so spoken lines survive
// the working directory.
type S3 struct {
	Bucket string

	svc *s3.S3
}

// NewS3FromEnv builds an archive from S3_* env vars. When
// S3_HOSTNAME is unset the archive is disabled and (nil, nil) is
// returned; a partially configured environment is an error.
func NewS3FromEnv() (*S3, error) {
	endpoint, exists := os.LookupEnv("S3_HOSTNAME")
	if !exists {
		return nil, nil
	}
	region, exists := os.LookupEnv("S3_REGION")
	if !exists {
		region = "auto"
	}
	access, exists := os.LookupEnv("S3_ACCESS")
	if !exists {
		return nil, fmt.Errorf("missing env var S3_ACCESS")
	}
	secret, exists := os.LookupEnv("S3_SECRET")
	if !exists {
		return nil, fmt.Errorf("missing env var S3_SECRET")
	}
	bucket, exists := os.LookupEnv("S3_BUCKET")
	if !exists {
		return nil, fmt.Errorf("missing env var S3_BUCKET")
	}

	logrus.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"region":   region,
		"access":   access[:4],
		"bucket":   bucket,
	}).Infoln("s3 archive configuration")

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(access, secret, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to s3; %w", err)
	}

	return &S3{
		Bucket: bucket,
		svc:    s3.New(sess),
	}, nil
}

// Archive uploads one audio payload under the provided key.
func (s *S3) Archive(key string, audio []byte) error {
	_, err := s.svc.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(audio),
	})
	if err != nil {
		return fmt.Errorf("failed putobject; %w", err)
	}

	return nil
}
