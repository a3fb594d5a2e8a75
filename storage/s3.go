package storage

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string // empty for AWS itself
	Key      string
	Secret   string
	Prefix   string // Prefix in the S3 bucket
}

type S3Store struct {
	s3Client *s3.S3
	bucket   string
	prefix   string
}

func NewS3Store(opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket name empty")
	}
	cfg := &aws.Config{
		Region: aws.String(opts.Region),
	}
	if opts.Key != "" {
		cfg.Credentials = credentials.NewStaticCredentials(opts.Key, opts.Secret, "")
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return &S3Store{
		s3Client: s3.New(sess),
		bucket:   opts.Bucket,
		prefix:   opts.Prefix,
	}, nil
}

func (s *S3Store) getRemotePath(key string) string {
	return s.prefix + strings.TrimPrefix(key, "/") + ".json"
}

func (s *S3Store) Get(key string) (string, bool, error) {
	resp, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(s.getRemotePath(key)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return "", false, nil
		}
		return "", false, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (s *S3Store) Set(key, value string) error {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         aws.String(s.getRemotePath(key)),
		ContentType: aws.String("application/json"),
		Body:        bytes.NewReader([]byte(value)),
	})
	return err
}
