// Package sthree implements the versioned store interface
// on top of AWS S3 and S3-compatible backends.
package sthree

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"

	"github.com/s3v-cli/s3v/pkg/errors"
	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/storage"
	"github.com/s3v-cli/s3v/pkg/storage/status"
)

// Option configures the S3 store
type Option func(*s3VS)

// Bucket sets the target bucket
func Bucket(bucket string) Option {
	return func(s *s3VS) {
		s.bucket = bucket
	}
}

// Profile selects a shared-credentials profile
func Profile(profile string) Option {
	return func(s *s3VS) {
		s.profile = profile
	}
}

// AWSConfig overrides the AWS client configuration
// (region, custom endpoint for S3 compatibles, ...)
func AWSConfig(cfg *aws.Config) Option {
	return func(s *s3VS) {
		s.awsConfig = cfg
	}
}

// Logger sets a logger for this store
func Logger(l *zap.Logger) Option {
	return func(s *s3VS) {
		if l != nil {
			s.l = l
		}
	}
}

// New builds an S3-backed versioned store
func New(option Option, options ...Option) storage.VersionedStore {
	s := &s3VS{
		awsConfig: aws.NewConfig(),
		l:         zap.NewNop(),
	}
	option(s)
	for _, apply := range options {
		apply(s)
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		Profile:           s.profile,
		SharedConfigState: session.SharedConfigEnable,
		Config:            *s.awsConfig,
	}))
	s.s3 = s3.New(sess)
	s.uploader = s3manager.NewUploaderWithClient(s.s3)
	return s
}

type s3VS struct {
	bucket    string
	profile   string
	awsConfig *aws.Config
	s3        *s3.S3
	uploader  *s3manager.Uploader
	l         *zap.Logger
}

func (s *s3VS) String() string {
	return "s3@" + s.bucket
}

func (s *s3VS) ListVersions(ctx context.Context, keyOrPrefix string, fn storage.PageFunc) error {
	input := &s3.ListObjectVersionsInput{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(keyOrPrefix),
	}

	pages := 0
	err := s.s3.ListObjectVersionsPagesWithContext(ctx, input,
		func(page *s3.ListObjectVersionsOutput, lastPage bool) bool {
			pages++
			records := make([]model.VersionRecord, 0, len(page.Versions)+len(page.DeleteMarkers))
			for _, v := range page.Versions {
				records = append(records, model.VersionRecord{
					Key:          aws.StringValue(v.Key),
					VersionID:    aws.StringValue(v.VersionId),
					LastModified: aws.TimeValue(v.LastModified).UTC(),
					Size:         aws.Int64Value(v.Size),
					ETag:         strings.Trim(aws.StringValue(v.ETag), `"`),
					StorageClass: aws.StringValue(v.StorageClass),
					IsLatest:     aws.BoolValue(v.IsLatest),
				})
			}
			for _, m := range page.DeleteMarkers {
				records = append(records, model.VersionRecord{
					Key:            aws.StringValue(m.Key),
					VersionID:      aws.StringValue(m.VersionId),
					LastModified:   aws.TimeValue(m.LastModified).UTC(),
					IsLatest:       aws.BoolValue(m.IsLatest),
					IsDeleteMarker: true,
				})
			}
			return fn(records, lastPage)
		})
	if err != nil {
		return toSentinelErrors(err)
	}
	s.l.Debug("listed object versions",
		zap.String("prefix", keyOrPrefix),
		zap.Int("pages", pages),
	)
	return nil
}

func (s *s3VS) Get(ctx context.Context, key, versionID string) (io.ReadCloser, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}
	obj, err := s.s3.GetObjectWithContext(ctx, input)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	return obj.Body, nil
}

func (s *s3VS) Put(ctx context.Context, key string, rdr io.Reader) (model.VersionRecord, error) {
	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   rdr,
	})
	if err != nil {
		return model.VersionRecord{}, toSentinelErrors(err)
	}
	if aws.StringValue(out.VersionID) == "" {
		return model.VersionRecord{}, errors.Newf("bucket %s returned no version id on upload", s.bucket).Wrap(status.ErrVersioningDisabled)
	}
	return model.VersionRecord{
		Key:          key,
		VersionID:    aws.StringValue(out.VersionID),
		LastModified: time.Now().UTC(),
		ETag:         strings.Trim(aws.StringValue(out.ETag), `"`),
		IsLatest:     true,
	}, nil
}

func (s *s3VS) Delete(ctx context.Context, key string) (model.VersionRecord, error) {
	out, err := s.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return model.VersionRecord{}, toSentinelErrors(err)
	}
	if !aws.BoolValue(out.DeleteMarker) {
		return model.VersionRecord{}, errors.Newf("bucket %s deleted %s without a delete marker", s.bucket, key).Wrap(status.ErrVersioningDisabled)
	}
	return model.VersionRecord{
		Key:            key,
		VersionID:      aws.StringValue(out.VersionId),
		LastModified:   time.Now().UTC(),
		IsLatest:       true,
		IsDeleteMarker: true,
	}, nil
}

func (s *s3VS) DeleteVersion(ctx context.Context, key, versionID string) error {
	_, err := s.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket:    aws.String(s.bucket),
		Key:       aws.String(key),
		VersionId: aws.String(versionID),
	})
	return toSentinelErrors(err)
}

// Buckets enumerates the buckets visible to the current credentials
func (s *s3VS) Buckets(ctx context.Context) ([]storage.BucketInfo, error) {
	out, err := s.s3.ListBucketsWithContext(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	buckets := make([]storage.BucketInfo, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, storage.BucketInfo{
			Name:      aws.StringValue(b.Name),
			CreatedAt: aws.TimeValue(b.CreationDate),
		})
	}
	return buckets, nil
}

// CheckVersioning verifies that versioning is enabled on the bucket.
// The tool assumes versioning: soft deletes and history need it.
func (s *s3VS) CheckVersioning(ctx context.Context) error {
	out, err := s.s3.GetBucketVersioningWithContext(ctx, &s3.GetBucketVersioningInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return toSentinelErrors(err)
	}
	if aws.StringValue(out.Status) != s3.BucketVersioningStatusEnabled {
		return errors.Newf("bucket %s reports versioning status %q", s.bucket, aws.StringValue(out.Status)).Wrap(status.ErrVersioningDisabled)
	}
	return nil
}
