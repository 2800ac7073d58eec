package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/d8barcelos/file-watcher/internal/config"
	"github.com/d8barcelos/file-watcher/internal/watch"
)

// s3Uploader is the part of the S3 upload manager the forwarder uses.
type s3Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3 batches a cycle's records and uploads them as one NDJSON object per
// non-empty cycle. Objects are keyed
//
//	<prefix>/<watchID>/<runID>/<timestamp>-<seq>.ndjson
//
// so each run's uploads sort chronologically within their own folder.
type S3 struct {
	uploader s3Uploader
	bucket   string
	prefix   string
	watchID  string
	runID    string
	dir      string
	clock    watch.Clock

	pending []Record
	seq     int
}

// NewS3 creates an S3 forwarder from the forward config. Region, endpoint,
// and static credentials are optional; anything unset falls back to the
// default AWS credential chain.
func NewS3(ctx context.Context, cfg config.ForwardConfig, watchID, runID, dir string, clock watch.Clock) (*S3, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 forwarder requires s3_bucket to be set")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3Bucket,
		prefix:   cfg.S3Prefix,
		watchID:  watchID,
		runID:    runID,
		dir:      dir,
		clock:    clock,
	}, nil
}

// Emit queues the event's record for the next flush.
func (s *S3) Emit(event watch.Event) error {
	s.pending = append(s.pending, newRecord(s.watchID, s.dir, event))
	return nil
}

// Flush uploads the queued records as a single NDJSON object. A cycle with
// no events uploads nothing. On failure the records stay queued.
func (s *S3) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range s.pending {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding event record: %w", err)
		}
	}

	key := s.objectKey()
	_, err := s.uploader.Upload(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("uploading events to s3://%s/%s: %w", s.bucket, key, err)
	}

	s.pending = s.pending[:0]
	s.seq++
	return nil
}

func (s *S3) objectKey() string {
	ts := s.clock.Now().UTC().Format("20060102T150405Z")
	return path.Join(s.prefix, s.watchID, s.runID, fmt.Sprintf("%s-%06d.ndjson", ts, s.seq))
}

// Compile-time checks that S3 implements watch.Sink and watch.Flusher
var (
	_ watch.Sink    = (*S3)(nil)
	_ watch.Flusher = (*S3)(nil)
)
