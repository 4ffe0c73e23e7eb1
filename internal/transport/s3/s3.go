package s3

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appConfig "github.com/smaramwbc/smb-speedtest/config"
)

// Transport copies files to and from an S3 bucket. Uploads and downloads
// run single-stream so the measurement stays sequential, matching the
// share transport's behavior.
type Transport struct {
	s3Client   *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
	bucket     string
	prefix     string
}

func New(cfg *appConfig.Config, bucket, prefix string) (*Transport, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required for s3 mode")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.ApiURL != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.ApiURL)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	uploader := manager.NewUploader(s3Client, func(u *manager.Uploader) {
		u.Concurrency = 1
	})
	downloader := manager.NewDownloader(s3Client, func(d *manager.Downloader) {
		d.Concurrency = 1
	})

	return &Transport{
		s3Client:   s3Client,
		uploader:   uploader,
		downloader: downloader,
		bucket:     bucket,
		prefix:     prefix,
	}, nil
}

func (t *Transport) Prepare(ctx context.Context) error {
	_, err := t.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(t.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s is not reachable: %w", t.bucket, err)
	}
	return nil
}

func (t *Transport) Put(ctx context.Context, localPath, name string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", localPath, err)
	}
	defer file.Close()

	_, err = t.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(t.bucket),
		Key:         aws.String(t.key(name)),
		Body:        file,
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", name, err)
	}

	return nil
}

func (t *Transport) Get(ctx context.Context, name, localPath string) error {
	file, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", localPath, err)
	}

	_, err = t.downloader.Download(ctx, file, &s3.GetObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(t.key(name)),
	})
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to download %s from S3: %w", name, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", localPath, err)
	}
	return nil
}

func (t *Transport) Remove(ctx context.Context, name string) error {
	_, err := t.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(t.key(name)),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to delete %s from S3: %w", name, err)
	}
	return nil
}

func (t *Transport) Describe() string {
	if t.prefix == "" {
		return "s3://" + t.bucket
	}
	return "s3://" + t.bucket + "/" + strings.TrimSuffix(t.prefix, "/")
}

func (t *Transport) key(name string) string {
	if t.prefix == "" {
		return name
	}

	prefix := strings.TrimPrefix(t.prefix, "/")
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + name
}
