package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/h4d1s/AvtoNetApi/internal/config"
)

// s3ImageStore keeps upload "directories" as object key prefixes
// (uploads/<listingID>/...) in an S3 bucket. Directory operations are
// prefix list+delete, since S3 has no real directories.
type s3ImageStore struct {
	client *s3.Client
	bucket string
}

// NewS3ImageStore creates an S3-backed image store from the AWS settings in
// the config.
func NewS3ImageStore(cfg *config.Config) (IImageStore, error) {
	awsCfg, err := aws_config.LoadDefaultConfig(context.TODO(),
		aws_config.WithRegion(cfg.AwsRegion),
		aws_config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AwsAccessKeyID,
			cfg.AwsSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &s3ImageStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.AwsS3Bucket,
	}, nil
}

func (s *s3ImageStore) prefix(listingID string) string {
	return uploadsPrefix + "/" + listingID + "/"
}

func (s *s3ImageStore) Write(ctx context.Context, listingID, filename string, r io.Reader) (string, error) {
	filename = filepath.Base(filename)
	key := path.Join(uploadsPrefix, listingID, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put image object %s: %w", key, err)
	}
	return key, nil
}

// listKeys returns every object key under the listing's prefix.
func (s *s3ImageStore) listKeys(ctx context.Context, listingID string) ([]string, error) {
	var keys []string
	var continuationToken *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(s.prefix(listingID)),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list image objects for listing %s: %w", listingID, err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, *obj.Key)
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		continuationToken = out.NextContinuationToken
	}
	return keys, nil
}

func (s *s3ImageStore) deletePrefix(ctx context.Context, listingID string) error {
	keys, err := s.listKeys(ctx, listingID)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
	}
	_, err = s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: objects},
	})
	if err != nil {
		return fmt.Errorf("failed to delete image objects for listing %s: %w", listingID, err)
	}
	return nil
}

func (s *s3ImageStore) ClearDirectory(ctx context.Context, listingID string) error {
	return s.deletePrefix(ctx, listingID)
}

func (s *s3ImageStore) DeleteDirectory(ctx context.Context, listingID string) error {
	return s.deletePrefix(ctx, listingID)
}

func (s *s3ImageStore) Exists(ctx context.Context, listingID string) (bool, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.prefix(listingID)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check image objects for listing %s: %w", listingID, err)
	}
	return len(out.Contents) > 0, nil
}
