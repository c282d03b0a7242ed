package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/internal/logging/types"
)

// SpacesClient wraps the S3 client for DigitalOcean Spaces operations
type SpacesClient struct {
	client     *s3.S3
	bucketName string
	bucketURL  string
	cdnURL     string
	logger     types.Logger
}

// NewSpacesClient creates a new DigitalOcean Spaces client
func NewSpacesClient(cfg *config.Config) (*SpacesClient, error) {
	logger := logging.GetGlobalLogger()

	// Validate configuration
	if cfg.Storage.Spaces.AccessKeyID == "" || cfg.Storage.Spaces.AccessKeySecret == "" {
		return nil, fmt.Errorf("DigitalOcean Spaces credentials are required")
	}

	if cfg.Storage.Spaces.BucketURL == "" {
		return nil, fmt.Errorf("DigitalOcean Spaces bucket URL is required")
	}

	// Extract the region-based endpoint from bucket URL
	// Convert https://talentmesh-assets.nyc3.digitaloceanspaces.com to https://nyc3.digitaloceanspaces.com
	endpoint := fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.Storage.Spaces.Region)

	logger.Info("Configuring DigitalOcean Spaces with endpoint", map[string]interface{}{
		"endpoint":    endpoint,
		"bucket_name": cfg.Storage.Spaces.BucketName,
		"region":      cfg.Storage.Spaces.Region,
	})

	// Configure AWS session for DigitalOcean Spaces
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			cfg.Storage.Spaces.AccessKeyID,
			cfg.Storage.Spaces.AccessKeySecret,
			"",
		),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(cfg.Storage.Spaces.Region),
		S3ForcePathStyle: aws.Bool(false), // Use virtual-hosted-style for DigitalOcean Spaces
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create DigitalOcean Spaces session: %w", err)
	}

	client := s3.New(sess)

	logger.Info("DigitalOcean Spaces client initialized", map[string]interface{}{
		"bucket_name": cfg.Storage.Spaces.BucketName,
		"region":      cfg.Storage.Spaces.Region,
		"endpoint":    endpoint,
	})

	return &SpacesClient{
		client:     client,
		bucketName: cfg.Storage.Spaces.BucketName,
		bucketURL:  cfg.Storage.Spaces.BucketURL,
		cdnURL:     cfg.Storage.Spaces.CDNEndpoint,
		logger:     logger,
	}, nil
}

// UploadResume uploads a resume document and returns its public URL
func (sc *SpacesClient) UploadResume(identity string, fileName string, data []byte, contentType string) (string, error) {
	ext := "pdf"
	if idx := strings.LastIndex(fileName, "."); idx >= 0 && idx < len(fileName)-1 {
		ext = strings.ToLower(fileName[idx+1:])
	}
	objectKey := fmt.Sprintf("resumes/%s/%s.%s", identity, GenerateRequestID(), ext)

	sc.logger.Info("Uploading resume to DigitalOcean Spaces", map[string]interface{}{
		"identity":   identity,
		"object_key": objectKey,
		"size_bytes": len(data),
	})

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := sc.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(sc.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})

	if err != nil {
		sc.logger.Error("Failed to upload resume to DigitalOcean Spaces", map[string]interface{}{
			"identity":   identity,
			"object_key": objectKey,
			"error":      err.Error(),
		})
		return "", fmt.Errorf("failed to upload resume: %w", err)
	}

	resumeURL := sc.publicURL(objectKey)

	sc.logger.Info("Resume uploaded successfully", map[string]interface{}{
		"identity":   identity,
		"object_key": objectKey,
		"resume_url": resumeURL,
	})

	return resumeURL, nil
}

// UploadAvatar uploads a generated avatar image, replacing any previous one
// for the same identity
func (sc *SpacesClient) UploadAvatar(identity string, imageData []byte) (string, error) {
	objectKey := fmt.Sprintf("avatars/%s.png", identity)

	sc.logger.Info("Uploading avatar to DigitalOcean Spaces", map[string]interface{}{
		"identity":   identity,
		"object_key": objectKey,
		"size_bytes": len(imageData),
	})

	// Delete any existing avatar for this identity
	if err := sc.deleteExistingAvatar(identity); err != nil {
		sc.logger.Warn("Failed to delete existing avatar, continuing with upload", map[string]interface{}{
			"identity": identity,
			"error":    err.Error(),
		})
	}

	_, err := sc.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(sc.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/png"),
		ACL:         aws.String("public-read"),
	})

	if err != nil {
		sc.logger.Error("Failed to upload avatar to DigitalOcean Spaces", map[string]interface{}{
			"identity":   identity,
			"object_key": objectKey,
			"error":      err.Error(),
		})
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	avatarURL := sc.publicURL(objectKey)

	sc.logger.Info("Avatar uploaded successfully", map[string]interface{}{
		"identity":   identity,
		"object_key": objectKey,
		"avatar_url": avatarURL,
	})

	return avatarURL, nil
}

// deleteExistingAvatar removes any existing avatar objects for the given identity
func (sc *SpacesClient) deleteExistingAvatar(identity string) error {
	prefix := fmt.Sprintf("avatars/%s.", identity)

	listResult, err := sc.client.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket: aws.String(sc.bucketName),
		Prefix: aws.String(prefix),
	})

	if err != nil {
		return fmt.Errorf("failed to list existing avatars: %w", err)
	}

	for _, obj := range listResult.Contents {
		_, err := sc.client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(sc.bucketName),
			Key:    obj.Key,
		})

		if err != nil {
			sc.logger.Warn("Failed to delete existing avatar object", map[string]interface{}{
				"identity":   identity,
				"object_key": *obj.Key,
				"error":      err.Error(),
			})
		} else {
			sc.logger.Info("Deleted existing avatar", map[string]interface{}{
				"identity":   identity,
				"object_key": *obj.Key,
			})
		}
	}

	return nil
}

// publicURL constructs the public URL for an object, preferring the CDN
func (sc *SpacesClient) publicURL(objectKey string) string {
	if sc.cdnURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(sc.cdnURL, "/"), objectKey)
	}

	if sc.bucketURL != "" {
		bucketBaseURL := strings.TrimRight(sc.bucketURL, "/")
		if !strings.HasPrefix(bucketBaseURL, "https://") {
			bucketBaseURL = "https://" + bucketBaseURL
		}
		return fmt.Sprintf("%s/%s", bucketBaseURL, objectKey)
	}

	// Last resort: construct from region and bucket name
	region := ""
	if sc.client.Config.Region != nil {
		region = *sc.client.Config.Region
	}
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", sc.bucketName, region, objectKey)
}

// IsHealthy checks if the Spaces client can communicate with the service
func (sc *SpacesClient) IsHealthy() bool {
	_, err := sc.client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(sc.bucketName),
	})

	healthy := err == nil
	if !healthy {
		sc.logger.Error("DigitalOcean Spaces health check failed", map[string]interface{}{
			"bucket_name": sc.bucketName,
			"error":       err.Error(),
		})
	}

	return healthy
}
