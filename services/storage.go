package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// StorageService keeps rendered report artifacts (PDF/PNG) in MinIO. The
// export gate approves the export; the rendered file lands here afterwards.
type StorageService struct {
	appContext.DefaultService

	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool

	urlExpiry time.Duration
}

const STORAGE_SVC = "storage_svc"

func (svc StorageService) Id() string {
	return STORAGE_SVC
}

func (svc *StorageService) Configure(ctx *appContext.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	if svc.endpoint == "" {
		svc.endpoint = "localhost:9000"
	}

	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	if svc.accessKey == "" {
		svc.accessKey = "admin"
	}

	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	if svc.secretKey == "" {
		svc.secretKey = "password123"
	}

	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucketName = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucketName == "" {
		svc.bucketName = "econosfera-reports"
	}

	svc.urlExpiry = time.Hour

	return svc.DefaultService.Configure(ctx)
}

func (svc *StorageService) Start() error {
	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}

	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.Printf("Storage service started with endpoint: %s", svc.endpoint)
	return nil
}

func (svc *StorageService) ensureBucket() error {
	ctx := context.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("Created MinIO bucket: %s", svc.bucketName)
	}

	return nil
}

// UploadReport stores one rendered report under reports/<exportID>.<ext>
// and returns the object key.
func (svc *StorageService) UploadReport(exportID, exportType string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("reports/%s.%s", exportID, strings.ToLower(exportType))

	_, err := svc.client.PutObject(context.Background(), svc.bucketName, key,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: contentType,
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %v", err)
	}

	return key, nil
}

func (svc *StorageService) PresignedReportURL(key string) (string, int64, error) {
	presignedURL, err := svc.client.PresignedGetObject(context.Background(), svc.bucketName, key, svc.urlExpiry, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate presigned URL: %v", err)
	}

	return presignedURL.String(), int64(svc.urlExpiry.Seconds()), nil
}

func (svc *StorageService) DeleteReport(key string) error {
	err := svc.client.RemoveObject(context.Background(), svc.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete report: %v", err)
	}
	return nil
}
