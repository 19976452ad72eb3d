package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"photochat/configs"
	"photochat/internal/enums"
	"photochat/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioService struct {
	minioClient *minio.Client
	config      *configs.Config
}

var (
	minioService *MinioService
	minioOnce    sync.Once
)

func NewMinioService(config *configs.Config) *MinioService {
	minioOnce.Do(func() {
		endpoint := config.Viper.GetString("minio.endpoint")
		accessKeyID := config.Viper.GetString("minio.access_key_id")
		secretAccessKey := config.Viper.GetString("minio.secret_access_key")
		useSSL := config.Viper.GetBool("minio.use_ssl")

		minioClient, err := minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
			Secure: useSSL,
		})
		if err != nil {
			logger.Fatalf("Failed to create minio client: %v", err)
		}

		bucketName := enums.FILE_BUCKET_CHAT_PHOTOS
		err = minioClient.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
		if err != nil {
			exists, errBucketExists := minioClient.BucketExists(context.Background(), bucketName)
			if errBucketExists == nil && exists {
				logger.Infof("Bucket %s already exists", bucketName)
			} else {
				logger.Fatalf("Failed to create bucket %s: %v", bucketName, err)
			}
		} else {
			logger.Infof("Created bucket %s", bucketName)
		}

		minioService = &MinioService{
			minioClient: minioClient,
			config:      config,
		}
	})

	if minioService == nil {
		logger.Fatalf("MinioService is not initialized")
	}
	return minioService
}

func (ms *MinioService) UploadFile(ctx context.Context, fileName string, file io.Reader, fileSize int64, contentType string, bucketName string) (string, error) {
	info, err := ms.minioClient.PutObject(ctx, bucketName, fileName, file, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logger.Errorf("Failed to put object %s: %v", fileName, err)
		return "", err
	}

	return ms.GetPublicFileUrl(bucketName, info.Key), nil
}

func (ms *MinioService) GetPublicFileUrl(bucketName, fileKey string) string {
	externalEndpoint := ms.config.Viper.GetString("minio.external_endpoint")
	scheme := "http"
	if ms.config.Viper.GetBool("minio.use_ssl") {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, externalEndpoint, bucketName, fileKey)
}
