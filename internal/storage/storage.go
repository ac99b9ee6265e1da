package storage

import (
	"artshare-backend/config"
	"fmt"
	"mime/multipart"
)

// Storage 是文件上传后端的统一接口，返回可存库的URL或相对路径
type Storage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}

// New 按配置选择存储后端
func New() (Storage, error) {
	cfg := config.AppConfig
	switch cfg.StorageBackend {
	case "s3":
		return NewS3Client(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return NewGCSClient(cfg.GCSProjectID, cfg.GCSBucketName, cfg.GCSCredentialsFile)
	case "local":
		return NewLocalStorage(cfg.LocalStoragePath)
	default:
		return nil, fmt.Errorf("未知的存储后端: %s", cfg.StorageBackend)
	}
}
