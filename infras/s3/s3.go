package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"tourdesk/config"
	"tourdesk/infras/otel"
	"tourdesk/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"
)

// S3 stores agency logos and archived document PDFs. An empty bucketName means the configured bucket.
type S3 interface {
	UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error)
	DownloadFile(ctx context.Context, bucketName, objectName string) (data []byte, err error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
	GetObjectNameFromURL(bucketName, url string) (objectName string)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) bucket(name string) string {
	if name == "" {
		return svc.Config.External.S3.BucketName
	}

	return name
}

// scope opens a span for one object operation and resolves the bucket name.
func (svc *s3Impl) scope(ctx context.Context, op, bucketName, objectKey string) (context.Context, otel.Scope, string) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+"."+op)

	bucketName = svc.bucket(bucketName)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   bucketName,
	})

	return ctx, scope, bucketName
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope, bucketName := svc.scope(ctx, "UploadFileBytes", bucketName, fileName)
	defer scope.End()
	defer scope.TraceIfError(&err)

	objectKey := path.Join(directory, fileName)
	fileReader := bytes.NewReader(fileData)

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(bucketName),
		Key:                aws.String(objectKey),
		Body:               fileReader,
		ContentType:        aws.String(contentType),
		ContentLength:      aws.Int64(fileReader.Size()),
		ContentDisposition: aws.String(fmt.Sprintf("inline; filename=%q", fileName)),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(svc.Config.External.S3.PublicDomain, "/"), objectKey), nil
}

func (svc *s3Impl) DownloadFile(ctx context.Context, bucketName, objectName string) (data []byte, err error) {
	ctx, scope, bucketName := svc.scope(ctx, "DownloadFile", bucketName, objectName)
	defer scope.End()
	defer scope.TraceIfError(&err)

	out, err := svc.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get file from S3: %w", err)
	}
	defer out.Body.Close()

	data, err = io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file from S3: %w", err)
	}

	return data, nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	ctx, scope, bucketName := svc.scope(ctx, "DeleteFile", bucketName, objectName)
	defer scope.End()
	defer scope.TraceIfError(&err)

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(path.Join(directory, objectName)),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// GetObjectNameFromURL maps a public or API URL back to its object key. Unknown URLs give "".
func (svc *s3Impl) GetObjectNameFromURL(bucketName, url string) (objectName string) {
	return objectNameFromURL(svc.Config.External.S3.PublicDomain, svc.Config.External.S3.APIEndpoint, svc.bucket(bucketName), url)
}

func objectNameFromURL(publicDomain, apiEndpoint, bucketName, url string) string {
	prefixes := []string{
		strings.TrimSuffix(publicDomain, "/") + "/",
		fmt.Sprintf("%s/%s/", strings.TrimSuffix(apiEndpoint, "/"), bucketName),
	}

	for _, prefix := range prefixes {
		if prefix == "/" {
			continue
		}

		if name, ok := strings.CutPrefix(url, prefix); ok && name != "" {
			return name
		}
	}

	return constant.Empty
}

func New(config *config.Config, otel otel.Otel) S3 {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := config.External.S3.APIEndpoint; endpoint != constant.Empty {
			o.BaseEndpoint = aws.String(endpoint)
		}

		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
