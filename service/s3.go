package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/boogo/backend/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoverService stores book cover images in S3 and points the book's
// coverImage field at the uploaded object.
type CoverService struct {
	client *s3.Client
	bucket string
	region string
	Books  BookRepository
}

func NewCoverService(ctx context.Context, books BookRepository, bucket, region, accessKeyID, secretAccessKey string) (*CoverService, error) {
	if bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is required")
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKeyID != "" && secretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &CoverService{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		Books:  books,
	}, nil
}

// UploadCover stores the image under covers/ and rewrites the book's
// cover URL. The object key is random so re-uploads never collide.
func (s *CoverService) UploadCover(ctx context.Context, bookID primitive.ObjectID, originalFilename string, body io.Reader, contentType string) (*models.Book, error) {
	book, err := s.Books.ByID(ctx, bookID)
	if err != nil {
		return nil, Internal("failed to load book", err)
	}
	if book == nil {
		return nil, NotFound("Book not found")
	}

	ext := filepath.Ext(originalFilename)
	key := "covers/" + bookID.Hex() + "/" + uuid.New().String() + ext
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, Internal("failed to upload cover image", err)
	}

	book.CoverImage = s.objectURL(key)
	if err := s.Books.Update(ctx, book); err != nil {
		return nil, Internal("failed to update book cover", err)
	}
	return book, nil
}

func (s *CoverService) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
