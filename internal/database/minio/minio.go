package minio

import (
	"context"
	"fmt"
	"io"
	"log"

	"gallery-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var MinioClient *minio.Client

func InitMinioClient(cfg *config.MinIOConfig) error {
	var err error

	MinioClient, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		log.Printf("Error initializing MinIO client: %v", err)
		return err
	}

	// Check if buckets exist and create them if they don't
	bucketsToCreate := []string{cfg.ImageBucket, cfg.ProfilePicBucket}
	for _, bucket := range bucketsToCreate {
		exists, err := MinioClient.BucketExists(context.Background(), bucket)
		if err != nil {
			log.Printf("Error checking if bucket %s exists: %v", bucket, err)
			return err
		}

		if !exists {
			err = MinioClient.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{
				Region: cfg.Region,
			})
			if err != nil {
				log.Printf("Error creating bucket %s: %v", bucket, err)
				return err
			}
			log.Printf("Created bucket: %s", bucket)
		}
	}

	log.Println("Successfully initialized MinIO client")
	return nil
}

// Bucket is a long-lived handle on one MinIO bucket. Object addresses are
// deterministic public URLs of the form <public-endpoint>/<bucket>/<name>.
type Bucket struct {
	client     *minio.Client
	name       string
	publicBase string
}

func NewBucket(name, publicEndpoint string) *Bucket {
	return &Bucket{
		client:     MinioClient,
		name:       name,
		publicBase: publicEndpoint,
	}
}

// ObjectURL returns the public address of an object in this bucket.
func (b *Bucket) ObjectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", b.publicBase, b.name, objectName)
}

// Upload is an open upload session against the bucket. Bytes written to it
// stream into the object; Close completes the transfer and reports the
// result of the whole upload.
type Upload struct {
	pw   *io.PipeWriter
	done chan error
}

func (u *Upload) Write(p []byte) (int, error) {
	return u.pw.Write(p)
}

// Close finishes the session. It blocks until the object is fully committed
// and returns the upload error, if any.
func (u *Upload) Close() error {
	if err := u.pw.Close(); err != nil {
		return err
	}
	return <-u.done
}

// CloseWithError aborts the session. The transfer fails with the given
// cause and no object is committed under the session's name.
func (u *Upload) CloseWithError(err error) error {
	u.pw.CloseWithError(err)
	<-u.done
	return nil
}

// OpenUpload opens a streaming upload session for the given object name and
// content type. The object does not become visible until the session is
// closed successfully.
func (b *Bucket) OpenUpload(ctx context.Context, objectName, contentType string) (io.WriteCloser, error) {
	if b.client == nil {
		return nil, fmt.Errorf("minio client is not initialized")
	}

	pr, pw := io.Pipe()
	u := &Upload{pw: pw, done: make(chan error, 1)}

	go func() {
		_, err := b.client.PutObject(ctx, b.name, objectName, pr, -1, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			log.Printf("Error uploading %s to bucket %s: %v", objectName, b.name, err)
			pr.CloseWithError(err)
		}
		u.done <- err
	}()

	return u, nil
}

// Delete removes an object from the bucket.
func (b *Bucket) Delete(ctx context.Context, objectName string) error {
	err := b.client.RemoveObject(ctx, b.name, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		log.Printf("Error deleting %s from bucket %s: %v", objectName, b.name, err)
		return err
	}

	return nil
}

// Get downloads an object from the bucket.
func (b *Bucket) Get(ctx context.Context, objectName string) (*minio.Object, error) {
	object, err := b.client.GetObject(ctx, b.name, objectName, minio.GetObjectOptions{})
	if err != nil {
		log.Printf("Error getting %s from bucket %s: %v", objectName, b.name, err)
		return nil, err
	}

	return object, nil
}
