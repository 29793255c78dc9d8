// Package minio provides a MinIO/S3-compatible core.Storage.
//
// Directories are virtual: they exist while at least one object is stored
// below them, Mkdir is a no-op and removing an empty directory succeeds.
package minio

import (
	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/vfs/errors"
)

const (
	defaultPartSize          = 5 * 1024 * 1024
	defaultRenameConcurrency = 10
)

// Config holds MinIO storage configuration.
type Config struct {
	// Endpoint is the MinIO server URL (e.g., "localhost:9000")
	Endpoint string

	// Bucket is the S3 bucket name
	Bucket string

	// AccessKey is the access key ID for authentication
	AccessKey string

	// SecretKey is the secret access key for authentication
	SecretKey string

	// UseSSL enables HTTPS connections
	UseSSL bool

	// Prefix is an optional prefix for all object keys (for namespacing)
	Prefix string

	// Client is an optional pre-configured MinIO client
	// If provided, Endpoint/AccessKey/SecretKey are ignored
	Client *minio.Client

	// PartSize is the part size used for multipart uploads
	// Default: 5MB (the S3 minimum)
	PartSize uint64

	// MaxRenameConcurrency limits concurrent copies during directory rename
	// Default: 10
	MaxRenameConcurrency int
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + Bucket + AccessKey + SecretKey) must be provided.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return errors.New(errors.CodeInvalidConfig, "bucket is required")
	}
	if c.PartSize != 0 && c.PartSize < defaultPartSize {
		return errors.Newf(errors.CodeInvalidConfig, "part size must be at least %d bytes", defaultPartSize)
	}

	// If Client is provided, we're done (other fields are ignored)
	if c.Client != nil {
		return nil
	}

	if c.Endpoint == "" {
		return errors.New(errors.CodeInvalidConfig, "endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return errors.New(errors.CodeInvalidConfig, "access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return errors.New(errors.CodeInvalidConfig, "secret key is required when client is not provided")
	}

	return nil
}
