package minio_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/fstest"
	"github.com/jmgilman/vfs/fs/host"
	"github.com/jmgilman/vfs/fs/vpath"
	vfsminio "github.com/jmgilman/vfs/fs/minio"
)

// setupMinIOContainer starts a MinIO container and returns a client for it.
func setupMinIOContainer(t *testing.T) *minio.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	}

	minioC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start MinIO container")
	t.Cleanup(func() {
		_ = minioC.Terminate(ctx)
	})

	endpoint, err := minioC.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get container endpoint")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err, "failed to create MinIO client")
	return client
}

// newStorageFactory returns a function creating storages over fresh buckets.
func newStorageFactory(t *testing.T, client *minio.Client) func() *vfsminio.Storage {
	var n atomic.Int64
	return func() *vfsminio.Storage {
		bucket := fmt.Sprintf("test-bucket-%d", n.Add(1))
		require.NoError(t, client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}))

		s, err := vfsminio.New(vfsminio.Config{Client: client, Bucket: bucket})
		require.NoError(t, err)
		return s
	}
}

func TestMinioConformance(t *testing.T) {
	client := setupMinIOContainer(t)
	newStorage := newStorageFactory(t, client)

	t.Run("async", func(t *testing.T) {
		fstest.TestSuiteWithConfig(t, func() core.Host {
			return host.NewAsync(newStorage())
		}, fstest.S3TestConfig())
	})
	t.Run("sync", func(t *testing.T) {
		fstest.TestSuiteWithConfig(t, func() core.Host {
			return host.NewSync(newStorage())
		}, fstest.S3TestConfig())
	})
}

func TestVirtualDirectories(t *testing.T) {
	client := setupMinIOContainer(t)
	s := newStorageFactory(t, client)()

	require.NoError(t, s.Mkdir("/dir"))
	_, err := s.Stat("/dir")
	assert.Error(t, err, "an empty virtual directory does not exist")

	require.NoError(t, s.WriteFile("/dir/sub/file.txt", []byte("x")))
	info, err := s.Stat("/dir/sub")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Error(t, s.Remove("/dir/sub"), "non-empty directory must not be removed")
	require.NoError(t, s.Remove("/dir/sub/file.txt"))
	require.NoError(t, s.Remove("/dir/sub"))

	_, err = s.Stat("/dir")
	assert.Error(t, err)
}

func TestRenameDirectory(t *testing.T) {
	client := setupMinIOContainer(t)
	s := newStorageFactory(t, client)()

	for i := 0; i < 25; i++ {
		require.NoError(t, s.WriteFile(vpath.Path(fmt.Sprintf("/old/file-%02d.txt", i)), []byte("data")))
	}
	require.NoError(t, s.Rename("/old", "/new"))

	entries, err := s.ReadDir("/new")
	require.NoError(t, err)
	assert.Len(t, entries, 25)

	_, err = s.ReadDir("/old")
	assert.Error(t, err)
}

func TestChrootIsolation(t *testing.T) {
	client := setupMinIOContainer(t)
	s := newStorageFactory(t, client)()

	require.NoError(t, s.WriteFile("/tenant/a.txt", []byte("a")))
	require.NoError(t, s.WriteFile("/other.txt", []byte("o")))

	scoped := s.Chroot("/tenant")
	entries, err := scoped.ReadDir("/")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name())
}
