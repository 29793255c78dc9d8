package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	vfserrors "github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/minio/internal/errs"
	"github.com/jmgilman/vfs/fs/minio/internal/pathutil"
	"github.com/jmgilman/vfs/fs/minio/internal/types"
	"github.com/jmgilman/vfs/fs/vpath"
)

var (
	errNotDir   = errors.New("not a directory")
	errNotEmpty = errors.New("directory not empty")
)

// Storage implements core.Storage for MinIO/S3-compatible object stores.
type Storage struct {
	client            *minio.Client
	bucket            string
	prefix            string // Optional prefix for all keys
	partSize          uint64
	renameConcurrency int
}

// New creates a MinIO-backed storage.
// Returns error if configuration is invalid or the client cannot be created.
func New(cfg Config) (*Storage, error) {
	if err := cfg.validate(); err != nil {
		return nil, vfserrors.Wrap(err, vfserrors.CodeInvalidConfig, "invalid config")
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, vfserrors.Wrap(err, vfserrors.CodeNetwork, "failed to create minio client")
		}
	}

	partSize := cfg.PartSize
	if partSize == 0 {
		partSize = defaultPartSize
	}
	renameConcurrency := cfg.MaxRenameConcurrency
	if renameConcurrency <= 0 {
		renameConcurrency = defaultRenameConcurrency
	}

	return &Storage{
		client:            client,
		bucket:            cfg.Bucket,
		prefix:            pathutil.NormalizePrefix(cfg.Prefix),
		partSize:          partSize,
		renameConcurrency: renameConcurrency,
	}, nil
}

// Chroot returns a storage whose root is dir.
func (s *Storage) Chroot(dir vpath.Path) *Storage {
	sub := *s
	sub.prefix = s.key(dir)
	return &sub
}

func (s *Storage) key(p vpath.Path) string {
	return pathutil.JoinPath(s.prefix, p.String())
}

// ReadFile returns the contents of the named object.
func (s *Storage) ReadFile(p vpath.Path) ([]byte, error) {
	ctx := context.Background()
	key := s.key(p)

	// Get size first to pre-allocate exact buffer size
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.PathError("read", p.String(), errs.Translate(err))
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.PathError("read", p.String(), errs.Translate(err))
	}
	defer func() {
		_ = obj.Close()
	}()

	buf := make([]byte, info.Size)
	if _, err := io.ReadFull(obj, buf); err != nil {
		return nil, errs.PathError("read", p.String(), errs.Translate(err))
	}
	return buf, nil
}

// WriteFile uploads data as the named object.
func (s *Storage) WriteFile(p vpath.Path, data []byte) error {
	_, err := s.client.PutObject(context.Background(), s.bucket, s.key(p),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{PartSize: s.partSize},
	)
	return errs.PathError("write", p.String(), errs.Translate(err))
}

// Mkdir is a no-op: directories are virtual.
func (s *Storage) Mkdir(vpath.Path) error {
	return nil
}

// Remove removes the named object. Removing a virtual directory succeeds
// once nothing is stored below it.
func (s *Storage) Remove(p vpath.Path) error {
	ctx := context.Background()
	key := s.key(p)

	isObject, err := s.objectExists(ctx, key)
	if err != nil {
		return errs.PathError("remove", p.String(), err)
	}
	if !isObject {
		hasChildren, err := s.prefixExists(ctx, key)
		if err != nil {
			return errs.PathError("remove", p.String(), err)
		}
		if hasChildren {
			return errs.PathError("remove", p.String(), errNotEmpty)
		}
		return nil
	}

	err = s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	return errs.PathError("remove", p.String(), errs.Translate(err))
}

// Rename moves an object, or every object below a virtual directory.
//
// IMPORTANT: This operation is NOT atomic. It copies first and removes the
// sources afterwards, so a failure can leave objects at both locations.
func (s *Storage) Rename(from, to vpath.Path) error {
	ctx := context.Background()
	oldKey, newKey := s.key(from), s.key(to)

	isObject, err := s.objectExists(ctx, oldKey)
	if err != nil {
		return errs.PathError("rename", from.String(), err)
	}
	if isObject {
		return s.renameObject(ctx, oldKey, newKey, from)
	}

	copied, err := s.parallelCopy(ctx, pathutil.DirPrefix(oldKey), pathutil.DirPrefix(newKey))
	if err != nil {
		return errs.PathError("rename", from.String(), errs.Translate(err))
	}
	if len(copied) == 0 {
		return errs.PathError("rename", from.String(), fs.ErrNotExist)
	}

	toDelete := make(chan minio.ObjectInfo, len(copied))
	for _, key := range copied {
		toDelete <- minio.ObjectInfo{Key: key}
	}
	close(toDelete)

	for result := range s.client.RemoveObjects(ctx, s.bucket, toDelete, minio.RemoveObjectsOptions{}) {
		if result.Err != nil {
			return errs.PathError("rename", from.String(), errs.Translate(result.Err))
		}
	}
	return nil
}

func (s *Storage) renameObject(ctx context.Context, oldKey, newKey string, from vpath.Path) error {
	src := minio.CopySrcOptions{Bucket: s.bucket, Object: oldKey}
	dst := minio.CopyDestOptions{Bucket: s.bucket, Object: newKey}
	if _, err := s.client.CopyObject(ctx, dst, src); err != nil {
		return errs.PathError("rename", from.String(), errs.Translate(err))
	}

	err := s.client.RemoveObject(ctx, s.bucket, oldKey, minio.RemoveObjectOptions{})
	return errs.PathError("rename", from.String(), errs.Translate(err))
}

// parallelCopy copies objects from old to new prefix using a worker pool.
// Returns the list of successfully copied object keys for cleanup.
func (s *Storage) parallelCopy(ctx context.Context, oldPrefix, newPrefix string) ([]string, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.renameConcurrency)

	var copiedMu sync.Mutex
	var copied []string

	for object := range s.client.ListObjects(egCtx, s.bucket, minio.ListObjectsOptions{
		Prefix:    oldPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			_ = eg.Wait()
			return copied, object.Err
		}

		objectKey := object.Key
		eg.Go(func() error {
			newKey := newPrefix + strings.TrimPrefix(objectKey, oldPrefix)
			src := minio.CopySrcOptions{Bucket: s.bucket, Object: objectKey}
			dst := minio.CopyDestOptions{Bucket: s.bucket, Object: newKey}
			if _, err := s.client.CopyObject(egCtx, dst, src); err != nil {
				return fmt.Errorf("copy object %s to %s: %w", objectKey, newKey, err)
			}

			copiedMu.Lock()
			copied = append(copied, objectKey)
			copiedMu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return copied, fmt.Errorf("parallel copy failed: %w", err)
	}
	return copied, nil
}

// ReadDir lists the objects and common prefixes directly below p, sorted
// by name. A prefix with nothing below it does not exist.
func (s *Storage) ReadDir(p vpath.Path) ([]fs.DirEntry, error) {
	ctx := context.Background()
	key := s.key(p)

	if key != s.prefix {
		isObject, err := s.objectExists(ctx, key)
		if err != nil {
			return nil, errs.PathError("readdir", p.String(), err)
		}
		if isObject {
			return nil, errs.PathError("readdir", p.String(), errNotDir)
		}
	}

	prefix := pathutil.DirPrefix(key)
	var entries []fs.DirEntry
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if object.Err != nil {
			return nil, errs.PathError("readdir", p.String(), errs.Translate(object.Err))
		}

		// Skip the directory marker itself
		if object.Key == prefix {
			continue
		}

		name := strings.TrimPrefix(object.Key, prefix)
		isDir := strings.HasSuffix(name, "/")
		name = strings.TrimSuffix(name, "/")
		if name == "" {
			continue
		}
		entries = append(entries, types.NewEntry(name, isDir, object.Size, object.LastModified))
	}

	if len(entries) == 0 && key != s.prefix {
		return nil, errs.PathError("readdir", p.String(), fs.ErrNotExist)
	}

	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

// Stat returns object metadata, or a directory description for a prefix
// that has objects below it. The root always exists.
func (s *Storage) Stat(p vpath.Path) (fs.FileInfo, error) {
	ctx := context.Background()
	key := s.key(p)
	name := path.Base("/" + vpath.Relative(p))

	if key == s.prefix {
		return types.NewDirInfo("/"), nil
	}

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return types.NewFileInfo(name, info.Size, info.LastModified), nil
	}
	if err := errs.Translate(err); !errors.Is(err, fs.ErrNotExist) {
		return nil, errs.PathError("stat", p.String(), err)
	}

	isDir, err := s.prefixExists(ctx, key)
	if err != nil {
		return nil, errs.PathError("stat", p.String(), err)
	}
	if !isDir {
		return nil, errs.PathError("stat", p.String(), fs.ErrNotExist)
	}
	return types.NewDirInfo(name), nil
}

// Type returns FSTypeRemote.
func (s *Storage) Type() core.FSType {
	return core.FSTypeRemote
}

func (s *Storage) objectExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if err := errs.Translate(err); !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	return false, nil
}

// prefixExists reports whether any object is stored below key.
func (s *Storage) prefixExists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:  pathutil.DirPrefix(key),
		MaxKeys: 1,
	})
	first, ok := <-objects
	if !ok {
		return false, nil
	}
	if first.Err != nil {
		return false, errs.Translate(first.Err)
	}
	return true, nil
}

// Compile-time interface check.
var _ core.Storage = (*Storage)(nil)
