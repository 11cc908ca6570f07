package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"font-helper/core/fontsource"
	"font-helper/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrBucketMissing is returned when the configured library bucket does not exist.
var ErrBucketMissing = errors.New("library bucket does not exist")

// SyncReport summarises one library sync.
type SyncReport struct {
	Downloaded []string `json:"downloaded"`
	Skipped    []string `json:"skipped"`
	Failed     []string `json:"failed"`
}

// Service mirrors fonts between the remote library bucket and LibraryDir.
type Service struct {
	client     storage.Client
	bucket     string
	prefix     string
	dir        string
	logger     *zap.Logger
	invalidate func()

	sf singleflight.Group
}

// NewService creates a new library service. invalidate, when set, is called
// after a sync that changed the local directory.
func NewService(client storage.Client, cfg storage.Config, dir string, logger *zap.Logger, invalidate func()) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:     client,
		bucket:     cfg.Bucket,
		prefix:     strings.Trim(cfg.Prefix, "/"),
		dir:        fontsource.ExpandHome(dir),
		logger:     logger,
		invalidate: invalidate,
	}
}

// Sync downloads every font in the bucket that is missing or stale locally.
// Concurrent calls share one run.
func (s *Service) Sync(ctx context.Context) (*SyncReport, error) {
	v, err, _ := s.sf.Do("sync", func() (interface{}, error) {
		return s.sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SyncReport), nil
}

func (s *Service) sync(ctx context.Context) (*SyncReport, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBucketMissing, s.bucket)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create library dir: %w", err)
	}

	report := &SyncReport{Downloaded: []string{}, Skipped: []string{}, Failed: []string{}}
	opts := minio.ListObjectsOptions{Prefix: s.listPrefix(), Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return report, fmt.Errorf("list objects: %w", obj.Err)
		}
		rel, ok := s.relative(obj.Key)
		if !ok || !fontsource.IsFontFile(rel) {
			continue
		}

		local := filepath.Join(s.dir, filepath.FromSlash(rel))
		if upToDate(local, obj) {
			report.Skipped = append(report.Skipped, rel)
			continue
		}
		if err := s.download(ctx, obj, local); err != nil {
			s.logger.Warn("Failed to download library font", zap.String("key", obj.Key), zap.Error(err))
			report.Failed = append(report.Failed, rel)
			continue
		}
		s.logger.Info("Downloaded library font", zap.String("key", obj.Key), zap.String("path", local))
		report.Downloaded = append(report.Downloaded, rel)
	}

	if len(report.Downloaded) > 0 && s.invalidate != nil {
		s.invalidate()
	}
	return report, nil
}

// Push uploads local font files into the library, keyed by base name.
func (s *Service) Push(ctx context.Context, paths []string) ([]string, error) {
	var keys []string
	for _, p := range paths {
		if !fontsource.IsFontFile(p) {
			return keys, fmt.Errorf("%s: not a font file", p)
		}
		key, err := s.push(ctx, p)
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *Service) push(ctx context.Context, p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", p, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", p, err)
	}

	key := path.Join(s.prefix, filepath.Base(p))
	if _, err := s.client.PutObject(ctx, s.bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	}); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	s.logger.Info("Uploaded library font", zap.String("key", key))
	return key, nil
}

func (s *Service) listPrefix() string {
	if s.prefix == "" {
		return ""
	}
	return s.prefix + "/"
}

// relative maps an object key to a slash path inside the library dir.
// Keys that would escape the directory are rejected.
func (s *Service) relative(key string) (string, bool) {
	rel := strings.TrimPrefix(key, s.listPrefix())
	if rel == "" || strings.HasSuffix(rel, "/") {
		return "", false
	}
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", false
	}
	return rel, true
}

func upToDate(local string, obj minio.ObjectInfo) bool {
	info, err := os.Stat(local)
	if err != nil {
		return false
	}
	return info.Size() == obj.Size && !info.ModTime().Before(obj.LastModified)
}

func (s *Service) download(ctx context.Context, obj minio.ObjectInfo, local string) error {
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return err
	}
	body, err := s.client.GetObject(ctx, s.bucket, obj.Key, minio.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(local), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), local); err != nil {
		return err
	}
	if !obj.LastModified.IsZero() {
		return os.Chtimes(local, obj.LastModified, obj.LastModified)
	}
	return nil
}
