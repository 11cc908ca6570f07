package library

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"font-helper/core/fontsource"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
)

// FileStatus compares one library font between the bucket and the local directory.
type FileStatus struct {
	Path          string   `json:"path"`
	RemotePresent bool     `json:"remote_present"`
	LocalPresent  bool     `json:"local_present"`
	Mismatch      []string `json:"mismatch"`
}

type fileInfo struct {
	size     int64
	modified time.Time
}

// Status lists every font known to either side, sorted by path.
func (s *Service) Status(ctx context.Context) ([]FileStatus, error) {
	var remote, local map[string]fileInfo

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		remote, err = s.remoteIndex(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		local, err = s.localIndex()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	union := make(map[string]struct{}, len(remote)+len(local))
	for k := range remote {
		union[k] = struct{}{}
	}
	for k := range local {
		union[k] = struct{}{}
	}

	out := make([]FileStatus, 0, len(union))
	for key := range union {
		r, inRemote := remote[key]
		l, inLocal := local[key]
		st := FileStatus{Path: key, RemotePresent: inRemote, LocalPresent: inLocal, Mismatch: []string{}}
		if inRemote && inLocal {
			if r.size != l.size {
				st.Mismatch = append(st.Mismatch, fmt.Sprintf("size: remote=%d local=%d", r.size, l.size))
			}
			if l.modified.Before(r.modified) {
				st.Mismatch = append(st.Mismatch, "local copy is older than remote")
			}
		}
		out = append(out, st)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out, nil
}

func (s *Service) remoteIndex(ctx context.Context) (map[string]fileInfo, error) {
	idx := make(map[string]fileInfo)
	opts := minio.ListObjectsOptions{Prefix: s.listPrefix(), Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		rel, ok := s.relative(obj.Key)
		if !ok || !fontsource.IsFontFile(rel) {
			continue
		}
		idx[rel] = fileInfo{size: obj.Size, modified: obj.LastModified}
	}
	return idx, nil
}

func (s *Service) localIndex() (map[string]fileInfo, error) {
	idx := make(map[string]fileInfo)
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !fontsource.IsFontFile(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		idx[filepath.ToSlash(rel)] = fileInfo{size: info.Size(), modified: info.ModTime()}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan library dir: %w", err)
	}
	return idx, nil
}
