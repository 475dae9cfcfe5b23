// Package snapshot backs up the catalog database to object storage and
// restores it on fresh deployments, so a new instance can serve before
// its first scrape completes.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/brainloxlabs/coursebot-go/internal/logger"
	"github.com/brainloxlabs/coursebot-go/internal/objstore"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// ErrNotFound is returned when no snapshot exists in the bucket.
var ErrNotFound = errors.New("snapshot: not found")

// Config holds snapshot manager configuration.
type Config struct {
	SnapshotKey string // object key, e.g. "snapshots/catalog.db.zst"
	TempDir     string // directory for temporary files, defaults to os.TempDir
}

// Manager synchronizes catalog database snapshots with object storage.
type Manager struct {
	client      *objstore.Client
	config      Config
	logger      *logger.Logger
	mu          sync.RWMutex
	currentETag string
}

// New creates a snapshot manager.
func New(client *objstore.Client, cfg Config, log *logger.Logger) *Manager {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &Manager{
		client: client,
		config: cfg,
		logger: log.WithModule("snapshot"),
	}
}

// Upload writes a consistent copy of the database, compresses it, and
// uploads it. Returns the ETag of the stored snapshot.
func (m *Manager) Upload(ctx context.Context, db *storage.DB) (string, error) {
	snapshotPath := filepath.Join(m.config.TempDir, fmt.Sprintf("catalog_snapshot_%d.db", time.Now().UnixNano()))
	if err := db.CreateSnapshot(ctx, snapshotPath); err != nil {
		return "", fmt.Errorf("snapshot database: %w", err)
	}
	defer os.Remove(snapshotPath)

	compressedPath := snapshotPath + ".zst"
	if err := objstore.CompressFile(snapshotPath, compressedPath); err != nil {
		return "", fmt.Errorf("compress snapshot: %w", err)
	}
	defer os.Remove(compressedPath)

	compressedFile, err := os.Open(compressedPath)
	if err != nil {
		return "", fmt.Errorf("open compressed snapshot: %w", err)
	}
	defer compressedFile.Close()

	etag, err := m.client.Upload(ctx, m.config.SnapshotKey, compressedFile, "application/zstd")
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	m.mu.Lock()
	m.currentETag = etag
	m.mu.Unlock()

	m.logger.WithField("etag", etag).Info("uploaded catalog snapshot")
	return etag, nil
}

// Download fetches the latest snapshot and decompresses it to destPath.
// Returns the snapshot's ETag, or ErrNotFound when the bucket holds no
// snapshot yet.
func (m *Manager) Download(ctx context.Context, destPath string) (string, error) {
	body, etag, err := m.client.Download(ctx, m.config.SnapshotKey)
	if err != nil {
		if errors.Is(err, objstore.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("download snapshot: %w", err)
	}
	defer body.Close()

	compressedPath := filepath.Join(m.config.TempDir, "catalog_snapshot_download.db.zst")
	compressedFile, err := os.Create(compressedPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(compressedFile, body); err != nil {
		compressedFile.Close()
		os.Remove(compressedPath)
		return "", fmt.Errorf("write compressed data: %w", err)
	}
	compressedFile.Close()
	defer os.Remove(compressedPath)

	compressedReader, err := os.Open(compressedPath)
	if err != nil {
		return "", fmt.Errorf("open compressed file: %w", err)
	}
	defer compressedReader.Close()

	if err := objstore.DecompressStream(compressedReader, destPath); err != nil {
		return "", fmt.Errorf("decompress snapshot: %w", err)
	}

	m.mu.Lock()
	m.currentETag = etag
	m.mu.Unlock()

	m.logger.WithField("etag", etag).Info("restored catalog snapshot")
	return etag, nil
}

// RestoreIfMissing downloads a snapshot to dbPath only when no local
// database exists yet. Missing remote snapshots are not an error.
func (m *Manager) RestoreIfMissing(ctx context.Context, dbPath string) error {
	if _, err := os.Stat(dbPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat database: %w", err)
	}

	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	if _, err := m.Download(ctx, dbPath); err != nil {
		if errors.Is(err, ErrNotFound) {
			m.logger.Info("no remote snapshot, starting with empty catalog")
			return nil
		}
		return err
	}
	return nil
}

// HasNewer reports whether the remote snapshot differs from the last
// one this manager uploaded or downloaded.
func (m *Manager) HasNewer(ctx context.Context) (bool, error) {
	etag, err := m.client.HeadObject(ctx, m.config.SnapshotKey)
	if err != nil {
		if errors.Is(err, objstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("head snapshot: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return etag != m.currentETag, nil
}

// CurrentETag returns the ETag of the last snapshot seen.
func (m *Manager) CurrentETag() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentETag
}
