package testutils

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/database"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/utils"
)

// MockDownloader writes fake files into the job directory.
// Files maps a URL to the file names produced for it; URLs listed in Errors fail.
type MockDownloader struct {
	mu sync.Mutex

	Files  map[string][]string
	Errors map[string]error
	// FileSize is the size of every written file; 0 means a few bytes.
	FileSize int64

	Jobs []downloader.Job
}

var _ downloader.Downloader = (*MockDownloader)(nil)

func NewMockDownloader() *MockDownloader {
	return &MockDownloader{
		Files:  make(map[string][]string),
		Errors: make(map[string]error),
	}
}

func (m *MockDownloader) Download(_ context.Context, job *downloader.Job) (*downloader.Result, error) {
	m.mu.Lock()
	m.Jobs = append(m.Jobs, *job)
	err := m.Errors[job.URL]
	names := m.Files[job.URL]
	size := m.FileSize
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, utils.ErrNoFiles
	}

	if size <= 0 {
		size = 4
	}
	result := &downloader.Result{}
	for _, name := range names {
		path := filepath.Join(job.Dir, name)
		if err := os.WriteFile(path, make([]byte, size), 0o600); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}
	return result, nil
}

func (m *MockDownloader) Calls() []downloader.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]downloader.Job(nil), m.Jobs...)
}

// MockLinkStore is an in-memory database.LinkStore.
type MockLinkStore struct {
	mu    sync.Mutex
	Links map[string]database.CallbackLink
	Err   error
}

var _ database.LinkStore = (*MockLinkStore)(nil)

func NewMockLinkStore() *MockLinkStore {
	return &MockLinkStore{Links: make(map[string]database.CallbackLink)}
}

func (m *MockLinkStore) SaveLink(_ context.Context, url, platform string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	key := database.LinkKey(url, platform)
	m.Links[key] = database.CallbackLink{Key: key, URL: url, Platform: platform}
	return key, nil
}

func (m *MockLinkStore) GetLink(_ context.Context, key string) (database.CallbackLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	link, ok := m.Links[key]
	if !ok {
		return database.CallbackLink{}, utils.ErrLinkExpired
	}
	return link, nil
}

func (*MockLinkStore) PurgeExpired(context.Context) (int64, error) { return 0, nil }
