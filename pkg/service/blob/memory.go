package blob

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
)

// Memory is the in-memory BlobStore for development and tests. Tests use
// FailWith to simulate a storage outage and assert that no case mutation is
// committed without its promised document.
type Memory struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failWith error
}

var _ interfaces.BlobStore = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string][]byte),
	}
}

// FailWith makes every subsequent Upload fail with err; pass nil to restore
func (s *Memory) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Object returns the stored bytes for a storageRef
func (s *Memory) Object(storageRef string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[storageRef]
	return data, ok
}

func (s *Memory) Upload(ctx context.Context, fileName, mimeType string, r io.Reader) (*model.BlobRef, error) {
	s.mu.Lock()
	failWith := s.failWith
	s.mu.Unlock()
	if failWith != nil {
		return nil, goerr.Wrap(failWith, "blob store unavailable")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read document bytes")
	}

	storageRef := fmt.Sprintf("mem://%s/%s", uuid.NewString(), fileName)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageRef] = data

	return &model.BlobRef{
		StorageRef: storageRef,
		URL:        storageRef,
		Size:       int64(len(data)),
		MimeType:   mimeType,
	}, nil
}
