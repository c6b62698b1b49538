package dic

import (
	"fmt"
	"os"
	"sync"
)

// Storage is the backing store of a dictionary: a read-only memory mapping
// of a dictionary file.
//
// The mapped bytes must never be written to. Close unmaps the file; any slice
// obtained from Bytes is invalid afterwards.
type Storage struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	data   []byte
	mapped bool
	closed bool
}

// Map opens a dictionary file and maps it into memory, read-only.
// There is no fallback to reading the file: if the file cannot be mapped,
// Map fails.
//
// Important: Always call Close() when done to unmap the file.
func Map(path string) (*Storage, error) {
	//nolint:gosec // G304: dictionary path is provided by the client on purpose
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat dictionary: %w", err)
	}
	if stat.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("dictionary path %s is a directory", path)
	}
	if stat.Size() == 0 {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	data, err := mmapFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}
	tracer().P("path", path).Debugf("mapped %d bytes", len(data))
	return &Storage{
		path:   path,
		file:   file,
		data:   data,
		mapped: true,
	}, nil
}

// InMemory wraps a dictionary image held in Go memory. It is intended for
// dictionaries fresh from a Builder (e.g., for verification) and for tests.
func InMemory(image []byte) *Storage {
	return &Storage{path: "<memory>", data: image}
}

// Bytes returns the complete storage. The slice must not be modified and
// must not be used after Close.
func (st *Storage) Bytes() []byte {
	return st.data
}

// Size returns the size of the storage in bytes.
func (st *Storage) Size() int {
	return len(st.data)
}

// Path returns the path of the underlying file.
func (st *Storage) Path() string {
	return st.path
}

// IsMapped is true for storage backed by a memory mapping.
func (st *Storage) IsMapped() bool {
	return st.mapped
}

// Closed is true after Close has been called.
func (st *Storage) Closed() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.closed
}

// Close unmaps and closes the file. Calling Close more than once is a no-op.
func (st *Storage) Close() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return nil
	}
	st.closed = true
	var err error
	if st.mapped && st.data != nil {
		err = munmapFile(st.data)
	}
	st.data = nil
	if st.file != nil {
		if closeErr := st.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	tracer().P("path", st.path).Debugf("storage closed")
	return err
}
