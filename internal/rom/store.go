package rom

import (
	"errors"
	"fmt"
	"runtime"
)

// MaxImages is the number of ROM images a header can address (digits 0-9).
const MaxImages = 10

// ErrOutOfMemory reports that an image buffer could not be allocated.
var ErrOutOfMemory = errors.New("insufficient memory for ROM image")

// Store owns the image buffers of one compilation. Every image has the same
// size, 2^addressBits bytes.
type Store struct {
	size   int
	limit  int
	used   int
	images [MaxImages][]byte
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMemoryLimit caps the total number of bytes the store may allocate.
// Zero or a negative value means no limit.
func WithMemoryLimit(n int) StoreOption {
	return func(s *Store) {
		s.limit = n
	}
}

// NewStore returns an empty store for images addressed by addressBits bits.
func NewStore(addressBits int, opts ...StoreOption) (*Store, error) {
	if addressBits < 1 || addressBits > MaxAddressBits {
		return nil, fmt.Errorf("address width %d out of range 1-%d", addressBits, MaxAddressBits)
	}
	s := &Store{size: 1 << uint(addressBits)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Size returns the length in bytes of every image.
func (s *Store) Size() int { return s.size }

// Allocate creates the zero-filled buffer for image idx. Allocating an image
// that already exists is a no-op.
func (s *Store) Allocate(idx int) error {
	if idx < 0 || idx >= MaxImages {
		return fmt.Errorf("image %d out of range 0-%d", idx, MaxImages-1)
	}
	if s.images[idx] != nil {
		return nil
	}
	if s.limit > 0 && s.used+s.size > s.limit {
		return fmt.Errorf("image %d needs %d bytes, %d of %d in use: %w", idx, s.size, s.used, s.limit, ErrOutOfMemory)
	}
	buf, err := allocBytes(s.size)
	if err != nil {
		return fmt.Errorf("image %d: %w", idx, err)
	}
	s.images[idx] = buf
	s.used += s.size
	return nil
}

func allocBytes(n int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			buf, err = nil, ErrOutOfMemory
		}
	}()
	return make([]byte, n), nil
}

// Get returns the buffer of image idx and whether it was allocated.
func (s *Store) Get(idx int) ([]byte, bool) {
	if idx < 0 || idx >= MaxImages || s.images[idx] == nil {
		return nil, false
	}
	return s.images[idx], true
}

// Indices lists the allocated images in ascending order.
func (s *Store) Indices() []int {
	var out []int
	for i, img := range s.images {
		if img != nil {
			out = append(out, i)
		}
	}
	return out
}

// Release drops every image buffer.
func (s *Store) Release() {
	for i := range s.images {
		s.images[i] = nil
	}
	s.used = 0
}
