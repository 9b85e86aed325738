package vectorstore

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// on-disk layout: magic | version u32 | N u64 | D u32 | N*D float32, all little-endian
const (
	fileMagic   = "IPVX"
	fileVersion = uint32(1)
	headerSize  = 4 + 4 + 8 + 4
)

// writes the store to path atomically (temp file + rename)
func (s *Store) Save(path string) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create index directory: %v", ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", ErrPersistence, err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	w := bufio.NewWriter(tmp)

	if err := s.encode(w); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("%w: failed to write index: %v", ErrPersistence, err)
	}

	if err := w.Flush(); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("%w: failed to flush index: %v", ErrPersistence, err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("%w: failed to sync index: %v", ErrPersistence, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to close index: %v", ErrPersistence, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: failed to rename index: %v", ErrPersistence, err)
	}

	return nil
}

func (s *Store) encode(w io.Writer) error {
	var header [headerSize]byte

	copy(header[0:4], fileMagic)
	binary.LittleEndian.PutUint32(header[4:8], fileVersion)
	binary.LittleEndian.PutUint64(header[8:16], uint64(s.Len()))
	binary.LittleEndian.PutUint32(header[16:20], uint32(s.dim)) //nolint:gosec // dim is positive

	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	var buf [4]byte

	for _, f := range s.data {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))

		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}

	return nil
}

// reads a store from path; dim > 0 requires the file to match it
func Load(path string, dim int) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}

		return nil, fmt.Errorf("%w: failed to open index: %v", ErrPersistence, err)
	}
	defer f.Close() //nolint:errcheck

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat index: %v", ErrPersistence, err)
	}

	r := bufio.NewReader(f)

	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: short header: %v", ErrPersistence, err)
	}

	if string(header[0:4]) != fileMagic {
		return nil, fmt.Errorf("%w: not an index file", ErrPersistence)
	}

	if v := binary.LittleEndian.Uint32(header[4:8]); v != fileVersion {
		return nil, fmt.Errorf("%w: unsupported index version %d", ErrPersistence, v)
	}

	n := binary.LittleEndian.Uint64(header[8:16])
	d := binary.LittleEndian.Uint32(header[16:20])

	if d == 0 {
		return nil, fmt.Errorf("%w: zero dimension in header", ErrPersistence)
	}

	if dim > 0 && int(d) != dim {
		return nil, fmt.Errorf("%w: file has dimension %d, want %d", ErrDimensionMismatch, d, dim)
	}

	// guard against absurd headers before allocating
	payload := info.Size() - headerSize
	if payload < 0 || n > uint64(payload)/4/uint64(d) || uint64(payload) != n*uint64(d)*4 {
		return nil, fmt.Errorf("%w: payload size does not match header (n=%d d=%d)", ErrPersistence, n, d)
	}

	data := make([]float32, n*uint64(d))

	var buf [4]byte

	for i := range data {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("%w: truncated payload: %v", ErrPersistence, err)
		}

		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[:]))
	}

	return &Store{dim: int(d), data: data}, nil
}

// reports whether a file exists at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
