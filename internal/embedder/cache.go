package embedder

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.etcd.io/bbolt"
)

var bucketEmbeddings = []byte("embeddings")

// bbolt-backed embedding cache
type BoltCache struct {
	db *bbolt.DB
}

func OpenBoltCache(path string) (*BoltCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEmbeddings)
		return err
	})
	if err != nil {
		db.Close() //nolint:errcheck,gosec
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltCache{db: db}, nil
}

func (c *BoltCache) GetMany(keys []string) (map[string][]float32, error) {
	out := make(map[string][]float32, len(keys))

	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)

		for _, k := range keys {
			if raw := b.Get([]byte(k)); raw != nil {
				out[k] = decodeVector(raw)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c *BoltCache) PutMany(entries map[string][]float32) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)

		for k, v := range entries {
			if err := b.Put([]byte(k), encodeVector(v)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *BoltCache) Close() error {
	return c.db.Close()
}

// keys include model and dimension so switching either never serves stale vectors
func cacheKey(model string, dim int, text string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(dim)))
	h.Write([]byte{0})
	h.Write([]byte(text))

	return hex.EncodeToString(h.Sum(nil))
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}

	return buf
}

func decodeVector(raw []byte) []float32 {
	v := make([]float32, len(raw)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}

	return v
}
