// Package store keeps the artifacts produced during a studio session (scripts,
// narration and sound effects) in a BoltDB file that lives only as long as the
// session
package store

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tourstudio/tourstudio/internal/apperr"
	"github.com/tourstudio/tourstudio/internal/provider"
)

const (
	scriptBucket    = "scripts"
	narrationBucket = "narration"
	sfxBucket       = "sfx"
	metaBucket      = "meta"

	dbFileName = "session.db"
)

// Meta keys.
const (
	Transcript  = "transcript"
	MusicPrompt = "music_prompt"
)

var sectionBuckets = []string{scriptBucket, narrationBucket, sfxBucket}

var (
	errStoreLocked = &apperr.Error{
		Message: "the session store at %s is locked by another process",
	}

	errNegativeIndex = &apperr.Error{
		Message: "section index %d is negative",
	}
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	dir string
}

// key encodes a section index so that keys sort in index order.
func key(idx int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(idx))

	return b
}

func index(k []byte) int {
	return int(binary.BigEndian.Uint64(k))
}

func (c *Client) put(bucket string, idx int, value []byte) error {
	if idx < 0 {
		return errNegativeIndex.Fmt(idx)
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put(key(idx), value)
	})
}

// get returns a copy of the value since bolt values are only valid inside
// the transaction.
func (c *Client) get(bucket string, idx int) ([]byte, error) {
	var value []byte

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucket)).Get(key(idx))
		if v != nil {
			value = bytes.Clone(v)
		}

		return nil
	})

	return value, err
}

func (c *Client) PutScript(idx int, s provider.Script) error {
	value, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return c.put(scriptBucket, idx, value)
}

func (c *Client) Script(idx int) (provider.Script, bool, error) {
	var s provider.Script

	value, err := c.get(scriptBucket, idx)
	if err != nil || value == nil {
		return s, false, err
	}

	err = json.Unmarshal(value, &s)

	return s, err == nil, err
}

func (c *Client) PutNarration(idx int, audio []byte) error {
	return c.put(narrationBucket, idx, audio)
}

func (c *Client) Narration(idx int) ([]byte, bool, error) {
	value, err := c.get(narrationBucket, idx)

	return value, value != nil, err
}

func (c *Client) AddSoundEffect(idx int, sfx SoundEffect) (int, error) {
	if idx < 0 {
		return 0, errNegativeIndex.Fmt(idx)
	}

	var n int

	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sfxBucket))

		var list []SoundEffect

		if v := b.Get(key(idx)); v != nil {
			if err := json.Unmarshal(v, &list); err != nil {
				return err
			}
		}

		list = append(list, sfx)
		n = len(list)

		value, err := json.Marshal(list)
		if err != nil {
			return err
		}

		return b.Put(key(idx), value)
	})

	return n, err
}

func (c *Client) SoundEffects(idx int) ([]SoundEffect, error) {
	value, err := c.get(sfxBucket, idx)
	if err != nil || value == nil {
		return nil, err
	}

	var list []SoundEffect

	err = json.Unmarshal(value, &list)

	return list, err
}

func (c *Client) PutMeta(k, value string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(metaBucket)).Put([]byte(k), []byte(value))
	})
}

func (c *Client) Meta(k string) (string, error) {
	var value string

	err := c.View(func(tx *bolt.Tx) error {
		value = string(tx.Bucket([]byte(metaBucket)).Get([]byte(k)))
		return nil
	})

	return value, err
}

type entry struct {
	value []byte
	idx   int
}

func (c *Client) Remove(idx int) error {
	if idx < 0 {
		return errNegativeIndex.Fmt(idx)
	}

	return c.Update(func(tx *bolt.Tx) error {
		for _, name := range sectionBuckets {
			b := tx.Bucket([]byte(name))

			var later []entry

			cur := b.Cursor()

			for k, v := cur.Seek(key(idx + 1)); k != nil; k, v = cur.Next() {
				later = append(later, entry{idx: index(k), value: bytes.Clone(v)})
			}

			if err := b.Delete(key(idx)); err != nil {
				return err
			}

			for _, e := range later {
				if err := b.Delete(key(e.idx)); err != nil {
					return err
				}

				if err := b.Put(key(e.idx-1), e.value); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

func (c *Client) Clear() error {
	return c.Update(func(tx *bolt.Tx) error {
		for _, name := range sectionBuckets {
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return err
			}

			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
}

// Close releases the database and removes the session directory.
func (c *Client) Close() error {
	err := c.DB.Close()

	return errors.Join(err, os.RemoveAll(c.dir))
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errStoreLocked.Fmt(pathToDB)
		}

		return nil, err
	}

	return db, nil
}

// NewClient creates an empty session store in a fresh directory under
// parent (the system temp directory when parent is empty).
func NewClient(parent string) (*Client, error) {
	dir, err := os.MkdirTemp(parent, "tourstudio-session-")
	if err != nil {
		return nil, err
	}

	db, err := openDB(filepath.Join(dir, dbFileName))
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	// Create the necessary buckets for storing data
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range append(slices.Clone(sectionBuckets), metaBucket) {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		_ = os.RemoveAll(dir)

		return nil, err
	}

	return &Client{
		DB:  db,
		dir: dir,
	}, nil
}

// Dir is the directory holding the session database.
func (c *Client) Dir() string {
	return c.dir
}
