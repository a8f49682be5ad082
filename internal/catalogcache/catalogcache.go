// Package catalogcache persists parsed ApiDictionary catalogs across
// process runs, content-hash keyed, so cmd/apisearch does not re-parse a
// large YAML catalog on every invocation. It plays the same role
// internal/ext.Cache plays for funxy's built host binaries, just backed
// by a sqlite table instead of the filesystem (the dictionary itself, not
// a binary, is the cached artifact).
package catalogcache

import (
	"bytes"
	"crypto/sha256"
	"database/sql"
	"encoding/gob"
	"encoding/hex"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/funvibe/apisearch/internal/catalog"
	"github.com/funvibe/apisearch/internal/lowtype"
)

// schemaVersion is bumped whenever the gob-encoded payload's shape
// changes, so a stale cache from an older build is invalidated rather
// than failing to decode (mirrors ext.Cache's codegenVersion).
const schemaVersion = "v1"

func init() {
	// lowtype.Type is a closed interface; gob needs every concrete
	// implementation registered up front to encode/decode the ApiDictionary
	// trees that embed it.
	gob.Register(lowtype.Wildcard{})
	gob.Register(lowtype.Variable{})
	gob.Register(lowtype.IdentityType{})
	gob.Register(lowtype.Arrow{})
	gob.Register(lowtype.Tuple{})
	gob.Register(lowtype.Generic{})
	gob.Register(lowtype.TypeAbbreviation{})
	gob.Register(lowtype.Delegate{})
	gob.Register(lowtype.Choice{})
}

// Cache is a sqlite-backed store mapping a catalog's content hash to its
// decoded ApiDictionary.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if absent) the sqlite database at path and ensures
// its schema exists.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("apisearch: opening catalog cache: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS catalogs (
		key  TEXT PRIMARY KEY,
		data BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("apisearch: creating catalog cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying sqlite connection.
func (c *Cache) Close() error { return c.db.Close() }

// computeKey hashes the source YAML content together with schemaVersion,
// the same content+version hashing ext.Cache.computeKey uses for host
// binaries.
func computeKey(source []byte) string {
	h := sha256.New()
	h.Write(source)
	h.Write([]byte{0})
	h.Write([]byte(schemaVersion))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Lookup returns the decoded ApiDictionary cached for source's content
// hash, if present.
func (c *Cache) Lookup(source []byte) (lowtype.ApiDictionary, bool, error) {
	key := computeKey(source)
	var blob []byte
	err := c.db.QueryRow(`SELECT data FROM catalogs WHERE key = ?`, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return lowtype.ApiDictionary{}, false, nil
	}
	if err != nil {
		return lowtype.ApiDictionary{}, false, fmt.Errorf("apisearch: reading catalog cache: %w", err)
	}
	var dict lowtype.ApiDictionary
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&dict); err != nil {
		return lowtype.ApiDictionary{}, false, fmt.Errorf("apisearch: decoding cached catalog: %w", err)
	}
	return dict, true, nil
}

// Store caches dict under source's content hash, overwriting any prior
// entry for the same key.
func (c *Cache) Store(source []byte, dict lowtype.ApiDictionary) error {
	key := computeKey(source)
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dict); err != nil {
		return fmt.Errorf("apisearch: encoding catalog for cache: %w", err)
	}
	_, err := c.db.Exec(`INSERT INTO catalogs (key, data) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data`, key, buf.Bytes())
	if err != nil {
		return fmt.Errorf("apisearch: writing catalog cache: %w", err)
	}
	return nil
}

// LoadOrParse returns the cached ApiDictionary for source's content hash
// if present, otherwise parses it with catalog.Parse and stores the
// result before returning it.
func (c *Cache) LoadOrParse(source []byte) (lowtype.ApiDictionary, error) {
	if dict, ok, err := c.Lookup(source); err != nil {
		return lowtype.ApiDictionary{}, err
	} else if ok {
		return dict, nil
	}
	dict, err := catalog.Parse(source)
	if err != nil {
		return lowtype.ApiDictionary{}, err
	}
	if err := c.Store(source, dict); err != nil {
		return lowtype.ApiDictionary{}, err
	}
	return dict, nil
}
