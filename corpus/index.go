package corpus

import (
	"crypto/sha256"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

// indexBucket is the single bbolt bucket holding one key per corpus entry already known to a campaign.
var indexBucket = []byte("corpus")

// ContentHash returns the content-addressing key a corpus entry is indexed and deduplicated by.
func ContentHash(raw []byte) [32]byte {
	return sha256.Sum256(raw)
}

// index is a durable, restart-surviving record of which corpus entries have already been written to disk,
// the same role the teacher's persistentCache plays for deployed-contract state: avoid re-deriving or
// re-writing something already known, across process restarts, without needing an O(n) directory walk.
type index struct {
	db *bbolt.DB
}

// openIndex opens (creating if absent) the bbolt database at path.
func openIndex(path string) (*index, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening corpus index %s", path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(indexBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating corpus index bucket")
	}

	return &index{db: db}, nil
}

// seen reports whether hash has already been recorded in the index.
func (idx *index) seen(hash [32]byte) (bool, error) {
	var found bool
	err := idx.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(indexBucket).Get(hash[:]) != nil
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "reading corpus index")
	}
	return found, nil
}

// mark records hash as known, so a later seen() call against the same content returns true.
func (idx *index) mark(hash [32]byte) error {
	return idx.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(indexBucket).Put(hash[:], []byte{1})
	})
}

// close releases the underlying bbolt file handle.
func (idx *index) close() error {
	return idx.db.Close()
}
