package docstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jngsolar/storefront-backend/pkg/db/models"
	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
)

// document is the entire datastore as one JSON object. Small catalogs
// and order volumes fit comfortably; anything bigger belongs on the
// postgres driver.
type document struct {
	Products      []models.Product      `json:"products"`
	Purchases     []models.Purchase     `json:"purchases"`
	PurchaseItems []models.PurchaseItem `json:"purchase_items"`
}

func (d *document) clone() *document {
	out := &document{
		Products:      make([]models.Product, len(d.Products)),
		Purchases:     make([]models.Purchase, len(d.Purchases)),
		PurchaseItems: make([]models.PurchaseItem, len(d.PurchaseItems)),
	}
	copy(out.Products, d.Products)
	copy(out.Purchases, d.Purchases)
	copy(out.PurchaseItems, d.PurchaseItems)
	return out
}

// Store is the file-backed datastore. All reads and writes go through
// a single mutex; updates mutate a clone and only swap it in after the
// new document has safely reached disk.
type Store struct {
	mu   sync.Mutex
	path string
	doc  *document
}

// Open loads the document at path, creating an empty one (and any
// missing parent directories) when the file does not exist yet.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "docstore: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating data directory")
	}

	doc := &document{}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, doc); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parsing data file")
			}
		}
	case os.IsNotExist(err):
		// first run, start empty
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading data file")
	}

	return &Store{path: path, doc: doc}, nil
}

// view runs fn against the current document under the lock. fn must
// not retain references past its return.
func (s *Store) view(fn func(doc *document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
}

// update applies fn to a clone of the document, persists the clone,
// and swaps it in only once the write succeeded. A failing fn or a
// failing write leaves both the in-memory document and the file
// untouched.
func (s *Store) update(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// persist writes the document to a sibling temp file and renames it
// over the target, so readers never observe a half-written file.
func (s *Store) persist(doc *document) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding data file")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating temp data file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing temp data file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "closing temp data file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replacing data file")
	}
	return nil
}

// nextPurchaseID returns one more than the highest id in doc, starting
// at 1. Must be called with the store lock held (i.e. inside update).
func nextPurchaseID(doc *document) int64 {
	var max int64
	for _, p := range doc.Purchases {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func nextItemID(doc *document) int64 {
	var max int64
	for _, item := range doc.PurchaseItems {
		if item.ID > max {
			max = item.ID
		}
	}
	return max + 1
}

func now() time.Time {
	return time.Now().UTC()
}
