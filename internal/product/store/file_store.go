package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"sync"

	perrors "github.com/abgdnv/productmanager/internal/product/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/renameio/v2"
)

// fileExt is appended to the base path given to NewFileStore.
const fileExt = ".json"

// filePerm is the permission of a newly created store file.
const filePerm = 0o644

// FileStore implements ProductStore on top of a single JSON file.
//
// Every operation re-reads the file, mutates the loaded slice and writes the whole
// slice back. The file itself is not locked: two overlapping read-modify-write
// sequences can lose one of the updates. Only the ID counter is guarded.
type FileStore struct {
	path     string
	validate *validator.Validate
	logger   *slog.Logger

	mu     sync.Mutex
	nextID int64
}

var _ ProductStore = (*FileStore)(nil)

// NewFileStore creates a store backed by basePath + ".json".
// The file is not touched until the first operation.
func NewFileStore(basePath string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:     basePath + fileExt,
		nextID:   1,
		validate: validator.New(),
		logger:   logger.With("component", "store", "path", basePath+fileExt),
	}
}

// Path returns the location of the store file.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether the store file has been created.
func (s *FileStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, storageError("stat", s.path, err)
}

// FindByID retrieves a product by its ID.
func (s *FileStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	products, err := s.loadExisting()
	if err != nil {
		return nil, err
	}
	i := indexOf(products, id)
	if i == -1 {
		return nil, fmt.Errorf("id %d: %w", id, perrors.ErrProductNotFound)
	}
	s.logger.DebugContext(ctx, "Product found", "ID", id)
	return &products[i], nil
}

// FindAll retrieves all products in insertion order.
func (s *FileStore) FindAll(ctx context.Context) ([]Product, error) {
	products, err := s.loadExisting()
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Products loaded", "count", len(products))
	return products, nil
}

// Create validates the product, assigns the next ID and appends it to the file.
// A missing file is created. The ID of the candidate is ignored.
func (s *FileStore) Create(ctx context.Context, product Product) (*Product, error) {
	products, _, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(product); err != nil {
		return nil, fmt.Errorf("%w: %w", perrors.ErrValidation, err)
	}
	if slices.ContainsFunc(products, func(p Product) bool { return p.Code == product.Code }) {
		return nil, fmt.Errorf("code %q: %w", product.Code, perrors.ErrDuplicateCode)
	}

	product.ID = s.takeID()
	products = append(products, product)
	if err := s.persist(products); err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Product created", "ID", product.ID, "code", product.Code)
	return &product, nil
}

// Update merges patch onto the product with the given ID and writes the file.
// Required fields and code uniqueness are not checked again.
func (s *FileStore) Update(ctx context.Context, id int64, patch ProductPatch) (*Product, error) {
	products, err := s.loadExisting()
	if err != nil {
		return nil, err
	}
	i := indexOf(products, id)
	if i == -1 {
		return nil, fmt.Errorf("id %d: %w", id, perrors.ErrProductNotFound)
	}
	patch.apply(&products[i])
	if err := s.persist(products); err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Product updated", "ID", id)
	return &products[i], nil
}

// DeleteByID removes the product with the given ID and writes the file.
func (s *FileStore) DeleteByID(ctx context.Context, id int64) error {
	products, err := s.loadExisting()
	if err != nil {
		return err
	}
	i := indexOf(products, id)
	if i == -1 {
		return fmt.Errorf("id %d: %w", id, perrors.ErrProductNotFound)
	}
	products = slices.Delete(products, i, i+1)
	if err := s.persist(products); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Product deleted", "ID", id)
	return nil
}

// DeleteAll truncates an existing store to an empty array. No file is created.
func (s *FileStore) DeleteAll(ctx context.Context) error {
	exists, err := s.Exists()
	if err != nil {
		return err
	}
	if !exists {
		return perrors.ErrNotInitialized
	}
	if err := s.persist([]Product{}); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "All products deleted")
	return nil
}

// loadExisting is load for operations that require the file to exist.
func (s *FileStore) loadExisting() ([]Product, error) {
	products, exists, err := s.load()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, perrors.ErrNotInitialized
	}
	return products, nil
}

// load reads the products from the file.
// A missing file yields no products and exists == false; an empty file is an empty store.
func (s *FileStore) load() (products []Product, exists bool, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Product{}, false, nil
		}
		return nil, false, storageError("read", s.path, err)
	}

	products = []Product{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, true, storageError("decode", s.path, err)
		}
	}
	s.observeIDs(products)
	return products, true, nil
}

// observeIDs moves the counter past every stored ID so IDs stay unique across restarts.
func (s *FileStore) observeIDs(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
}

func (s *FileStore) takeID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	return id
}

// persist replaces the store file with products, tab indented.
func (s *FileStore) persist(products []Product) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(products); err != nil {
		return storageError("encode", s.path, err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if err := renameio.WriteFile(s.path, data, filePerm); err != nil {
		return storageError("write", s.path, err)
	}
	return nil
}

func indexOf(products []Product, id int64) int {
	return slices.IndexFunc(products, func(p Product) bool { return p.ID == id })
}

func storageError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", perrors.ErrStorage, op, path, err)
}
