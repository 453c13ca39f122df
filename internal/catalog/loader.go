package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

// FileLoader reads the catalog from the first spreadsheet or CSV file in
// Paths that exists.
type FileLoader struct {
	Paths       []string
	Placeholder string
}

func NewFileLoader(paths []string, placeholder string) *FileLoader {
	return &FileLoader{Paths: paths, Placeholder: placeholder}
}

func (l *FileLoader) Load(ctx context.Context) (*Catalog, error) {
	path, err := l.locate()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := readRows(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	items, skipped, err := Normalize(rows, l.Placeholder)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", path, err)
	}
	return New(items, path, skipped), nil
}

func (l *FileLoader) locate() (string, error) {
	for _, p := range l.Paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
	}
	return "", fmt.Errorf("%w: tried %s", domain.ErrNoCatalogFile, strings.Join(l.Paths, ", "))
}

func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

// ReadXLSX returns the rows of the first sheet using raw cell values, so
// numeric prices are not mangled by display formatting.
func ReadXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

// ItemLister is the read side of the item mirror store.
type ItemLister interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
}

// StoreLoader reads the catalog back from the item mirror store.
type StoreLoader struct {
	store ItemLister
}

func NewStoreLoader(store ItemLister) *StoreLoader {
	return &StoreLoader{store: store}
}

func (l *StoreLoader) Load(ctx context.Context) (*Catalog, error) {
	items, err := l.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mirrored items: %w", err)
	}
	return New(items, "postgres", 0), nil
}
