// =============================================================================
// Order Sheet - Generic Catalog Store
// =============================================================================
//
// Store is the generic CRUD layer over a single-sheet workbook: list all
// records, replace-or-append by natural key, delete by natural key. It is
// parameterized by record type; each catalog workbook binds it with a schema
// and a row codec.
//
// GUARANTEES:
//   - List on a missing file yields an empty list, not an error.
//   - Upsert and Delete create the file (with header) when it is absent.
//   - Upsert is idempotent: applying the same record twice equals once.
//   - Upsert and Delete rewrite the sheet from its raw rows, preserving
//     per-cell types exactly; malformed rows survive both untouched.
//   - A write lock per file serializes concurrent commands in-process; cross
//     process, last write wins.
//
// =============================================================================

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/RAFIKME/ordersheet/internal/sheet"
	"github.com/RAFIKME/ordersheet/pkg/paths"
)

// ErrNotFound indicates an upsert/delete target row was not located. It is
// non-fatal: no state changes and the caller reports it as a user message.
var ErrNotFound = errors.New("catalog row not found")

// rowCodec binds a record type to its workbook row shape.
type rowCodec[T any] struct {
	schema sheet.Schema

	// decode maps a schema-conforming row to a record. The bool mirrors the
	// codec's skip contract; schema validation has already run, so decoders
	// rarely reject.
	decode func(sheet.Row) (T, bool)

	// encode maps a record back to a typed row (without display id).
	encode func(T) sheet.Row

	// key extracts the natural key used for upsert/delete matching.
	key func(T) string
}

// Store provides CRUD over one catalog workbook.
type Store[T any] struct {
	file     string
	provider *paths.Provider
	codec    *sheet.Codec
	rows     rowCodec[T]
	log      zerolog.Logger
}

func newStore[T any](file string, provider *paths.Provider, codec *sheet.Codec, rows rowCodec[T], log zerolog.Logger) *Store[T] {
	return &Store[T]{
		file:     file,
		provider: provider,
		codec:    codec,
		rows:     rows,
		log:      log.With().Str("file", file).Logger(),
	}
}

// File returns the workbook file name this store is bound to.
func (s *Store[T]) File() string {
	return s.file
}

// List reads every well-formed record, optionally filtered. A missing
// backing file yields an empty list.
func (s *Store[T]) List(filter func(T) bool) ([]T, error) {
	rows, err := s.codec.ReadRecords(s.provider.Path(s.file), s.rows.schema)
	if errors.Is(err, sheet.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []T
	for _, row := range rows {
		rec, ok := s.rows.decode(row)
		if !ok {
			continue
		}
		if filter != nil && !filter(rec) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Upsert finds the first row whose natural key case-insensitively equals the
// incoming record's key (and passes the optional scope predicate, e.g. a city
// filter for shops) and overwrites it in place; otherwise the record is
// appended. The rewrite goes through the raw rows so untouched cells keep
// their stored types and malformed rows are carried over unchanged.
func (s *Store[T]) Upsert(rec T, scope func(T) bool) error {
	unlock := s.provider.Lock(s.file)
	defer unlock()

	path := s.provider.Path(s.file)
	encoded := s.rows.encode(rec)
	key := s.rows.key(rec)

	sheetName, raw, err := s.codec.ReadRaw(path)
	if errors.Is(err, sheet.ErrMissingFile) {
		sheetName = s.rows.schema.Sheet
		raw = []sheet.Row{s.rows.schema.Header()}
	} else if err != nil {
		return err
	}
	if len(raw) == 0 {
		raw = []sheet.Row{s.rows.schema.Header()}
	}

	replaced := false
	for i, row := range raw {
		if i == 0 {
			continue
		}
		if s.rowMatches(row, key, scope) {
			raw[i] = encoded
			replaced = true
			break
		}
	}
	if !replaced {
		raw = append(raw, encoded)
	}

	if err := s.codec.WriteRaw(path, sheetName, raw); err != nil {
		return err
	}
	s.log.Info().Str("key", key).Bool("replaced", replaced).Msg("catalog row upserted")
	return nil
}

// Delete removes the first row exactly matching the key (and the optional
// scope predicate, e.g. a city filter for shops). The rewrite goes through
// the raw rows so untouched cells keep their stored types. Deleting a key
// that does not exist returns ErrNotFound and changes nothing.
func (s *Store[T]) Delete(key string, scope func(T) bool) error {
	unlock := s.provider.Lock(s.file)
	defer unlock()

	path := s.provider.Path(s.file)
	sheetName, raw, err := s.codec.ReadRaw(path)
	if errors.Is(err, sheet.ErrMissingFile) {
		// Nothing to delete; create the header so the catalog exists.
		if werr := s.codec.WriteRecords(path, s.rows.schema, nil); werr != nil {
			return werr
		}
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return err
	}

	retained := make([]sheet.Row, 0, len(raw))
	found := false
	for i, row := range raw {
		if i == 0 || found {
			retained = append(retained, row)
			continue
		}
		if s.rowMatches(row, key, scope) {
			found = true
			continue
		}
		retained = append(retained, row)
	}

	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	if err := s.codec.WriteRaw(path, sheetName, retained); err != nil {
		return err
	}
	s.log.Info().Str("key", key).Msg("catalog row deleted")
	return nil
}

func (s *Store[T]) rowMatches(row sheet.Row, key string, scope func(T) bool) bool {
	normalized, ok := s.rows.schema.Conform(row)
	if !ok {
		return false
	}
	rec, ok := s.rows.decode(normalized)
	if !ok {
		return false
	}
	if !equalFoldTrim(s.rows.key(rec), key) {
		return false
	}
	return scope == nil || scope(rec)
}

// equalFoldTrim compares two natural keys the way the catalog matches them:
// trimmed and case-insensitive.
func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
