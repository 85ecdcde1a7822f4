// Package sqlitevec provides a SQLite-backed vector driver using sqlite-vec.
package sqlitevec

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"github.com/papercomputeco/researchpilot/pkg/vector"
)

// Config holds configuration for the SQLite vec driver.
type Config struct {
	// DBPath is the path to the SQLite database file.
	// Use ":memory:" for an in-memory database.
	DBPath string

	// Dimensions is the width of stored embeddings. Required.
	Dimensions uint
}

// Driver implements vector.Driver using SQLite with sqlite-vec. Distances
// are cosine, so scores are 1 - distance.
type Driver struct {
	db         *sql.DB
	dimensions uint
	logger     *slog.Logger
}

// NewDriver opens (or creates) the database and its vector tables.
func NewDriver(c Config, logger *slog.Logger) (*Driver, error) {
	sqlite_vec.Auto()

	if c.DBPath == "" {
		return nil, errors.New("database path is required")
	}
	if c.Dimensions == 0 {
		return nil, errors.New("sqlite-vec embedding dimensions cannot be 0, must be configured")
	}

	db, err := sql.Open("sqlite3", c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", vector.ErrConnection, err)
	}
	// vec0 tables are per-connection for ":memory:" databases.
	db.SetMaxOpenConns(1)

	var vecVersion string
	if err := db.QueryRow("SELECT vec_version()").Scan(&vecVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite-vec not available: %w", err)
	}

	// vec0 keys rows by integer rowid, so string document IDs map through
	// vec_documents.
	schema := []string{
		`CREATE TABLE IF NOT EXISTS vec_documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT NOT NULL UNIQUE
		)`,
		fmt.Sprintf(
			`CREATE VIRTUAL TABLE IF NOT EXISTS vec_embeddings USING vec0(embedding float[%d] distance_metric=cosine)`,
			c.Dimensions,
		),
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	logger.Info("sqlite-vec vector driver initialized",
		"db_path", c.DBPath,
		"dimensions", c.Dimensions,
		"vec_version", vecVersion,
	)

	return &Driver{db: db, dimensions: c.Dimensions, logger: logger}, nil
}

// Add stores documents, replacing any with the same ID.
func (d *Driver) Add(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, doc := range docs {
		if err := d.upsert(ctx, tx, doc); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	d.logger.Debug("added documents to sqlite-vec", "count", len(docs))
	return nil
}

func (d *Driver) upsert(ctx context.Context, tx *sql.Tx, doc vector.Document) error {
	if uint(len(doc.Embedding)) != d.dimensions {
		return fmt.Errorf("%w: document %s has %d dimensions, index has %d",
			vector.ErrDimensionMismatch, doc.ID, len(doc.Embedding), d.dimensions)
	}

	var rowID int64
	err := tx.QueryRowContext(ctx, `SELECT rowid FROM vec_documents WHERE doc_id = ?`, doc.ID).Scan(&rowID)
	switch {
	case err == nil:
		// vec0 has no UPDATE; replace the row under the same rowid.
		if _, err := tx.ExecContext(ctx, `DELETE FROM vec_embeddings WHERE rowid = ?`, rowID); err != nil {
			return fmt.Errorf("deleting old embedding for doc %s: %w", doc.ID, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx, `INSERT INTO vec_documents(doc_id) VALUES (?)`, doc.ID)
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", doc.ID, err)
		}
		if rowID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("getting rowid for doc %s: %w", doc.ID, err)
		}
	default:
		return fmt.Errorf("checking for existing document %s: %w", doc.ID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO vec_embeddings(rowid, embedding) VALUES (?, ?)`,
		rowID, serializeFloat32(doc.Embedding),
	); err != nil {
		return fmt.Errorf("inserting embedding for doc %s: %w", doc.ID, err)
	}
	return nil
}

// Query runs a KNN match. Equal distances fall back to rowid order, which is
// insertion order.
func (d *Driver) Query(ctx context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = vector.DefaultTopK
	}
	if uint(len(embedding)) != d.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			vector.ErrDimensionMismatch, len(embedding), d.dimensions)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT d.doc_id, ve.distance
		FROM vec_embeddings ve
		INNER JOIN vec_documents d ON d.rowid = ve.rowid
		WHERE ve.embedding MATCH ?
			AND ve.k = ?
		ORDER BY ve.distance, ve.rowid
	`, serializeFloat32(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var results []vector.QueryResult
	for rows.Next() {
		var (
			docID    string
			distance float64
		)
		if err := rows.Scan(&docID, &distance); err != nil {
			return nil, fmt.Errorf("scanning query result: %w", err)
		}
		results = append(results, vector.QueryResult{
			Document: vector.Document{ID: docID},
			Score:    float32(1 - distance),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating query results: %w", err)
	}

	d.logger.Debug("queried sqlite-vec", "results", len(results))
	return results, nil
}

// Delete removes documents by their IDs.
func (d *Driver) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM vec_embeddings WHERE rowid IN (SELECT rowid FROM vec_documents WHERE doc_id IN (%s))`,
		placeholders,
	), args...); err != nil {
		return fmt.Errorf("deleting embeddings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM vec_documents WHERE doc_id IN (%s)`, placeholders,
	), args...); err != nil {
		return fmt.Errorf("deleting documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	d.logger.Debug("deleted documents from sqlite-vec", "count", len(ids))
	return nil
}

// Close releases resources held by the driver.
func (d *Driver) Close() error {
	return d.db.Close()
}

// serializeFloat32 encodes v as the little-endian float32 BLOB sqlite-vec
// expects.
func serializeFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

var _ vector.Driver = (*Driver)(nil)
