package export

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hyperifyio/certscrape/internal/extract"
)

//go:embed schema.sql
var Schema string

// WriteSQLite stores records for source in the certificates table of the
// database at path, replacing rows a previous run stored for the same source.
// Absent fields are stored as NULL.
func WriteSQLite(ctx context.Context, path, source string, records []extract.Record) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM certificates WHERE source = ?", source); err != nil {
		return fmt.Errorf("clear source: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO certificates (source, position, name, link, organization, issue_date) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, source, i, r.Name.Value, nullString(r.Link), nullString(r.Organization), nullString(r.IssueDate)); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// ReadSQLite returns the records stored for source, in their original order.
func ReadSQLite(ctx context.Context, path, source string) ([]extract.Record, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT name, link, organization, issue_date FROM certificates WHERE source = ? ORDER BY position`, source)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	var out []extract.Record
	for rows.Next() {
		var name string
		var link, org, date sql.NullString
		if err := rows.Scan(&name, &link, &org, &date); err != nil {
			return nil, err
		}
		out = append(out, extract.Record{
			Name:         extract.Some(name),
			Link:         fromNull(link),
			Organization: fromNull(org),
			IssueDate:    fromNull(date),
		})
	}
	return out, rows.Err()
}

func nullString(f extract.Field) sql.NullString {
	return sql.NullString{String: f.Value, Valid: f.Found}
}

func fromNull(s sql.NullString) extract.Field {
	if !s.Valid {
		return extract.Field{}
	}
	return extract.Some(s.String)
}
