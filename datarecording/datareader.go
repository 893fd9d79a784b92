package datarecording

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
)

// ErrNoRecording is returned when opening a recording that does not exist.
var ErrNoRecording = errors.New("recording not found")

// QueryParams narrows down the rows returned by a query.
type QueryParams struct {
	// Where is an SQL condition without the WHERE keyword, for example
	// "ChipID = ? AND Window = ?".
	Where string

	// Args fill the placeholders of Where.
	Args []any

	// OrderBy lists the sort columns without the ORDER BY keywords.
	OrderBy string

	// Limit caps the number of rows. 0 means all rows.
	Limit int

	// Offset skips rows. It only applies together with Limit.
	Offset int
}

func (p QueryParams) filter() string {
	if p.Where == "" {
		return ""
	}

	return " WHERE " + p.Where
}

func (p QueryParams) window() string {
	var sb strings.Builder

	if p.OrderBy != "" {
		sb.WriteString(" ORDER BY " + p.OrderBy)
	}

	if p.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", p.Limit)

		if p.Offset > 0 {
			fmt.Fprintf(&sb, " OFFSET %d", p.Offset)
		}
	}

	return sb.String()
}

// DataReader reads back the tables of a recording.
type DataReader interface {
	// MapTable binds a table to the struct type its rows are scanned into.
	MapTable(tableName string, sampleEntry any)

	// Tables returns the names of the tables stored in the recording,
	// sorted.
	Tables(ctx context.Context) ([]string, error)

	// Query returns pointers to structs of the mapped type and the number
	// of rows matching Where, regardless of Limit and Offset.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	// Close closes the recording.
	Close() error
}

type sqliteReader struct {
	db      *sql.DB
	typeMap map[string]reflect.Type
}

// NewReader opens a recording file read-only.
func NewReader(filename string) (DataReader, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoRecording, filename)
	}

	db, err := sql.Open("sqlite3", "file:"+filename+"?mode=ro")
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a DataReader on an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		db:      db,
		typeMap: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	if err := checkStructFields(sampleEntry); err != nil {
		panic(err)
	}

	r.typeMap[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) Tables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		tables = append(tables, name)
	}

	return tables, rows.Err()
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	structType, ok := r.typeMap[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	var total int

	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+tableName+params.filter(),
		params.Args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT * FROM "+tableName+params.filter()+params.window(),
		params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results, err := scanInto(rows, structType)
	if err != nil {
		return nil, 0, fmt.Errorf("table %s: %w", tableName, err)
	}

	return results, total, nil
}

// scanInto scans each row into a new struct, matching columns to fields by
// name. Every field needs a column.
func scanInto(rows *sql.Rows, structType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	fieldOf := make([]int, len(columns))
	matched := 0

	for i, col := range columns {
		fieldOf[i] = -1

		if f, found := structType.FieldByName(col); found {
			fieldOf[i] = f.Index[0]
			matched++
		}
	}

	if matched != structType.NumField() {
		return nil, fmt.Errorf("columns %v do not cover %s",
			columns, structType.Name())
	}

	var results []any

	for rows.Next() {
		entry := reflect.New(structType)
		targets := make([]any, len(columns))

		for i, field := range fieldOf {
			if field < 0 {
				targets[i] = new(any)
				continue
			}

			targets[i] = entry.Elem().Field(field).Addr().Interface()
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		results = append(results, entry.Interface())
	}

	return results, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}
