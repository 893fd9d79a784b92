package tracing

import (
	"context"
	"fmt"

	"github.com/sarchlab/pnvpec/datarecording"
)

func (r GuestErrorRecord) String() string {
	return fmt.Sprintf("%s,%s,%s,0x%x,%s",
		r.Component, r.Window, r.Kind, r.Offset, r.Value)
}

func (r AccessRecord) String() string {
	dir := "read"
	if r.Write {
		dir = "write"
	}

	return fmt.Sprintf("%s,%s,%s,0x%08x,%s", r.Bus, r.Region, dir, r.PCBA, r.Value)
}

// MapTables binds the tables the tracers write to their record types.
func MapTables(reader datarecording.DataReader) {
	reader.MapTable(GuestErrorTable, GuestErrorRecord{})
	reader.MapTable(AccessTable, AccessRecord{})
}

// ReadGuestErrors returns the recorded guest errors and how many match the
// filter. The reader must have the tables mapped.
func ReadGuestErrors(
	ctx context.Context,
	reader datarecording.DataReader,
	params datarecording.QueryParams,
) ([]GuestErrorRecord, int, error) {
	return readRecords[GuestErrorRecord](ctx, reader, GuestErrorTable, params)
}

// ReadAccesses returns the recorded accesses and how many match the filter.
// The reader must have the tables mapped.
func ReadAccesses(
	ctx context.Context,
	reader datarecording.DataReader,
	params datarecording.QueryParams,
) ([]AccessRecord, int, error) {
	return readRecords[AccessRecord](ctx, reader, AccessTable, params)
}

func readRecords[T any](
	ctx context.Context,
	reader datarecording.DataReader,
	table string,
	params datarecording.QueryParams,
) ([]T, int, error) {
	rows, total, err := reader.Query(ctx, table, params)
	if err != nil {
		return nil, 0, err
	}

	records := make([]T, 0, len(rows))
	for _, row := range rows {
		records = append(records, *row.(*T))
	}

	return records, total, nil
}
