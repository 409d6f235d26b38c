package dbexec

import (
	"errors"
	"testing"
)

type fakeRows struct {
	cols   int
	data   [][]any
	idx    int
	err    error
	closed bool
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.data) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.data[f.idx-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i := range dest {
		*(dest[i].(*any)) = row[i]
	}
	return nil
}

func (f *fakeRows) Err() error   { return f.err }
func (f *fakeRows) Close() error { f.closed = true; return nil }

func TestScanToMaps(t *testing.T) {
	rows := &fakeRows{data: [][]any{
		{int64(1), []byte("NCT001")},
		{int64(2), []byte("NCT002")},
	}}
	got, err := ScanToMaps(rows, []string{"study_id", "nct_id"})
	if err != nil {
		t.Fatalf("ScanToMaps: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0]["nct_id"] != "NCT001" {
		t.Fatalf("byte column not normalized to string: %#v", got[0]["nct_id"])
	}
	if got[1]["study_id"] != int64(2) {
		t.Fatalf("unexpected id: %#v", got[1]["study_id"])
	}
	if !rows.closed {
		t.Fatal("rows were not closed")
	}
}

func TestScanToMapsSurfacesIterationError(t *testing.T) {
	rows := &fakeRows{err: errors.New("boom")}
	if _, err := ScanToMaps(rows, []string{"study_id"}); err == nil {
		t.Fatal("expected iteration error")
	}
}

func TestScanSingleColumn(t *testing.T) {
	rows := &fakeRows{data: [][]any{{[]byte("C01.069")}, {[]byte("C02")}}}
	got, err := ScanSingleColumn(rows)
	if err != nil {
		t.Fatalf("ScanSingleColumn: %v", err)
	}
	if len(got) != 2 || got[0] != "C01.069" {
		t.Fatalf("unexpected values: %#v", got)
	}
}
