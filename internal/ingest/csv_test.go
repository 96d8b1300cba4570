package ingest

import (
	"strings"
	"testing"

	"github.com/banshee-data/elevation.report/internal/monitoring"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	m.Run()
}

func TestReadRecordsBasic(t *testing.T) {
	input := "site,year,dist_along,elevation\n" +
		"AHA,2021,0,10\n" +
		"AHA,2021,1.5,12.25\n" +
		"BRK,2024,0.5,-0.75\n"

	result, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}

	if len(result.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(result.Records))
	}
	if result.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", result.Skipped)
	}
	if result.BatchID == "" {
		t.Error("batch ID must be set")
	}

	rec := result.Records[1]
	if rec.Site != "AHA" || rec.Year != 2021 || rec.DistAlong != 1.5 || rec.Elevation != 12.25 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestReadRecordsHeaderAliases(t *testing.T) {
	input := "Site,Survey,Chainage,Elev\n" +
		"CLF,2024,3.25,1.5\n"

	result, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}
	if result.Records[0].DistAlong != 3.25 {
		t.Errorf("dist_along = %v, want 3.25", result.Records[0].DistAlong)
	}
}

func TestReadRecordsMissingColumn(t *testing.T) {
	input := "site,year,elevation\nAHA,2021,10\n"

	if _, err := ReadRecords(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for missing dist_along column")
	}
}

func TestReadRecordsSkipsMalformedRows(t *testing.T) {
	input := "site,year,dist_along,elevation\n" +
		"AHA,2021,0,10\n" +
		"AHA,not-a-year,1,10\n" +
		"AHA,2021,oops,10\n" +
		"AHA,2021,2,not-a-number\n" +
		"AHA,2021,-1,10\n" +
		",2021,3,10\n" +
		"AHA,2021,4,11\n"

	result, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}

	if len(result.Records) != 2 {
		t.Errorf("got %d records, want 2", len(result.Records))
	}
	if result.Skipped != 5 {
		t.Errorf("skipped = %d, want 5", result.Skipped)
	}
}

func TestReadRecordsEmptyInput(t *testing.T) {
	if _, err := ReadRecords(strings.NewReader("")); err == nil {
		t.Fatal("expected error for missing header")
	}
}

func TestReadRecordsUniqueBatchIDs(t *testing.T) {
	input := "site,year,dist_along,elevation\nAHA,2021,0,10\n"

	a, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if a.BatchID == b.BatchID {
		t.Errorf("batch IDs must be unique per import: %s", a.BatchID)
	}
}
