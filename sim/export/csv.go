package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/inference-sim/qsim/sim"
)

// recordColumns is the CSV header of a replication record set.
var recordColumns = []string{"customer", "entry", "service", "exit", "station"}

// WriteRecordsCSV writes records in slice order, one row per customer.
func WriteRecordsCSV(w io.Writer, records []sim.ServiceRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(recordColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, r := range records {
		row := []string{
			strconv.Itoa(r.Customer),
			strconv.FormatFloat(r.Entry, 'g', -1, 64),
			strconv.FormatFloat(r.ServiceStart, 'g', -1, 64),
			strconv.FormatFloat(r.Exit, 'g', -1, 64),
			strconv.Itoa(r.Station),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadRecordsCSV reads a record set written by WriteRecordsCSV, or any CSV
// whose header contains at least an "exit" column. Missing optional columns
// are left zero.
func ReadRecordsCSV(r io.Reader) ([]sim.ServiceRecord, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["exit"]; !ok {
		return nil, fmt.Errorf("CSV header %v has no %q column", header, "exit")
	}

	var records []sim.ServiceRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		rec := sim.ServiceRecord{Customer: len(records)}
		if err := parseRecordRow(row, col, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecordRow(row []string, col map[string]int, rec *sim.ServiceRecord) error {
	floatField := func(name string, dst *float64) error {
		i, ok := col[name]
		if !ok {
			return nil
		}
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		*dst = v
		return nil
	}
	intField := func(name string, dst *int) error {
		i, ok := col[name]
		if !ok {
			return nil
		}
		v, err := strconv.Atoi(row[i])
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		*dst = v
		return nil
	}
	if err := intField("customer", &rec.Customer); err != nil {
		return err
	}
	if err := floatField("entry", &rec.Entry); err != nil {
		return err
	}
	if err := floatField("service", &rec.ServiceStart); err != nil {
		return err
	}
	if err := floatField("exit", &rec.Exit); err != nil {
		return err
	}
	return intField("station", &rec.Station)
}
