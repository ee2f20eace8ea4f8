package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/omriBer/diet/internal/model"
)

var csvHeader = []string{"date", "water", "water_before", "veggies", "protein", "window", "fats", "treat", "slip", "done", "first_meal", "last_meal", "notes"}

// WriteLogsCSV writes one row per daily log, oldest first.
func WriteLogsCSV(w io.Writer, logs map[string]model.DailyLog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	dates := make([]string, 0, len(logs))
	for d := range logs {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		l := logs[d]
		record := []string{
			d,
			strconv.FormatFloat(l.Water, 'f', -1, 64),
			strconv.Itoa(l.WaterBeforeMeals),
			strconv.FormatBool(l.Veggies),
			strconv.FormatBool(l.Protein),
			strconv.FormatFloat(l.EatingWindowHours, 'f', -1, 64),
			strconv.Itoa(l.FatsCount),
			strconv.FormatBool(l.TreatDay),
			strconv.FormatBool(l.Slip),
			strconv.FormatBool(l.Completed),
			l.FirstMeal,
			l.LastMeal,
			l.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", d, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadLogsCSV parses rows written by WriteLogsCSV into an import document
// with no settings.
func ReadLogsCSV(r io.Reader) (*ExportData, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}
	if len(records[0]) != len(csvHeader) || !strings.EqualFold(records[0][0], "date") {
		return nil, fmt.Errorf("csv header must be: %s", strings.Join(csvHeader, ","))
	}
	out := &ExportData{Logs: map[string]model.DailyLog{}}
	for i, row := range records[1:] {
		line := i + 2
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("csv row %d has %d columns, expected %d", line, len(row), len(csvHeader))
		}
		var l model.DailyLog
		var errs []string
		parseFloat := func(s string) float64 {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				errs = append(errs, err.Error())
			}
			return v
		}
		parseInt := func(s string) int {
			v, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				errs = append(errs, err.Error())
			}
			return v
		}
		parseBool := func(s string) bool {
			v, err := strconv.ParseBool(strings.TrimSpace(s))
			if err != nil {
				errs = append(errs, err.Error())
			}
			return v
		}
		l.Water = parseFloat(row[1])
		l.WaterBeforeMeals = parseInt(row[2])
		l.Veggies = parseBool(row[3])
		l.Protein = parseBool(row[4])
		l.EatingWindowHours = parseFloat(row[5])
		l.FatsCount = parseInt(row[6])
		l.TreatDay = parseBool(row[7])
		l.Slip = parseBool(row[8])
		l.Completed = parseBool(row[9])
		l.FirstMeal = strings.TrimSpace(row[10])
		l.LastMeal = strings.TrimSpace(row[11])
		l.Notes = row[12]
		if len(errs) > 0 {
			return nil, fmt.Errorf("csv row %d: %s", line, strings.Join(errs, "; "))
		}
		out.Logs[strings.TrimSpace(row[0])] = l
	}
	return out, nil
}
