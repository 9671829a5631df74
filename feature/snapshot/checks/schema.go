package checks

import (
	"fmt"
	"strings"

	"manifest-resolver/core/database"
	"manifest-resolver/core/manifest"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a snapshot schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Rows           int64    `json:"rows"`
	Status         string   `json:"status"` // "ok", "error"
}

// ExpectedColumn is a column every definition table must expose. The actual
// type must contain one of Types.
type ExpectedColumn struct {
	Name  string
	Types []string
}

// ExpectedColumns is the layout shared by all definition tables.
var ExpectedColumns = []ExpectedColumn{
	{Name: "id", Types: []string{"int"}},
	{Name: "json", Types: []string{"text", "json", "blob"}},
}

// CheckSchema verifies that every definition table has the expected columns
// and counts its rows.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, table := range manifest.Tables {
		name := string(table)
		tblReport := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}

		actualCols, err := database.GetTableColumns(db, name)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", name, err))
			report.Matched = false
			tblReport.Status = "error"
			report.Tables[name] = tblReport
			continue
		}

		actualMap := make(map[string]database.ColumnInfo, len(actualCols))
		for _, col := range actualCols {
			actualMap[col.Field] = col
		}

		for _, expected := range ExpectedColumns {
			actCol, exists := actualMap[expected.Name]
			if !exists {
				tblReport.MissingColumns = append(tblReport.MissingColumns, expected.Name)
				continue
			}
			// SQLite allows untyped columns.
			if actCol.Type == "" {
				continue
			}
			if !containsAny(actCol.Type, expected.Types) {
				tblReport.TypeMismatches = append(tblReport.TypeMismatches,
					fmt.Sprintf("%s: expected %s, got %s", expected.Name, strings.Join(expected.Types, "|"), actCol.Type))
			}
		}

		if len(tblReport.MissingColumns) > 0 || len(tblReport.TypeMismatches) > 0 {
			tblReport.Status = "error"
			report.Matched = false
			report.Tables[name] = tblReport
			continue
		}

		if err := db.Table(name).Count(&tblReport.Rows).Error; err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to count rows of %s: %v", name, err))
		}
		report.Tables[name] = tblReport
	}

	return report, nil
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
