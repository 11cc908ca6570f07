package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo is one column of a table as reported by the database.
type ColumnInfo struct {
	Field string
	Type  string
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	if db.Dialector.Name() == "sqlite" {
		type sqliteColumn struct {
			Name string
			Type string
		}
		var cols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&cols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range cols {
			columns = append(columns, ColumnInfo{Field: strings.ToLower(col.Name), Type: strings.ToLower(col.Type)})
		}
		return columns, nil
	}

	type mysqlColumn struct {
		Field string
		Type  string
	}
	var cols []mysqlColumn
	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&cols).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for _, col := range cols {
		columns = append(columns, ColumnInfo{Field: strings.ToLower(col.Field), Type: strings.ToLower(col.Type)})
	}
	return columns, nil
}

// MissingColumns returns the font_records columns the database does not have.
func MissingColumns(db *gorm.DB) ([]string, error) {
	columns, err := GetTableColumns(db, FontRecord{}.TableName())
	if err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		have[c.Field] = struct{}{}
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&FontRecord{}); err != nil {
		return nil, fmt.Errorf("failed to parse font record schema: %w", err)
	}
	var missing []string
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" {
			continue
		}
		if _, ok := have[f.DBName]; !ok {
			missing = append(missing, f.DBName)
		}
	}
	return missing, nil
}
