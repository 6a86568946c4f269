package db

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Pool *pgxpool.Pool
}

//go:embed schema.sql
var schema string

// EnsureSchema creates any missing tables.
func (d *Database) EnsureSchema(ctx context.Context) error {
	_, err := d.Pool.Exec(ctx, schema)
	return err
}

var catalogNumberRegexp = regexp.MustCompile(`^([[:digit:]]*)([[:alpha:]]*)$`)

// PadCatalogNumber formats a course number the way the course table keys it: three
// zero padded digits followed by the upper-cased letter, so "10a" becomes "010A".
// Anything that is not digits plus letters is returned upper-cased but unpadded.
func PadCatalogNumber(catalogNumber string) string {
	catalogNumber = strings.ToUpper(strings.TrimSpace(catalogNumber))
	submatches := catalogNumberRegexp.FindStringSubmatch(catalogNumber)
	if submatches == nil {
		return catalogNumber
	}
	number, err := strconv.Atoi(submatches[1])
	if err != nil {
		return catalogNumber
	}
	return fmt.Sprintf("%03d%v", number, submatches[2])
}

// UnpadCatalogNumber drops the leading zeros PadCatalogNumber adds.
func UnpadCatalogNumber(catalogNumber string) string {
	trimmed := strings.TrimLeft(catalogNumber, "0")
	if trimmed == "" || !strings.ContainsAny(trimmed[:1], "0123456789") {
		return "0" + trimmed
	}
	return trimmed
}

// CourseKey identifies a course in caches, e.g. "econ 001".
func CourseKey(departmentCode, catalogNumber string) string {
	const keyTemplate = "%v %v"
	return fmt.Sprintf(keyTemplate, departmentCode, catalogNumber)
}
