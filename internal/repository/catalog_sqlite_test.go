package repository

import (
	"strings"
	"testing"
)

// modernc.org/sqlite only applies pragmas passed as _pragma=name(value)
// query parameters; the mattn-style _journal_mode=... form is silently
// ignored by that driver.
func TestSQLiteDSNUsesDriverPragmaSyntax(t *testing.T) {
	dsn := sqliteDSN("./data/catalog.db")

	if !strings.HasPrefix(dsn, "./data/catalog.db?") {
		t.Fatalf("dsn does not start with the database path: %s", dsn)
	}
	for _, want := range []string{
		"_pragma=journal_mode(WAL)",
		"_pragma=synchronous(NORMAL)",
		"_pragma=busy_timeout(5000)",
	} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn missing %s: %s", want, dsn)
		}
	}
	if strings.Contains(dsn, "_journal_mode=") || strings.Contains(dsn, "_busy_timeout=") {
		t.Fatalf("dsn uses parameters the driver ignores: %s", dsn)
	}
}
