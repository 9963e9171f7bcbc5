package migrations

import (
	"errors"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	sql := `-- header comment
CREATE TABLE a (x String) ENGINE = Memory;

-- second
CREATE TABLE b (y String DEFAULT 'it''s') ENGINE = Memory;
`

	stmts, err := splitStatements(sql)
	if err != nil {
		t.Fatalf("splitStatements failed: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if stmts[0] != "CREATE TABLE a (x String) ENGINE = Memory" {
		t.Errorf("unexpected first statement: %q", stmts[0])
	}
}

func TestSplitStatements_RejectsSemicolonInString(t *testing.T) {
	_, err := splitStatements(`INSERT INTO t VALUES ('a;b');`)
	if !errors.Is(err, errSemicolonInString) {
		t.Errorf("expected errSemicolonInString, got %v", err)
	}
}

func TestDatabaseFromDSN(t *testing.T) {
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{"clickhouse://localhost:9000/journal", "journal", false},
		{"clickhouse://localhost:9000/", "", true},
		{"clickhouse://localhost:9000/bad-name", "", true},
	}

	for _, tt := range tests {
		got, err := databaseFromDSN(tt.dsn)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: unexpected error state: %v", tt.dsn, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.dsn, tt.want, got)
		}
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	pg, err := sqlFiles(PostgresFS, "postgres")
	if err != nil || len(pg) == 0 {
		t.Errorf("expected embedded postgres migrations, got %v (%v)", pg, err)
	}
	ch, err := sqlFiles(ClickhouseFS, "clickhouse")
	if err != nil || len(ch) == 0 {
		t.Errorf("expected embedded clickhouse migrations, got %v (%v)", ch, err)
	}
}
