package migrations

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"regexp"
	"strings"

	chstore "trade-journal/internal/storage/clickhouse"
)

var validDatabaseName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RunClickhouseMigrations ensures the database exists and applies all embedded SQL files.
// Returns a ClickHouse connection to the target database for reuse.
func RunClickhouseMigrations(ctx context.Context, dsn string) (*chstore.Conn, error) {
	dbName, err := databaseFromDSN(dsn)
	if err != nil {
		return nil, err
	}

	adminConn, err := chstore.NewConnWithDatabase(ctx, dsn, "")
	if err != nil {
		return nil, fmt.Errorf("connect clickhouse admin: %w", err)
	}
	if err := adminConn.Exec(ctx, "CREATE DATABASE IF NOT EXISTS "+dbName); err != nil {
		adminConn.Close()
		return nil, fmt.Errorf("create database %s: %w", dbName, err)
	}
	if err := adminConn.Close(); err != nil {
		return nil, fmt.Errorf("close admin connection: %w", err)
	}

	conn, err := chstore.NewConnWithDatabase(ctx, dsn, dbName)
	if err != nil {
		return nil, fmt.Errorf("connect clickhouse db: %w", err)
	}

	files, err := sqlFiles(ClickhouseFS, "clickhouse")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("read embedded clickhouse migrations: %w", err)
	}

	for _, file := range files {
		data, err := fs.ReadFile(ClickhouseFS, "clickhouse/"+file)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("read migration %s: %w", file, err)
		}

		stmts, err := splitStatements(string(data))
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("split migration %s: %w", file, err)
		}
		// The driver does not support multi-statement Exec.
		for _, stmt := range stmts {
			if err := conn.Exec(ctx, stmt); err != nil {
				conn.Close()
				return nil, fmt.Errorf("apply migration %s: %w", file, err)
			}
		}
	}

	return conn, nil
}

// errSemicolonInString is returned for SQL the naive splitter cannot handle.
var errSemicolonInString = errors.New("semicolon inside string literal")

// splitStatements splits SQL on semicolons after dropping "--" comment lines.
// Migrations must not put semicolons inside string literals or block comments;
// a semicolon inside a single-quoted literal is rejected.
func splitStatements(input string) ([]string, error) {
	var filtered []string
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		filtered = append(filtered, line)
	}
	joined := strings.Join(filtered, "\n")

	inString := false
	for i := 0; i < len(joined); i++ {
		switch ch := joined[i]; {
		case ch == '\'' && i+1 < len(joined) && joined[i+1] == '\'':
			i++ // escaped quote
		case ch == '\'':
			inString = !inString
		case ch == ';' && inString:
			return nil, errSemicolonInString
		}
	}

	var stmts []string
	for _, part := range strings.Split(joined, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

func databaseFromDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse clickhouse dsn: %w", err)
	}
	db := strings.TrimPrefix(u.Path, "/")
	if db == "" {
		return "", fmt.Errorf("clickhouse dsn missing database")
	}
	if !validDatabaseName.MatchString(db) {
		return "", fmt.Errorf("invalid clickhouse database name %q", db)
	}
	return db, nil
}
