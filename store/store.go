// Package store exports result tables to a PostgreSQL database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/etnz/royalty/internal/logging"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DSNFromEnv returns the connection string from envFile, if it exists, and
// the environment. Values of the file win over the environment, where
// USER and HOST are usually set by the shell. DATABASE_URL wins over HOST,
// PORT, USER, PASSWORD and DATABASE.
func DSNFromEnv(envFile string) (string, error) {
	vars := map[string]string{}
	if envFile != "" {
		var err error
		if vars, err = godotenv.Read(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("cannot load %s: %w", envFile, err)
			}
			vars = map[string]string{}
		}
	}
	get := func(key string) string {
		if v, ok := vars[key]; ok {
			return v
		}
		return os.Getenv(key)
	}
	if url := get("DATABASE_URL"); url != "" {
		return url, nil
	}
	host, dbname := get("HOST"), get("DATABASE")
	if host == "" || dbname == "" {
		return "", fmt.Errorf("no database configured: set DATABASE_URL or HOST and DATABASE")
	}
	port := get("PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, get("USER"), get("PASSWORD"), dbname), nil
}

// Open connects to the database.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	return db, nil
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ColumnName turns a column label into a SQL identifier: "CÓD. OBRA" is "cod_obra".
func ColumnName(label string) string {
	s, _, err := transform.String(stripAccents, label)
	if err != nil {
		s = label
	}
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	underscore := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "c_" + name
	}
	return name
}

func sqlType(t series.Type) string {
	switch t {
	case series.Float:
		return "DOUBLE PRECISION"
	case series.Int:
		return "BIGINT"
	case series.Bool:
		return "BOOLEAN"
	}
	return "TEXT"
}

// CreateTableSQL returns the statement creating the table for df.
func CreateTableSQL(table string, df dataframe.DataFrame) string {
	var cols []string
	names := df.Names()
	types := df.Types()
	for i, n := range names {
		cols = append(cols, fmt.Sprintf("%s %s", pq.QuoteIdentifier(ColumnName(n)), sqlType(types[i])))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n)", pq.QuoteIdentifier(table), strings.Join(cols, ",\n  "))
}

// Export creates the table if needed and appends the rows of df with COPY.
// Blank text cells are stored as NULL.
func Export(ctx context.Context, db *sql.DB, table string, df dataframe.DataFrame) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, CreateTableSQL(table, df)); err != nil {
		return 0, fmt.Errorf("cannot create table %s: %w", table, err)
	}
	names := df.Names()
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = ColumnName(n)
	}
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, cols...))
	if err != nil {
		return 0, fmt.Errorf("cannot prepare copy into %s: %w", table, err)
	}
	for i := 0; i < df.Nrow(); i++ {
		if _, err := stmt.ExecContext(ctx, row(df, i)...); err != nil {
			stmt.Close()
			return 0, fmt.Errorf("cannot copy row %d into %s: %w", i+1, table, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("cannot copy into %s: %w", table, err)
	}
	if err := stmt.Close(); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	logging.Log.WithFields(logrus.Fields{"table": table, "rows": df.Nrow()}).Info("exported")
	return df.Nrow(), nil
}

// row returns the values of row i, typed after the column types.
func row(df dataframe.DataFrame, i int) []any {
	values := make([]any, df.Ncol())
	for j := range values {
		e := df.Elem(i, j)
		if e.IsNA() {
			continue
		}
		switch e.Type() {
		case series.Float:
			values[j] = e.Float()
		case series.Int:
			v, _ := e.Int()
			values[j] = v
		case series.Bool:
			v, _ := e.Bool()
			values[j] = v
		default:
			if s := strings.TrimSpace(e.String()); s != "" {
				values[j] = s
			}
		}
	}
	return values
}
