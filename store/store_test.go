package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func TestColumnName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"CÓD. OBRA", "cod_obra"},
		{"TÍTULO DA MUSICA", "titulo_da_musica"},
		{"Net Dollars after Fees", "net_dollars_after_fees"},
		{"  RATEIO ", "rateio"},
		{"2024", "c_2024"},
		{"%", "c_"},
	}
	for _, tt := range tests {
		if got := ColumnName(tt.in); got != tt.want {
			t.Errorf("ColumnName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateTableSQL(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"A"}, series.String, "TITULAR"),
		series.New([]float64{1.5}, series.Float, "TOTAL CALCULADO"),
		series.New([]int{2}, series.Int, "LINHAS"),
	)
	got := CreateTableSQL("split_summary", df)
	want := "CREATE TABLE IF NOT EXISTS \"split_summary\" (\n" +
		"  \"titular\" TEXT,\n" +
		"  \"total_calculado\" DOUBLE PRECISION,\n" +
		"  \"linhas\" BIGINT\n)"
	if got != want {
		t.Errorf("CreateTableSQL() =\n%s\nwant\n%s", got, want)
	}
	values := row(df, 0)
	if values[0] != "A" || values[1] != 1.5 || values[2] != 2 {
		t.Errorf("row() = %v", values)
	}
}

func TestDSNFromEnv(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "HOST", "PORT", "USER", "PASSWORD", "DATABASE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	if _, err := DSNFromEnv(""); err == nil {
		t.Errorf("DSNFromEnv() without configuration want error")
	}

	// the shell sets USER and often HOST
	t.Setenv("USER", "alice")
	t.Setenv("HOST", "laptop")
	t.Setenv("DATABASE", "scratch")

	env := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(env, []byte("HOST=db.local\nUSER=rbo\nPASSWORD=secret\nDATABASE=royalties\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	dsn, err := DSNFromEnv(env)
	if err != nil {
		t.Fatalf("DSNFromEnv() error = %v", err)
	}
	for _, part := range []string{"host=db.local", "port=5432", "user=rbo", "password=secret", "dbname=royalties"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSNFromEnv() = %q, missing %q", dsn, part)
		}
	}

	// without a file, the environment is used
	dsn, err = DSNFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("DSNFromEnv() error = %v", err)
	}
	if !strings.Contains(dsn, "host=laptop") || !strings.Contains(dsn, "user=alice") {
		t.Errorf("DSNFromEnv() = %q, want the environment values", dsn)
	}

	t.Setenv("DATABASE_URL", "postgres://u@h/db")
	if dsn, _ := DSNFromEnv(filepath.Join(t.TempDir(), "missing.env")); dsn != "postgres://u@h/db" {
		t.Errorf("DSNFromEnv() = %q, want DATABASE_URL", dsn)
	}
}
