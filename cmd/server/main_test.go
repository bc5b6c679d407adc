package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jengzang/shark-tracker-go/internal/middleware"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_PATH", "DATA_SOURCE", "DB_DRIVER", "DB_PATH", "JWT_SECRET", "MARKER_RADIUS_SCALE"} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	setTestEnv(t)
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := execute(t, "token", "--subject", "analyst", "--ttl", "1h")
	if err != nil {
		t.Fatalf("token failed: %v (%s)", err, out)
	}
	claims, err := middleware.ParseToken([]byte("cli-secret"), strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "analyst" {
		t.Fatalf("expected subject analyst, got %q", claims.Subject)
	}
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	setTestEnv(t)
	if _, err := execute(t, "token"); err == nil {
		t.Fatalf("expected an error without JWT_SECRET")
	}
}

func TestImportThenSummary(t *testing.T) {
	setTestEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sharks.csv")
	body := "Region,Latitude,Longitude,Sea_Surface_Temperature_C,Chlorophyll_mg_m3,Shark_Sightings\n" +
		"Pacific,10.5,-150.2,20.0,1.0,3\n" +
		"Atlantic,30.1,-40.0,20.0,2.0,5\n" +
		"Pacific,-5.0,170.0,22.0,1.0,8\n"
	if err := os.WriteFile(csvPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	dbPath := filepath.Join(dir, "store.db")

	if out, err := execute(t, "import", "--data", csvPath, "--db", dbPath); err != nil {
		t.Fatalf("import failed: %v (%s)", err, out)
	}

	out, err := execute(t, "summary", "--db", dbPath)
	if err != nil {
		t.Fatalf("summary failed: %v (%s)", err, out)
	}
	for _, want := range []string{"source:   " + csvPath, "records:  3", "Atlantic", "Pacific"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary output missing %q:\n%s", want, out)
		}
	}
}
