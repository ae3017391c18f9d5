package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverRedis, Addrs: []string{"localhost:6379"}},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	for _, driver := range []string{DriverRedis, DriverValkey} {
		cfg := validConfig()
		cfg.Database.Driver = driver
		cfg.Database.Addrs = nil
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected error for missing addrs", driver)
		}
	}
}

func TestValidate_Mongo(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{Driver: DriverMongo}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing uri")
	}

	cfg.Database.URI = "mongodb://localhost:27017"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database name")
	}

	cfg.Database.Database = "stayfinder"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "postgres"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	want := `database.driver must be redis, valkey or mongo, got "postgres"`
	if err.Error() != want {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), want)
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Database.Driver != DriverRedis {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Search.DefaultRadiusKm != 30 {
		t.Errorf("default radius = %v", cfg.Search.DefaultRadiusKm)
	}
	if cfg.Search.StoreTimeoutMs != 2000 {
		t.Errorf("store timeout = %d", cfg.Search.StoreTimeoutMs)
	}
	if cfg.Storage.KeyPrefix != "stayfinder:" {
		t.Errorf("key prefix = %q", cfg.Storage.KeyPrefix)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("http timeouts not defaulted: %+v", cfg.HTTP)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{Search: SearchConfig{DefaultRadiusKm: 5, StoreTimeoutMs: 100}}
	cfg.ApplyDefaults()
	if cfg.Search.DefaultRadiusKm != 5 || cfg.Search.StoreTimeoutMs != 100 {
		t.Errorf("explicit search config overwritten: %+v", cfg.Search)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("STAYFINDER_TEST_PORT", "9090")

	data := []byte(`
http:
  port: ${STAYFINDER_TEST_PORT}
database:
  driver: ${STAYFINDER_TEST_DRIVER:-valkey}
  addrs: ["localhost:6379"]
search:
  default_radius_km: 12.5
landmarks:
  file: config/landmarks.json
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != DriverValkey {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Search.DefaultRadiusKm != 12.5 {
		t.Errorf("radius = %v", cfg.Search.DefaultRadiusKm)
	}
	if cfg.Landmarks.File != "config/landmarks.json" {
		t.Errorf("landmarks file = %q", cfg.Landmarks.File)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected yaml error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("STAYFINDER_DOTENV_TEST=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("STAYFINDER_DOTENV_TEST") })

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("STAYFINDER_DOTENV_TEST"); got != "loaded" {
		t.Errorf("env = %q", got)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("missing .env must be ignored: %v", err)
	}
}
