package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type testConf struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (c *testConf) Validate() error {
	if c.Port == 0 {
		return fmt.Errorf("port is required")
	}
	return nil
}

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_CONF_NAME", "expanded")
	path := writeConf(t, "name: ${TEST_CONF_NAME}\nport: 9000\n")

	var c testConf
	if err := Load(path, &c); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Name != "expanded" {
		t.Errorf("name = %q, want expanded", c.Name)
	}
	if c.Port != 9000 {
		t.Errorf("port = %d", c.Port)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConf(t, "name: x\n")

	var c testConf
	if err := Load(path, &c); err == nil {
		t.Fatal("expected validation error for missing port")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var c testConf
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &c); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadWithDefaults_FallsBack(t *testing.T) {
	fallback := writeConf(t, "name: fallback\nport: 8000\n")

	var c testConf
	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "nope.yaml"), fallback, &c); err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if c.Name != "fallback" {
		t.Errorf("name = %q, want fallback", c.Name)
	}
}
