package cliconfig

import "testing"

func TestGetServerURLDefault(t *testing.T) {
	t.Setenv(EnvServerURL, "")
	t.Setenv(EnvHost, "")
	t.Setenv(EnvPort, "")
	if got := GetServerURL(); got != "http://localhost:4280" {
		t.Errorf("url = %q", got)
	}
}

func TestGetServerURLFromEnv(t *testing.T) {
	t.Setenv(EnvServerURL, "http://remote:9999")
	if got := GetServerURL(); got != "http://remote:9999" {
		t.Errorf("url = %q", got)
	}
}

func TestGetPort(t *testing.T) {
	tests := []struct {
		env  string
		want int
	}{
		{"", DefaultPort},
		{"8080", 8080},
		{"nonsense", DefaultPort},
		{"-1", DefaultPort},
	}
	for _, tt := range tests {
		t.Setenv(EnvPort, tt.env)
		if got := GetPort(); got != tt.want {
			t.Errorf("GetPort() with %q = %d, want %d", tt.env, got, tt.want)
		}
	}
}

func TestGetHost(t *testing.T) {
	t.Setenv(EnvHost, "")
	if GetHost() != DefaultHost {
		t.Error("default host")
	}
	t.Setenv(EnvHost, "0.0.0.0")
	if GetHost() != "0.0.0.0" {
		t.Error("env host")
	}
}
