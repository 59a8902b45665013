package config

import (
	"net"
	"testing"
)

func TestResolveHostForDocker_RemoteHostsUnchanged(t *testing.T) {
	for _, host := range []string{"redis.internal", "10.0.0.12", "host.docker.internal"} {
		if got := ResolveHostForDocker(host); got != host {
			t.Errorf("ResolveHostForDocker(%q) = %q, want unchanged", host, got)
		}
	}
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "localhost", Port: 6380}

	host, port, err := net.SplitHostPort(cfg.Addr())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != "6380" {
		t.Errorf("expected port 6380, got %s", port)
	}

	want := "localhost"
	if IsRunningInDocker() {
		want = "host.docker.internal"
	}
	if host != want {
		t.Errorf("expected host %s, got %s", want, host)
	}
}
