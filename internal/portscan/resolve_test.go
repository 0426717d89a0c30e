package portscan

import (
	"context"
	"net"
	"testing"

	"github.com/pkg/errors"
)

func TestResolve_LiteralIPv4(t *testing.T) {
	r := &Resolver{Lookup: func(context.Context, string) ([]net.IPAddr, error) {
		t.Fatal("lookup should not be called for a literal address")
		return nil, nil
	}}
	target, err := r.Resolve(context.Background(), "127.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Address != "127.0.0.1" || target.Family != IPv4 || target.HostName != "127.0.0.1" {
		t.Fatalf("unexpected target %+v", target)
	}
}

func TestResolve_LiteralIPv6(t *testing.T) {
	target, err := NewResolver().Resolve(context.Background(), "[::1]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Address != "::1" || target.Family != IPv6 {
		t.Fatalf("unexpected target %+v", target)
	}
}

func TestResolve_TakesFirstAddress(t *testing.T) {
	r := &Resolver{Lookup: func(_ context.Context, host string) ([]net.IPAddr, error) {
		if host != "scanme.example" {
			t.Fatalf("unexpected host %q", host)
		}
		return []net.IPAddr{
			{IP: net.ParseIP("2001:db8::10")},
			{IP: net.ParseIP("192.0.2.10")},
		}, nil
	}}
	target, err := r.Resolve(context.Background(), "scanme.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Address != "2001:db8::10" || target.Family != IPv6 {
		t.Fatalf("expected first (IPv6) address, got %+v", target)
	}
	if target.HostName != "scanme.example" {
		t.Fatalf("host name not kept: %+v", target)
	}
}

func TestResolve_Failures(t *testing.T) {
	failing := &Resolver{Lookup: func(context.Context, string) ([]net.IPAddr, error) {
		return nil, &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}
	}}
	empty := &Resolver{Lookup: func(context.Context, string) ([]net.IPAddr, error) {
		return nil, nil
	}}

	cases := []struct {
		name string
		r    *Resolver
		host string
	}{
		{"lookup error", failing, "nope.invalid"},
		{"no addresses", empty, "empty.example"},
		{"blank", failing, "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.r.Resolve(context.Background(), tc.host)
			if !errors.Is(err, ErrResolution) {
				t.Fatalf("expected ErrResolution, got %v", err)
			}
		})
	}
}
