package logger

import (
	"reflect"
	"testing"
)

func TestRedact(t *testing.T) {
	in := []interface{}{"userId", "u1", "jwt_token", "abc", "apiKey", "k", "dangling"}
	got := redact(in)
	want := []interface{}{"userId", "u1", "jwt_token", "[REDACTED]", "apiKey", "[REDACTED]", "dangling"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("redact = %v, want %v", got, want)
	}
	if in[3] != "abc" {
		t.Error("redact must not modify its input")
	}
}

func TestNopAndWith(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("hello", "k", 1)
	l.Sync()
}
