package cache

import (
	"testing"
	"time"
)

func TestRecordStr(t *testing.T) {
	rec := Record{"a": "hello", "b": []byte("world"), "c": int64(42), "d": nil}
	if rec.Str("a") != "hello" {
		t.Errorf("Str(a) = %q", rec.Str("a"))
	}
	if rec.Str("b") != "world" {
		t.Errorf("Str(b) = %q", rec.Str("b"))
	}
	if rec.Str("c") != "42" {
		t.Errorf("Str(c) = %q", rec.Str("c"))
	}
	if rec.Str("d") != "" {
		t.Errorf("Str(d) = %q", rec.Str("d"))
	}
	if rec.Str("missing") != "" {
		t.Errorf("Str(missing) = %q", rec.Str("missing"))
	}
}

func TestRecordInt64(t *testing.T) {
	rec := Record{"a": int64(7), "b": "8", "c": []byte("9"), "d": 3.0, "e": "junk"}
	cases := map[string]int64{"a": 7, "b": 8, "c": 9, "d": 3, "e": 0, "missing": 0}
	for key, want := range cases {
		if got := rec.Int64(key); got != want {
			t.Errorf("Int64(%s) = %d, want %d", key, got, want)
		}
	}
}

func TestRecordBoolIsStrictOne(t *testing.T) {
	rec := Record{"yes": int64(1), "no": int64(0), "two": int64(2), "str": "1"}
	if !rec.Bool("yes") {
		t.Error("Bool(yes) should be true")
	}
	if rec.Bool("no") {
		t.Error("Bool(no) should be false")
	}
	// 只有恰好为 1 才算 true
	if rec.Bool("two") {
		t.Error("Bool(two) should be false")
	}
	if !rec.Bool("str") {
		t.Error("Bool(str) should be true for \"1\"")
	}
}

func TestRecordTimeEpochMillis(t *testing.T) {
	ms := int64(1700000000000)
	rec := Record{"at": ms}
	got := rec.Time("at")
	if !got.Equal(time.UnixMilli(ms)) {
		t.Errorf("Time(at) = %v", got)
	}
	if !rec.Time("missing").IsZero() {
		t.Error("Time(missing) should be zero")
	}
}
