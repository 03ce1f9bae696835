package abi

import (
	"math"
	"testing"
)

func TestSafeMulU64(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint64
		want   uint64
		wantOK bool
	}{
		{"zero * zero", 0, 0, 0, true},
		{"zero * max", 0, math.MaxUint64, 0, true},
		{"one * max", 1, math.MaxUint64, math.MaxUint64, true},
		{"small * small", 100, 200, 20000, true},
		{"overflow", math.MaxUint64, 2, 0, false},
		{"edge case ok", 1 << 32, 1<<32 - 1, (1 << 32) * (1<<32 - 1), true},
		{"edge case overflow", 1 << 32, 1 << 32, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeMulU64(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Errorf("SafeMulU64(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SafeMulU64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSafeAddU64(t *testing.T) {
	if _, ok := SafeAddU64(math.MaxUint64, 1); ok {
		t.Error("MaxUint64 + 1 should overflow")
	}
	if v, ok := SafeAddU64(40, 2); !ok || v != 42 {
		t.Errorf("40 + 2 = %d, %v", v, ok)
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		n       uint64
		aligned uint64
		padding uint64
	}{
		{0, 0, 0},
		{1, 8, 7},
		{7, 8, 1},
		{8, 8, 0},
		{9, 16, 7},
		{24, 24, 0},
		{33, 40, 7},
	}

	for _, tt := range tests {
		got, ok := AlignToWord(tt.n)
		if !ok || got != tt.aligned {
			t.Errorf("AlignToWord(%d) = %d, %v; want %d", tt.n, got, ok, tt.aligned)
		}
		if p := WordPadding(tt.n); p != tt.padding {
			t.Errorf("WordPadding(%d) = %d, want %d", tt.n, p, tt.padding)
		}
	}

	if _, ok := AlignToWord(math.MaxUint64 - 3); ok {
		t.Error("AlignToWord near MaxUint64 should overflow")
	}
}

func TestIsASCII(t *testing.T) {
	if !IsASCII([]byte("hello")) || !IsASCIIString("hello") {
		t.Error("plain text should be ASCII")
	}
	if IsASCII([]byte("héllo")) || IsASCIIString("héllo") {
		t.Error("accented text should not be ASCII")
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "nil"},
		{"int", 42, "int"},
		{"string", "hello", "string"},
		{"slice", []int{1, 2, 3}, "[]int"},
		{"pointer", new(int), "*int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeName(tt.input); got != tt.want {
				t.Errorf("TypeName(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
