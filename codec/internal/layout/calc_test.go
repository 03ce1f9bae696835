package layout

import (
	"errors"
	"sync"
	"testing"

	"github.com/wippyai/vm-abi/codec/internal/types"
)

func TestCalculate(t *testing.T) {
	c := NewCalculator(0)

	tests := []struct {
		name   string
		typ    *types.Type
		packed bool
		want   Info
	}{
		{"u8", types.U8, false, Info{Raw: 8, Element: 1, Member: 8}},
		{"u8 packed", types.U8, true, Info{Raw: 1, Element: 1, Member: 8}},
		{"u256", types.U256, false, Info{Raw: 32, Element: 32, Member: 32}},
		{"vector", types.NewVector(types.U8), false, Info{Raw: 24, Element: 24, Member: 24}},
		{"array", types.NewArray(types.U8, 3), false, Info{Raw: 3, Element: 3, Member: 8}},
		{
			"enum",
			types.NewEnum("E", types.Field{Name: "A", Type: types.U8}, types.Field{Name: "B", Type: types.U128}),
			false,
			Info{Raw: 24, Element: 24, Member: 24, Payload: 16},
		},
		{
			"unit enum",
			types.NewEnum("E", types.Field{Name: "A", Type: types.Unit}),
			false,
			Info{Raw: 8, Element: 8, Member: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Calculate(tt.typ, tt.packed)
			if err != nil {
				t.Fatalf("Calculate() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateCaches(t *testing.T) {
	c := NewCalculator(2)
	typ := types.NewTuple(types.U8, types.U64)

	for range 3 {
		if _, err := c.Calculate(typ, false); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	if _, err := c.Calculate(typ, true); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Calculate(types.NewArray(types.U16, 2), false); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want bounded size 2", c.Len())
	}
}

func TestCalculateLeavesUncached(t *testing.T) {
	c := NewCalculator(0)
	leaf := &types.Type{Kind: types.KindU8}

	info, err := c.Calculate(leaf, false)
	if err != nil || info.Element != 1 {
		t.Fatalf("Calculate() = %+v, %v", info, err)
	}
	for _, typ := range []*types.Type{types.U8, types.U64, types.Bytes, types.B256} {
		if _, err := c.Calculate(typ, false); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, leaf widths must not be cached", c.Len())
	}

	// a leaf is sized from its current kind, never from a stale entry
	leaf.Kind = types.KindU64
	if info, _ := c.Calculate(leaf, false); info.Element != 8 {
		t.Errorf("Calculate() Element = %d, want 8", info.Element)
	}
}

func TestCalculateOverflow(t *testing.T) {
	c := NewCalculator(0)
	_, err := c.Calculate(types.NewArray(types.U64, 1<<62), false)
	if !errors.Is(err, types.ErrWidthOverflow) {
		t.Errorf("Calculate() error = %v, want ErrWidthOverflow", err)
	}
	if c.Len() != 0 {
		t.Error("failed calculations must not be cached")
	}
}

func TestEnumPadding(t *testing.T) {
	c := NewCalculator(0)
	enum := types.NewEnumVariants(
		types.Field{Name: "Small", Type: types.U8},
		types.Field{Name: "Big", Type: types.B256},
	)

	tests := []struct {
		disc   uint64
		packed bool
		want   uint64
	}{
		{0, false, 24},
		{0, true, 31},
		{1, false, 0},
	}
	for _, tt := range tests {
		got, err := c.EnumPadding(enum, tt.disc, tt.packed)
		if err != nil {
			t.Fatalf("EnumPadding(%d) error: %v", tt.disc, err)
		}
		if got != tt.want {
			t.Errorf("EnumPadding(%d, %v) = %d, want %d", tt.disc, tt.packed, got, tt.want)
		}
	}

	if _, err := c.EnumPadding(enum, 2, false); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("EnumPadding(2) error = %v", err)
	}

	if w, err := c.EnumWidth(enum, false); err != nil || w != 32 {
		t.Errorf("EnumWidth() = %d, %v", w, err)
	}
	units := types.NewEnumVariants(types.Field{Name: "A", Type: types.Unit})
	if p, err := c.EnumPadding(units, 0, false); err != nil || p != 0 {
		t.Errorf("unit EnumPadding() = %d, %v", p, err)
	}
}

func TestCalculateConcurrent(t *testing.T) {
	c := NewCalculator(8)
	typ := types.NewStruct("S", types.Field{Name: "a", Type: types.NewArray(types.U16, 4)})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info, err := c.Calculate(typ, false)
			if err != nil || info.Raw != 32 {
				t.Errorf("Calculate() = %+v, %v", info, err)
			}
		}()
	}
	wg.Wait()
}
