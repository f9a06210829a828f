package rds

import (
	"fmt"
	"testing"
)

func TestNewGroupTypeRoundTrip(t *testing.T) {
	for code := uint16(0); code <= 31; code++ {
		gt := NewGroupType(code)
		wantNum := int((code >> 1) & 0xF)
		wantAB := "A"
		if code&1 != 0 {
			wantAB = "B"
		}
		want := fmt.Sprintf("%d%s", wantNum, wantAB)
		if got := gt.String(); got != want {
			t.Fatalf("code %d: String() = %q, want %q", code, got, want)
		}
	}
}

func TestGroupTypeStringExact(t *testing.T) {
	cases := []struct {
		code uint16
		want string
	}{
		{0, "0A"},
		{1, "0B"},
		{2, "1A"},
		{31, "15B"},
	}
	for _, c := range cases {
		if got := NewGroupType(c.code).String(); got != c.want {
			t.Errorf("NewGroupType(%d).String() = %q, want %q", c.code, got, c.want)
		}
	}
}

func TestGroupTypeLess(t *testing.T) {
	a := GroupType{Num: 0, AB: TypeA}
	b := GroupType{Num: 0, AB: TypeB}
	c := GroupType{Num: 1, AB: TypeA}
	if !a.Less(b) {
		t.Error("0A should be less than 0B")
	}
	if !b.Less(c) {
		t.Error("0B should be less than 1A")
	}
	if c.Less(a) {
		t.Error("1A should not be less than 0A")
	}
}

func TestBits(t *testing.T) {
	word := uint16(0b1011010110110101)
	if got := Bits(word, 0, 4); got != 0b0101 {
		t.Errorf("Bits(word,0,4) = %04b, want 0101", got)
	}
	if got := Bits(word, 12, 4); got != 0b1011 {
		t.Errorf("Bits(word,12,4) = %04b, want 1011", got)
	}
}

func TestBitsPanicsOnOversizedLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for length > 16")
		}
	}()
	Bits(0, 0, 17)
}
