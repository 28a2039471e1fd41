package model

import (
	"errors"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	tests := []string{
		`{"a":1,"b":[1,"x",null]}`,
		`[]`,
		`{}`,
		`"s\"q"`,
		`{"z":{"y":[true,false,1.5]},"a":null}`,
		`-3`,
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			n, err := FromJSON([]byte(in))
			if err != nil {
				t.Fatal(err)
			}
			d, err := n.MarshalJSON()
			if err != nil {
				t.Fatal(err)
			}
			if string(d) != in {
				t.Errorf("got %s want %s", d, in)
			}
			back, err := FromJSON(d)
			if err != nil {
				t.Fatal(err)
			}
			if !Equal(n, back) {
				t.Errorf("round trip changed value: %s vs %s", n, back)
			}
		})
	}
}

func TestJSONProjection(t *testing.T) {
	m := FromKeyVals([]KeyVal{
		{Key: Key("b"), Val: FromInt(1)},
		{Key: nil, Val: FromInt(2)},
		{Key: Key("a"), Val: FromInt(3)},
		{Key: Key("b"), Val: FromInt(4)},
	})
	d, err := m.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != `{"b":1,"a":3}` {
		t.Errorf("got %s", d)
	}
}

func TestJSONNumbers(t *testing.T) {
	n, err := FromJSON([]byte(`[1, 1.0, 2.5, 1e3, 12345678901234567890]`))
	if err != nil {
		t.Fatal(err)
	}
	want := []Type{IntType, FloatType, FloatType, FloatType, FloatType}
	for i, ty := range want {
		if got := n.Index(i).Type(); got != ty {
			t.Errorf("[%d]: got %s want %s", i, got, ty)
		}
	}
}

func TestJSONErrors(t *testing.T) {
	for _, in := range []string{``, `[1,`, `{"a":}`, `1 2`} {
		t.Run(in, func(t *testing.T) {
			_, err := FromJSON([]byte(in))
			if !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestUnmarshalJSONAllocatesIDs(t *testing.T) {
	var n Node
	if err := n.UnmarshalJSON([]byte(`{"a":[1,2]}`)); err != nil {
		t.Fatal(err)
	}
	l := n.Get("a")
	if l.MaxID() != 2 {
		t.Errorf("maxID %d", l.MaxID())
	}
}
