package simpleutf

import "testing"

func TestForm(t *testing.T) {
	tests := []struct {
		form     Form
		name     string
		unitSize int
		maxUnits int
		valid    bool
	}{
		{UTF8, "utf-8", 1, 4, true},
		{UTF16, "utf-16", 2, 2, true},
		{UTF32, "utf-32", 4, 1, true},
		{Form(0), "unknown", 0, 0, false},
		{Form(4), "unknown", 0, 0, false},
	}

	for _, tt := range tests {
		if got := tt.form.String(); got != tt.name {
			t.Errorf("Form(%d).String() = %q, want %q", tt.form, got, tt.name)
		}
		if got := tt.form.UnitSize(); got != tt.unitSize {
			t.Errorf("%s.UnitSize() = %d, want %d", tt.name, got, tt.unitSize)
		}
		if got := tt.form.MaxUnits(); got != tt.maxUnits {
			t.Errorf("%s.MaxUnits() = %d, want %d", tt.name, got, tt.maxUnits)
		}
		if got := tt.form.Valid(); got != tt.valid {
			t.Errorf("Form(%d).Valid() = %v, want %v", tt.form, got, tt.valid)
		}
	}
}

func TestSliceSink(t *testing.T) {
	s := NewSliceSink[uint16](4)
	if s.Len() != 0 || cap(s.Units) != 4 {
		t.Fatalf("NewSliceSink: len=%d cap=%d", s.Len(), cap(s.Units))
	}

	s.Append(0xD83D, 0xDE02)
	s.Append(0x20)
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	s.Reset()
	if s.Len() != 0 || cap(s.Units) != 4 {
		t.Errorf("Reset: len=%d cap=%d", s.Len(), cap(s.Units))
	}
}

func TestSinkFunc(t *testing.T) {
	var got []byte
	var sink Sink[byte] = SinkFunc[byte](func(units ...byte) {
		got = append(got, units...)
	})
	sink.Append('a', 'b')
	sink.Append('c')
	if string(got) != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}

	var d Sink[uint32] = Discard[uint32]{}
	d.Append(1, 2, 3)
}
