package textmeasure

import "testing"

func TestMeasureEmpty(t *testing.T) {
	s := Measure("")
	if s.Width != 0 || s.Height != 0 {
		t.Errorf("expected zero size for empty text, got %+v", s)
	}
}

func TestMeasureSingleLine(t *testing.T) {
	s := Measure("R1")
	if s.Width != 2*CharWidth {
		t.Errorf("width = %v, want %v", s.Width, 2*CharWidth)
	}
	if s.Height != LineHeight {
		t.Errorf("height = %v, want %v", s.Height, LineHeight)
	}
}

func TestMeasureMultiLineUsesWidestLine(t *testing.T) {
	s := Measure("R1\nVCC_SENSE")
	if s.Width != 9*CharWidth {
		t.Errorf("width = %v, want %v", s.Width, 9*CharWidth)
	}
	if s.Height != 2*LineHeight {
		t.Errorf("height = %v, want %v", s.Height, 2*LineHeight)
	}
}
