package drug

import (
	"strings"
	"testing"
)

func TestClassifyInsufficientInput(t *testing.T) {
	s := newTestStore(t, nil)
	c := NewClassifier(s)
	for _, pair := range [][2]string{{"t", "aspirin"}, {"tylenol", "a"}, {"", "aspirin"}, {"정제", "aspirin"}} {
		v := c.Classify(pair[0], pair[1])
		if v.Level != LevelInsufficient {
			t.Fatalf("Classify(%q, %q).Level = %q, want insufficient-input", pair[0], pair[1], v.Level)
		}
	}
}

func TestClassifyNoDataIsSafe(t *testing.T) {
	s := newTestStore(t, []testRow{
		{"Tylenol", "acetaminophen", "Warfarin", "warfarin", "사망 위험"},
	})
	c := NewClassifier(s)
	v := c.Classify("xx", "yy")
	if v.Level != LevelSafe {
		t.Fatalf("Level = %q, want safe", v.Level)
	}
	if len(v.Reasons) != 1 || !strings.Contains(v.Reasons[0], "'xx'") {
		t.Fatalf("unexpected reasons: %v", v.Reasons)
	}
}

func TestClassifyDangerRoundTrip(t *testing.T) {
	s := newTestStore(t, []testRow{
		{"TylenolER", "acetaminophen", "AspirinPlus", "aspirin", "병용 시 사망 위험이 보고됨"},
	})
	c := NewClassifier(s)
	v := c.Classify("tylenol", "aspirin")
	if v.Level != LevelDanger {
		t.Fatalf("Level = %q, want danger", v.Level)
	}
	found := false
	for _, r := range v.Reasons {
		if strings.Contains(r, "병용 시 사망 위험이 보고됨") {
			found = true
		}
	}
	if !found {
		t.Fatalf("detail missing from reasons: %v", v.Reasons)
	}
}

func TestClassifyOrderSymmetry(t *testing.T) {
	s := newTestStore(t, []testRow{
		{"TylenolER", "acetaminophen", "AspirinPlus", "aspirin", "혈중농도 증가 보고"},
	})
	c := NewClassifier(s)
	ab := c.Classify("tylenol", "aspirin")
	ba := c.Classify("aspirin", "tylenol")
	if ab.Level != ba.Level {
		t.Fatalf("asymmetric levels: %q vs %q", ab.Level, ba.Level)
	}
	if ab.Level != LevelCaution {
		t.Fatalf("Level = %q, want caution", ab.Level)
	}
}

func TestClassifyDangerBeatsCaution(t *testing.T) {
	s := newTestStore(t, []testRow{
		{"TylenolER", "acetaminophen", "AspirinPlus", "aspirin", "혈중농도 증가"},
		{"TylenolER", "acetaminophen", "AspirinPlus", "aspirin", "병용금기 항목"},
	})
	c := NewClassifier(s)
	v := c.Classify("tylenol", "aspirin")
	if v.Level != LevelDanger {
		t.Fatalf("Level = %q, want danger (sticky)", v.Level)
	}
	if len(v.Reasons) != 2 {
		t.Fatalf("want both details reported, got %v", v.Reasons)
	}
}

func TestClassifyTooManyProductsIsAmbiguous(t *testing.T) {
	// Two dosage variants of the same product each paired with a distinct
	// partner: 4 distinct product names > 2, so no verdict is attempted even
	// though the details carry danger keywords.
	s := newTestStore(t, []testRow{
		{"DrugX 50mg", "x", "PartnerA", "a", "병용금기"},
		{"DrugX 100mg", "x", "PartnerB", "b", "병용금기"},
	})
	c := NewClassifier(s)
	v := c.Classify("drugx", "partner")
	if v.Level != LevelAmbiguous {
		t.Fatalf("Level = %q, want ambiguous", v.Level)
	}
}

func TestClassifyNoKeywordFallback(t *testing.T) {
	s := newTestStore(t, []testRow{
		{"TylenolER", "acetaminophen", "AspirinPlus", "aspirin", "특이사항 없음"},
	})
	c := NewClassifier(s)
	v := c.Classify("tylenol", "aspirin")
	if v.Level != LevelAmbiguous {
		t.Fatalf("Level = %q, want ambiguous", v.Level)
	}
	if len(v.Reasons) != 1 || !strings.Contains(v.Reasons[0], "전문가와 상담") {
		t.Fatalf("fallback reason missing: %v", v.Reasons)
	}
}

func TestClassifyDeduplicatesDetails(t *testing.T) {
	s := newTestStore(t, []testRow{
		{"TylenolER", "acetaminophen", "AspirinPlus", "aspirin", "병용금기"},
		{"TylenolER", "x", "AspirinPlus", "y", "병용금기"},
	})
	c := NewClassifier(s)
	v := c.Classify("tylenol", "aspirin")
	if v.Level != LevelDanger {
		t.Fatalf("Level = %q, want danger", v.Level)
	}
	if len(v.Reasons) != 1 {
		t.Fatalf("duplicate detail reported twice: %v", v.Reasons)
	}
}
