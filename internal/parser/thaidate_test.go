package parser

import "testing"

func TestParseThaiDate_BuddhistEra(t *testing.T) {
	t.Parallel()

	d, ok := ParseThaiDate("วันที่ 5 พฤษภาคม 2567")
	if !ok {
		t.Fatalf("expected parse")
	}
	if d.Format("2006-01-02") != "2024-05-05" {
		t.Fatalf("unexpected date %s", d.Format("2006-01-02"))
	}
}

func TestParseThaiDate_WithoutLabel(t *testing.T) {
	t.Parallel()

	d, ok := ParseThaiDate("15 ธันวาคม 2566")
	if !ok {
		t.Fatalf("expected parse")
	}
	if d.Format("2006-01-02") != "2023-12-15" {
		t.Fatalf("unexpected date %s", d.Format("2006-01-02"))
	}
}

func TestParseThaiDate_GregorianYearPassesThrough(t *testing.T) {
	t.Parallel()

	d, ok := ParseThaiDate("1 มกราคม 2024")
	if !ok {
		t.Fatalf("expected parse")
	}
	if d.Year() != 2024 {
		t.Fatalf("unexpected year %d", d.Year())
	}
}

func TestParseThaiDate_Invalid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"",
		"วันที่",
		"5 May 2024",
		"30 กุมภาพันธ์ 2567", // Feb 30
		"notaday พฤษภาคม 2567",
	} {
		if _, ok := ParseThaiDate(s); ok {
			t.Fatalf("expected failure for %q", s)
		}
	}
}

func TestGregorianYear(t *testing.T) {
	t.Parallel()

	if got := GregorianYear(2567); got != 2024 {
		t.Fatalf("want 2024 got %d", got)
	}
	if got := GregorianYear(2024); got != 2024 {
		t.Fatalf("want 2024 got %d", got)
	}
}
