package statement

import (
	"testing"

	"cloud.google.com/go/civil"
)

func TestParseDateFormats(t *testing.T) {
	want := civil.Date{Year: 2024, Month: 3, Day: 7}

	cases := []string{"2024-03-07", "03/07/2024", "03-07-2024", "2024/03/07", "  2024-03-07  "}
	for _, in := range cases {
		d, ok, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q) returned error: %v", in, err)
		}
		if !ok {
			t.Fatalf("ParseDate(%q) reported absent", in)
		}
		if d != want {
			t.Fatalf("ParseDate(%q) = %v, want %v", in, d, want)
		}
	}
}

func TestParseDateBlank(t *testing.T) {
	for _, in := range []string{"", "   "} {
		_, ok, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q) returned error: %v", in, err)
		}
		if ok {
			t.Fatalf("ParseDate(%q) reported present", in)
		}
	}
}

func TestParseDateUnmatched(t *testing.T) {
	for _, in := range []string{"07.03.2024", "March 7, 2024", "20240307", "not a date"} {
		_, _, err := ParseDate(in)
		if err == nil {
			t.Fatalf("ParseDate(%q) did not fail", in)
		}
	}
}

func TestCleanAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"$1,234.56", "1234.56"},
		{"-$42.00", "-42.00"},
		{"  19.99 ", "19.99"},
		{"0", "0"},
		{"", "0.00"},
		{"   ", "0.00"},
	}
	for _, c := range cases {
		d, err := CleanAmount(c.in)
		if err != nil {
			t.Fatalf("CleanAmount(%q) returned error: %v", c.in, err)
		}
		if d.String() != c.want {
			t.Fatalf("CleanAmount(%q) = %s, want %s", c.in, d.String(), c.want)
		}
	}
}

func TestCleanAmountMalformed(t *testing.T) {
	for _, in := range []string{"abc", "12.3.4", "12x"} {
		if _, err := CleanAmount(in); err == nil {
			t.Fatalf("CleanAmount(%q) did not fail", in)
		}
	}
}
