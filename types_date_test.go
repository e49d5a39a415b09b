package cgt

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2021-04-05", want: NewDate(2021, time.April, 5)},
		{in: "2021-4-5", want: NewDate(2021, time.April, 5)},
		{in: "2021-12-31", want: NewDate(2021, time.December, 31)},
		{in: "05/04/2021", wantErr: true},
		{in: "not-a-date", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q): want an error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDateAdd(t *testing.T) {
	tests := []struct {
		date string
		days int
		want string
	}{
		{"2021-01-15", 30, "2021-02-14"},
		{"2021-01-15", -30, "2020-12-16"},
		{"2021-02-28", 1, "2021-03-01"},
		{"2020-02-28", 1, "2020-02-29"}, // leap year
		{"2021-12-31", 1, "2022-01-01"},
		{"2021-06-01", 0, "2021-06-01"},
	}
	for _, tc := range tests {
		got := MustParse(tc.date).Add(tc.days)
		if got.String() != tc.want {
			t.Errorf("%s.Add(%d) = %s, want %s", tc.date, tc.days, got, tc.want)
		}
	}
}

func TestDateJSON(t *testing.T) {
	in := NewDate(2021, time.April, 5)

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2021-04-05"` {
		t.Errorf("Marshal = %s, want \"2021-04-05\"", data)
	}

	var out Date
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %v, want %v", out, in)
	}

	if err := json.Unmarshal([]byte(`"05/04/2021"`), &out); err == nil {
		t.Error("want an error for a malformed date string")
	}
}

func TestDateOrdering(t *testing.T) {
	a, b := MustParse("2021-04-05"), MustParse("2021-04-06")

	if !a.Before(b) {
		t.Errorf("%s should be before %s", a, b)
	}
	if !b.After(a) {
		t.Errorf("%s should be after %s", b, a)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("%s should be neither before nor after itself", a)
	}
}
