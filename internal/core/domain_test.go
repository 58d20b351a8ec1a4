package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Food", Food, true},
		{"food", Food, true},
		{"TRAVEL", Travel, true},
		{"entertainment", Entertainment, true},
		{"Bills", Bills, true},
		{"sHoPpInG", Shopping, true},
		{"Groceries", "", false},
		{"", "", false},
		{"None", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestParseInstant(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-10", "2024-01-10T00:00:00.000Z", true},
		{"2024-01-10T10:30", "2024-01-10T10:30:00.000Z", true},
		{"2024-01-10T10:30:15", "2024-01-10T10:30:15.000Z", true},
		{"2024-01-10T10:30:15.1234", "2024-01-10T10:30:15.123Z", true},
		{"2024-01-10T10:30:15Z", "2024-01-10T10:30:15.000Z", true},
		{"2024-01-10T12:00:00+02:00", "2024-01-10T10:00:00.000Z", true},
		{" 2024-02-29 ", "2024-02-29T00:00:00.000Z", true},
		{"0000-01-01", "0000-01-01T00:00:00.000Z", true},
		{"9999-12-31T23:59:59.999Z", "9999-12-31T23:59:59.999Z", true},
		{"9999-12-31T23:59:59-01:00", "", false},
		{"0000-01-01T00:30:00+01:00", "", false},
		{"2023-02-29", "", false},
		{"not-a-date", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseInstant(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.want {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %s", tc.in, got)
		}
	}
}

func TestInstantJSON(t *testing.T) {
	in := NewInstant(time.Date(2024, 1, 15, 8, 0, 0, 0, time.FixedZone("CET", 3600)))
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15T07:00:00.000Z"` {
		t.Fatalf("unexpected json: %s", b)
	}
	var back Instant
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(in.Time) {
		t.Fatalf("expected %s, got %s", in, back)
	}
}

func TestInstantWithin(t *testing.T) {
	start, _ := ParseInstant("2024-01-01")
	end, _ := ParseInstant("2024-01-31")
	cases := []struct {
		date string
		ok   bool
	}{
		{"2024-01-01", true},
		{"2024-01-31", true},
		{"2024-01-15T12:00:00Z", true},
		{"2023-12-31T23:59:59.999Z", false},
		{"2024-01-31T00:00:00.001Z", false},
	}
	for _, tc := range cases {
		d, err := ParseInstant(tc.date)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.date, err)
		}
		if got := d.Within(start, end); got != tc.ok {
			t.Fatalf("%q within=%v, want %v", tc.date, got, tc.ok)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	date, _ := ParseInstant("2024-01-10")
	good := Expense{ID: "a", Category: Food, Amount: 1.5, Date: date}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{ID: "", Category: Food, Amount: 1, Date: date},
		{ID: "a", Category: "Rent", Amount: 1, Date: date},
		{ID: "a", Category: Food, Amount: 0, Date: date},
		{ID: "a", Category: Food, Amount: -3, Date: date},
		{ID: "a", Category: Food, Amount: 1},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
