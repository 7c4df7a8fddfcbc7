package timecode

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"srt comma", "00:00:01,500", 1.5, false},
		{"vtt dot", "01:02:03.004", 3723.004, false},
		{"single digit hour", "1:00:00,000", 3600, false},
		{"vtt short form", "02:03.250", 123.25, false},
		{"no millis", "00:00:07", 7, false},
		{"padded spaces", "  00:00:02,000 ", 2, false},
		{"empty", "", 0, true},
		{"garbage", "abc", 0, true},
		{"too many parts", "1:2:3:4,000", 0, true},
		{"minutes overflow", "00:61:00,000", 0, true},
		{"bad millis", "00:00:01,abc", 0, true},
		{"long millis", "00:00:01,1234", 0, true},
		{"large hours", "99999:00:00,000", 359996400, false},
		{"hours overflow", "9999999999999:00:00,000", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Seconds != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got.Seconds, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds float64
		sep     string
		want    string
	}{
		{0, ",", "00:00:00,000"},
		{1.5, ",", "00:00:01,500"},
		{3723.004, ".", "01:02:03.004"},
		{-3, ",", "00:00:00,000"},
	}

	for _, tt := range tests {
		if got := Format(tt.seconds, tt.sep); got != tt.want {
			t.Errorf("Format(%v, %q) = %q, want %q", tt.seconds, tt.sep, got, tt.want)
		}
	}
}

func TestRoundTripMillisecond(t *testing.T) {
	for _, raw := range []string{"00:00:00,001", "00:59:59,999", "12:34:56,789"} {
		tc, err := Parse(raw)
		if err != nil {
			t.Fatal(err)
		}
		if got := Format(tc.Seconds, ","); got != raw {
			t.Errorf("round trip %q -> %q", raw, got)
		}
	}
}

func TestBetween(t *testing.T) {
	start, _ := Parse("00:00:01,100")
	end, _ := Parse("00:00:03,300")
	if got := Between(start, end); got != 2.2 {
		t.Errorf("Between() = %v, want 2.2", got)
	}
}
