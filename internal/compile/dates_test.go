// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestExtractDates(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantStart string
		wantEnd   string
	}{
		{"since year", "caffeine sleep since 2019", "2019-01-01", "2026-03-15"},
		{"explicit range", "exercise outcomes from 2015 to 2020", "2015-01-01", "2020-12-31"},
		{"hyphenated range", "exercise outcomes from 2015 - 2020", "2015-01-01", "2020-12-31"},
		{"range beats since", "trials from 2015 to 2020 since 2010", "2015-01-01", "2020-12-31"},
		{"no dates", "gut microbiome diversity", "", ""},
		{"bare year not a constraint", "results about 2020 elections", "", ""},
		{"inverted range rejected", "trials from 2020 to 2015", "", ""},
		{"case-insensitive", "vaccines SINCE 2021", "2021-01-01", "2026-03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := ExtractDates(tt.in, testNow)
			if tt.wantStart == "" {
				if !r.IsZero() {
					t.Fatalf("ExtractDates(%q) = %v, want zero range", tt.in, r)
				}
				return
			}
			if got := r.Start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := r.End.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

func TestExtractDatesRemovesPhrase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		gone []string
		kept []string
	}{
		{"since removed", "caffeine sleep since 2019", []string{"since", "2019"}, []string{"caffeine", "sleep"}},
		{"range removed", "trials from 2015 to 2020", []string{"2015", "2020", "from"}, []string{"trials"}},
		{"inverted range still removed", "trials from 2020 to 2015", []string{"2020", "2015"}, []string{"trials"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, topic := ExtractDates(tt.in, testNow)
			for _, s := range tt.gone {
				if strings.Contains(topic, s) {
					t.Errorf("topic %q still contains %q", topic, s)
				}
			}
			for _, s := range tt.kept {
				if !strings.Contains(topic, s) {
					t.Errorf("topic %q lost %q", topic, s)
				}
			}
		})
	}
}
