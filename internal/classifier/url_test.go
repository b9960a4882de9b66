package classifier_test

import (
	"context"
	"testing"

	"github.com/jonesrussell/formsight/internal/classifier"
	"github.com/jonesrussell/formsight/internal/logger"
)

func TestURLAnalyzer_Score(t *testing.T) {
	a := classifier.NewURLAnalyzer(logger.NewNop())

	tests := []struct {
		name string
		url  string
		want int
	}{
		{
			name: "empty url scores zero",
			url:  "",
			want: 0,
		},
		{
			name: "whitespace url scores zero",
			url:  "   ",
			want: 0,
		},
		{
			name: "plain commercial url scores zero",
			url:  "https://example.com/about",
			want: 0,
		},
		{
			name: "gov domain alone",
			url:  "https://irs.gov/",
			want: 25,
		},
		{
			name: "gov domain plus business term",
			url:  "https://mybusiness.dc.gov/",
			want: 30,
		},
		{
			name: "intent term without gov domain",
			url:  "https://legalzoom.com/start-an-llc",
			want: 5,
		},
		{
			name: "registration also contains register",
			url:  "https://example.com/registration",
			want: 10,
		},
		{
			name: "case insensitive matching",
			url:  "HTTPS://MyBusiness.DC.GOV/REGISTER",
			want: 35,
		},
		{
			name: "all terms plus gov domain",
			url:  "https://corp.dc.gov/business/register/entity?type=llc&doc=registration-license-permit-corporation",
			want: 65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Score(context.Background(), tt.url)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}

func TestURLAnalyzer_ScoreBounds(t *testing.T) {
	a := classifier.NewURLAnalyzer(logger.NewNop())

	urls := []string{
		"",
		"not a url at all",
		"https://mybusiness.dc.gov/",
		"https://corp.dc.gov/business/register/entity?type=llc&doc=registration-license-permit-corporation",
		"ftp://weird.scheme.gov/llc",
	}

	for _, u := range urls {
		got, err := a.Score(context.Background(), u)
		if err != nil {
			t.Fatalf("Score(%q) error = %v", u, err)
		}
		if got < 0 || got > 100 {
			t.Errorf("Score(%q) = %d, outside [0,100]", u, got)
		}
	}
}
