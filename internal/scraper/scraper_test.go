package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseLines(t *testing.T) {
	// Load test fixture
	data, err := os.ReadFile("../../testdata/fixtures/sample_schedule.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	lines, err := ParseLines(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("ParseLines failed: %v", err)
	}

	want := []string{
		"Home",
		"Gameday",
		"2025 NFL Schedule",
		"WEEK 1",
		"Thursday, Sept. 4, 2025",
		"Dallas Cowboys at Philadelphia Eagles",
		"8:20p (ET)",
		"8:20p",
		"NBC",
		"Friday, Sept. 5, 2025",
		"Kansas City Chiefs vs Los Angeles Chargers (Sao Paulo)",
		"9:00p (BRT)",
		"8:00p",
		"YouTube",
		"Sunday, Sept. 07, 2025",
		"Tampa Bay Buccaneers at Atlanta Falcons",
		"1:00p (ET)",
		"1:00p",
		"FOX",
		"San Francisco 49ers at Seattle Seahawks",
		"1:05p (PT)",
		"4:05p",
		"FOX",
		"WEEK 2",
		"Thursday, Sept. 11, 2025",
		"Washington Commanders at Green Bay Packers",
		"7:15p (CT)",
		"8:15p",
		"Prime Video",
		"© 2025 NFL Enterprises LLC",
	}

	if !reflect.DeepEqual(lines, want) {
		t.Errorf("ParseLines() =\n%q\nwant\n%q", lines, want)
	}
}

func TestParseLinesSkipsScripts(t *testing.T) {
	page := `<html><head><script>var x = "WEEK 1";</script></head>
		<body><style>p { color: red }</style><p>WEEK 2</p><script>"8:20p"</script></body></html>`

	lines, err := ParseLines(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseLines failed: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"WEEK 2"}) {
		t.Errorf("ParseLines() = %q, want [WEEK 2]", lines)
	}
}

func TestSplitLines(t *testing.T) {
	input := "WEEK 1\n\n   Thursday,   Sept. 4, 2025  \r\n\tDallas Cowboys at Philadelphia Eagles\n"

	lines, err := SplitLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("SplitLines failed: %v", err)
	}

	want := []string{"WEEK 1", "Thursday, Sept. 4, 2025", "Dallas Cowboys at Philadelphia Eagles"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("SplitLines() = %q, want %q", lines, want)
	}
}

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  WEEK   1 ", "WEEK 1"},
		{"8:20p\t(ET)", "8:20p (ET)"},
		{"Dallas Cowboys", "Dallas Cowboys"},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeLine(tt.in); got != tt.want {
				t.Errorf("NormalizeLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFetchLines(t *testing.T) {
	tests := []struct {
		name        string
		htmlContent string
		statusCode  int
		wantError   bool
		wantLines   []string
	}{
		{
			name: "successful fetch",
			htmlContent: `
				<html>
					<body>
						<h2>WEEK 1</h2>
						<p>Thursday, Sept. 4, 2025</p>
					</body>
				</html>
			`,
			statusCode: http.StatusOK,
			wantLines:  []string{"WEEK 1", "Thursday, Sept. 4, 2025"},
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantError:  true,
		},
		{
			name:        "empty page",
			htmlContent: `<html><body></body></html>`,
			statusCode:  http.StatusOK,
			wantLines:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "pickem-schedule") {
					t.Errorf("User-Agent = %q, should contain 'pickem-schedule'", userAgent)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			s := New(server.URL, time.Second)

			lines, err := s.FetchLines(context.Background())

			if tt.wantError {
				if err == nil {
					t.Error("FetchLines() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchLines() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(lines, tt.wantLines) {
				t.Errorf("FetchLines() = %q, want %q", lines, tt.wantLines)
			}
		})
	}
}

func TestFetchLinesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	s := New(server.URL, 50*time.Millisecond)
	if _, err := s.FetchLines(context.Background()); err == nil {
		t.Error("FetchLines() expected timeout error, got nil")
	}
}

func TestFetchLinesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New("http://127.0.0.1:0", time.Second)
	if _, err := s.FetchLines(ctx); err == nil {
		t.Error("FetchLines() expected error for canceled context, got nil")
	}
}

func TestNewDefaults(t *testing.T) {
	s := New("", 0)
	if s.URL() != ScheduleURL {
		t.Errorf("URL() = %q, want %q", s.URL(), ScheduleURL)
	}
	if s.client.Timeout != Timeout {
		t.Errorf("client.Timeout = %v, want %v", s.client.Timeout, Timeout)
	}
}
