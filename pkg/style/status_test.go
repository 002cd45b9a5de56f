package style

import (
	"strings"
	"testing"
	"time"
)

func TestRenderJobLine(t *testing.T) {
	// time.Local keeps the Local() conversion inside RenderJobLine an
	// identity, whatever zone the test host runs in
	when := time.Date(2024, 7, 1, 15, 4, 0, 0, time.Local)

	tests := []struct {
		name     string
		line     JobLine
		contains []string
	}{
		{
			name: "printed job",
			line: JobLine{
				When:     when,
				Template: "ticket",
				Target:   "192.168.1.50",
				Status:   StatusPrinted,
			},
			contains: []string{"2024-07-01 15:04", "printed", "ticket", "192.168.1.50"},
		},
		{
			name: "failed job carries the error",
			line: JobLine{
				When:     when,
				Template: "shopping_list",
				Target:   "192.168.1.50",
				Status:   StatusFailed,
				Error:    "Cannot reach printer at 192.168.1.50:9100",
			},
			contains: []string{"failed", "shopping_list", "Cannot reach printer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderJobLine(tt.line)
			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("Expected output to contain %q, got %q", expected, result)
				}
			}
		})
	}
}

func TestRenderJobLineErrorOnSecondLine(t *testing.T) {
	line := JobLine{
		When:     time.Date(2024, 7, 1, 15, 4, 0, 0, time.Local),
		Template: "ticket",
		Target:   "printer.local",
		Status:   StatusFailed,
		Error:    "connection refused",
	}

	result := RenderJobLine(line)
	parts := strings.SplitN(result, "\n", 2)
	if len(parts) != 2 {
		t.Fatalf("Expected two lines, got %q", result)
	}
	if strings.Contains(parts[0], "connection refused") {
		t.Errorf("Error should not be on the first line: %q", parts[0])
	}
	if !strings.Contains(parts[1], "connection refused") {
		t.Errorf("Expected error on the second line, got %q", parts[1])
	}
}

func TestRenderHistory(t *testing.T) {
	when := time.Date(2024, 7, 1, 15, 4, 0, 0, time.Local)

	result := RenderHistory([]JobLine{
		{When: when, Template: "ticket", Target: "a", Status: StatusPrinted},
		{When: when, Template: "quote", Target: "a", Status: StatusPrinted},
	})
	for _, expected := range []string{"ticket", "quote"} {
		if !strings.Contains(result, expected) {
			t.Errorf("Expected listing to contain %q, got:\n%s", expected, result)
		}
	}
	if strings.HasSuffix(result, "\n") {
		t.Errorf("Listing should not end with a newline")
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	result := RenderHistory(nil)
	if !strings.Contains(result, "No print jobs recorded yet.") {
		t.Errorf("Expected empty-history message, got %q", result)
	}
}

func TestStatusStyle(t *testing.T) {
	for _, status := range []Status{StatusPrinted, StatusFailed, Status("odd")} {
		if StatusStyle(status) == nil {
			t.Errorf("Expected a style for status %q", status)
		}
	}
}
