package timezone_test

import (
	"testing"
	"time"

	"atrium/shared/timezone"
)

func TestNow_ReturnsAppLocation(t *testing.T) {
	now := timezone.Now()

	if now.Location().String() != timezone.GetLocation().String() {
		t.Errorf("expected Now() in location %s, got %s", timezone.GetLocation(), now.Location())
	}
}

func TestToday_TruncatesToMidnight(t *testing.T) {
	today := timezone.Today()

	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 || today.Nanosecond() != 0 {
		t.Errorf("expected midnight, got %s", today)
	}

	if today.Location().String() != timezone.GetLocation().String() {
		t.Errorf("expected Today() in app location, got %s", today.Location())
	}
}

func TestParseAndFormat_RoundTrip(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2024-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := timezone.Format(parsed, "2006-01-02"); got != "2024-01-10" {
		t.Errorf("expected 2024-01-10, got %s", got)
	}
}

func TestToAppTime_ConvertsLocation(t *testing.T) {
	utc := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	converted := timezone.ToAppTime(utc)

	if !converted.Equal(utc) {
		t.Errorf("conversion must not change the instant: %s vs %s", utc, converted)
	}
}
