package normalizer

import (
	"testing"
	"time"
)

func TestCoerceTimestampSecondsAndMillis(t *testing.T) {
	secs, ok := CoerceTimestamp(float64(1700000000))
	if !ok {
		t.Fatal("seconds value did not coerce")
	}
	millis, ok := CoerceTimestamp(float64(1700000000000))
	if !ok {
		t.Fatal("milliseconds value did not coerce")
	}
	if !secs.Equal(millis) {
		t.Errorf("seconds %v and milliseconds %v normalize to different instants", secs, millis)
	}
	if want := time.Unix(1700000000, 0).UTC(); !secs.Equal(want) {
		t.Errorf("instant = %v; want %v", secs, want)
	}
}

func TestCoerceTimestampVariants(t *testing.T) {
	want := time.Unix(1700000000, 0).UTC()

	cases := []struct {
		name  string
		value interface{}
	}{
		{"int", int(1700000000)},
		{"int64", int64(1700000000)},
		{"numeric string seconds", "1700000000"},
		{"numeric string millis", "1700000000000"},
		{"rfc3339", "2023-11-14T22:13:20Z"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := CoerceTimestamp(c.value)
			if !ok {
				t.Fatalf("CoerceTimestamp(%v) did not parse", c.value)
			}
			if !got.Equal(want) {
				t.Errorf("CoerceTimestamp(%v) = %v; want %v", c.value, got, want)
			}
		})
	}
}

func TestCoerceTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []interface{}{"not a time", "", nil, true, []int{1}} {
		if _, ok := CoerceTimestamp(value); ok {
			t.Errorf("CoerceTimestamp(%v) parsed; want rejection", value)
		}
	}
}
