package utils

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "time value", in: ts, want: "3/5/2024"},
		{name: "time pointer", in: &ts, want: "3/5/2024"},
		{name: "date only string", in: "2024-12-31", want: "12/31/2024"},
		{name: "rfc3339 string", in: "2024-03-05T14:30:00Z", want: "3/5/2024"},
		{name: "us string", in: "7/4/2021", want: "7/4/2021"},
		{name: "unix millis", in: ts.UnixMilli(), want: "3/5/2024"},
		{name: "garbage string", in: "not a date", want: InvalidDate},
		{name: "empty string", in: "", want: InvalidDate},
		{name: "nil pointer", in: (*time.Time)(nil), want: InvalidDate},
		{name: "zero time", in: time.Time{}, want: InvalidDate},
		{name: "unsupported type", in: struct{}{}, want: InvalidDate},
		{name: "nan", in: math.NaN(), want: InvalidDate},
		{name: "positive infinity", in: math.Inf(1), want: InvalidDate},
		{name: "negative infinity", in: math.Inf(-1), want: InvalidDate},
		{name: "float out of range", in: 1e20, want: InvalidDate},
		{name: "int64 out of range", in: int64(9e15), want: InvalidDate},
		{name: "negative out of range", in: int64(-9e15), want: InvalidDate},
		{name: "float millis", in: float64(ts.UnixMilli()), want: "3/5/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestParseJSONSafe(t *testing.T) {
	assert.Nil(t, ParseJSONSafe("{bad json"))
	assert.Nil(t, ParseJSONSafe(""))
	assert.Equal(t, map[string]any{"a": float64(1)}, ParseJSONSafe(`{"a":1}`))
	assert.Equal(t, []any{"x", true}, ParseJSONSafe(`["x",true]`))
}

func TestBuildAuthHeader(t *testing.T) {
	assert.Equal(t, map[string]string{"Authorization": "Bearer xyz"}, BuildAuthHeader("xyz"))
}

func TestDebounceRunsOnlyLastCall(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []int
	)
	fn := Debounce(func(n int) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, n)
	}, 300*time.Millisecond)

	for i := 1; i <= 5; i++ {
		fn(i)
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) > 0
	}, 2*time.Second, 10*time.Millisecond)

	// give a would-be second call time to show up
	time.Sleep(400 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, calls)
}

func TestDebounceSeparateWindows(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	fn := Debounce(func(s string) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, s)
	}, 30*time.Millisecond)

	fn("first")
	time.Sleep(150 * time.Millisecond)
	fn("second")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 2
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "def", DefaultIfEmpty("  ", "def"))
	assert.Equal(t, "abc…", Truncate("abcdef", 3, true))
	assert.Equal(t, 5*time.Second, MustParseDuration("oops", 5*time.Second))
	assert.Equal(t, 7, CoalesceVal(0, 7, 9))
	assert.Equal(t, map[string]int{"a": 1, "b": 3}, MergeMaps(map[string]int{"a": 1, "b": 2}, map[string]int{"b": 3}))
}
