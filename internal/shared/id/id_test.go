package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.GenerateString()
	id2 := gen.GenerateString()

	assert.Len(t, id1, 26)
	assert.NotEqual(t, id1, id2)
}

func TestTypedIDs(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		prefix string
	}{
		{"trace", NewTraceID().String(), TracePrefix},
		{"span", NewSpanID().String(), SpanPrefix},
		{"request", NewRequestID().String(), RequestPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(tt.id, tt.prefix+"_"), tt.id)
			assert.True(t, IsValid(tt.id))
		})
	}
}

func TestParseAndTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	s := NewTraceID().String()

	_, err := Parse(s)
	require.NoError(t, err)

	ts, err := Timestamp(s)
	require.NoError(t, err)
	assert.True(t, ts.After(before))

	assert.False(t, IsValid("trc_not-a-ulid"))
	_, err = Timestamp("nope")
	assert.Error(t, err)
}

func TestDeterministicEntropy(t *testing.T) {
	zeros := bytes.NewReader(make([]byte, 64))
	gen := NewGeneratorWithEntropy(zeros)

	id := gen.GenerateString()
	assert.True(t, strings.HasSuffix(id, strings.Repeat("0", 16)), id)
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 50
	const idsPerGoroutine = 100

	var wg sync.WaitGroup
	ids := make(chan string, goroutines*idsPerGoroutine)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				ids <- gen.GenerateString()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines*idsPerGoroutine)
}

func TestLexicographicSorting(t *testing.T) {
	gen := NewGenerator()

	ids := make([]string, 5)
	for i := range ids {
		ids[i] = gen.GenerateString()
		time.Sleep(2 * time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
}

func TestDefaultGenerator(t *testing.T) {
	assert.Same(t, Default(), Default())
}
