package profile

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfilerScopesKeepOrder(t *testing.T) {
	p := NewProfiler()
	end := p.Scope("build")
	time.Sleep(time.Millisecond)
	end()
	p.BeginScope("sort")
	p.EndScope("sort")
	p.BeginScope("build")
	p.EndScope("build")

	assert.Equal(t, []string{"build", "sort"}, p.Order)

	p.SetCount("processed", 12)
	out := p.String()
	assert.True(t, strings.Index(out, "build") < strings.Index(out, "sort"))
	assert.Contains(t, out, "processed")
	assert.Contains(t, out, ": 12")
}

func TestProfilerReset(t *testing.T) {
	p := NewProfiler()
	end := p.Scope("classify")
	time.Sleep(time.Millisecond)
	end()
	p.SetCount("kept", 3)
	assert.Greater(t, p.Total(), time.Duration(0))

	p.Reset()
	assert.Equal(t, time.Duration(0), p.Duration("classify"))
	assert.Empty(t, p.Counts)
	assert.Equal(t, []string{"classify"}, p.Order)
	assert.NotContains(t, p.String(), "Stats")
}
