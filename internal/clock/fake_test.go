package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFake_NowAdvances(t *testing.T) {
	c := Fake(epoch)
	assert.True(t, c.Now().Equal(epoch))

	c.Advance(5 * time.Second)
	assert.True(t, c.Now().Equal(epoch.Add(5*time.Second)))
}

func TestFake_AfterFuncFiresOnDeadline(t *testing.T) {
	c := Fake(epoch)
	fired := 0
	c.AfterFunc(3*time.Second, func() { fired++ })

	c.Advance(2 * time.Second)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, c.PendingCount())

	c.Advance(time.Second)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, c.PendingCount())

	c.Advance(10 * time.Second)
	assert.Equal(t, 1, fired, "one-shot timer must not fire twice")
}

func TestFake_NonPositiveDurationRunsImmediately(t *testing.T) {
	c := Fake(epoch)
	fired := false
	c.AfterFunc(0, func() { fired = true })
	assert.True(t, fired)
	assert.Equal(t, 0, c.PendingCount())
}

func TestFake_StopCancels(t *testing.T) {
	c := Fake(epoch)
	fired := false
	tm := c.AfterFunc(time.Second, func() { fired = true })

	require.True(t, tm.Stop())
	require.False(t, tm.Stop())
	c.Advance(time.Minute)

	assert.False(t, fired)
	assert.Equal(t, 0, c.PendingCount())
}

func TestFake_ResetFromCallbackRearms(t *testing.T) {
	c := Fake(epoch)
	var tm *Timer
	ticks := 0
	tm = c.AfterFunc(time.Second, func() {
		ticks++
		if ticks < 3 {
			tm.Reset(time.Second)
		}
	})

	c.Advance(10 * time.Second)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 0, c.PendingCount())
}

func TestFake_FiresInDeadlineOrder(t *testing.T) {
	c := Fake(epoch)
	var order []int
	c.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	c.AfterFunc(1*time.Second, func() { order = append(order, 1) })
	c.AfterFunc(2*time.Second, func() { order = append(order, 2) })

	c.Advance(5 * time.Second)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestReal_AfterFuncStop(t *testing.T) {
	c := Real()
	tm := c.AfterFunc(time.Hour, func() {})
	assert.True(t, tm.Stop())
}

func TestFake_NowDuringCallbackIsDeadline(t *testing.T) {
	c := Fake(epoch)
	var seen time.Time
	c.AfterFunc(2*time.Second, func() { seen = c.Now() })

	c.Advance(10 * time.Second)
	assert.True(t, seen.Equal(epoch.Add(2*time.Second)))
	assert.True(t, c.Now().Equal(epoch.Add(10*time.Second)))
}
