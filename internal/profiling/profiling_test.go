package profiling

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAccumulatesPerName(t *testing.T) {
	ResetFrame()

	stop := Track("a")
	time.Sleep(2 * time.Millisecond)
	stop()
	Track("a")()
	Track("b")()

	samples := Snapshot()
	require.Len(t, samples, 2)
	assert.Equal(t, "a", samples[0].Name)
	assert.Equal(t, 2, samples[0].Calls)
	assert.GreaterOrEqual(t, samples[0].Total, 2*time.Millisecond)

	ResetFrame()
	assert.Empty(t, Snapshot())
}

func TestTopNFormatsAndTruncates(t *testing.T) {
	ResetFrame()
	stop := Track("slow")
	time.Sleep(time.Millisecond)
	stop()
	Track("fast")()

	out := TopN(1)
	assert.True(t, strings.HasPrefix(out, "slow:"), out)
	assert.True(t, strings.HasSuffix(out, "ms"), out)
	assert.NotContains(t, out, "fast")

	assert.Contains(t, TopN(10), "fast")
}
