package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	_, offset := time.Date(2023, 12, 18, 0, 0, 0, 0, Location).Zone()
	require.Equal(t, int(Offset/time.Second), offset)
}

func TestNow(t *testing.T) {
	now := Now()
	require.Equal(t, Location, now.Location())
}
