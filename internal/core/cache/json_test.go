package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRule struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestJSONHelpers(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		require.NoError(t, SetJSON(ctx, adapter, "rule", cachedRule{Name: "freight", Value: 10}, time.Minute))

		var got cachedRule
		require.NoError(t, GetJSON(ctx, adapter, "rule", &got))
		assert.Equal(t, cachedRule{Name: "freight", Value: 10}, got)
	})

	t.Run("Missing", func(t *testing.T) {
		var got cachedRule
		err := GetJSON(ctx, adapter, "absent", &got)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Corrupt", func(t *testing.T) {
		require.NoError(t, mr.Set("broken", "{not json"))

		var got cachedRule
		err := GetJSON(ctx, adapter, "broken", &got)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrKeyNotFound)
		assert.Contains(t, err.Error(), "failed to decode cached broken")
	})

	t.Run("Unencodable", func(t *testing.T) {
		err := SetJSON(ctx, adapter, "chan", make(chan int), time.Minute)
		require.Error(t, err)
		assert.False(t, mr.Exists("chan"))
	})
}
