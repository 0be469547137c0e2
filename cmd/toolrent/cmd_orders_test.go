package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolrent-console/internal/domain"
)

func TestParseOrderLine(t *testing.T) {
	t.Run("Tool only", func(t *testing.T) {
		line, err := parseOrderLine("t1")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderLine{ToolID: "t1", Quantity: 1, Days: 1}, line)
	})

	t.Run("Quantity and days", func(t *testing.T) {
		line, err := parseOrderLine("t1:2:7")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderLine{ToolID: "t1", Quantity: 2, Days: 7}, line)
	})

	t.Run("Rejects bad input", func(t *testing.T) {
		for _, s := range []string{"", ":2", "t1:0", "t1:x", "t1:1:2:3"} {
			_, err := parseOrderLine(s)
			assert.Error(t, err, s)
		}
	})
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, validOrderStatus(domain.OrderStatusOverdue))
	assert.False(t, validOrderStatus("shipped"))
	assert.Len(t, orderStatusNames(), len(domain.OrderStatuses))
}
