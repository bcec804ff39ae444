package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestDecimal(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.10304",
		"-1.05":       "-1.05",
		"120":         "120",
		"not-a-value": "0",
		"":            "0",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, v, Decimal(k).String())
		})
	}
}
