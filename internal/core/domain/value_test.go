package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_JSON(t *testing.T) {
	meta := map[string]domain.Value{
		"rate":    domain.NumberValue(dec("157.1234")),
		"source":  domain.StringValue("boj"),
		"manual":  domain.BoolValue(false),
		"missing": domain.NullValue(),
		"nested": domain.MapValue(map[string]domain.Value{
			"amount": domain.NumberValue(dec("0.10")),
		}),
	}

	raw, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rate":157.1234`)
	assert.Contains(t, string(raw), `"amount":0.1`)

	var back map[string]domain.Value
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Len(t, back, len(meta))
	for k, v := range meta {
		assert.True(t, v.Equal(back[k]), "key %s", k)
	}

	n, ok := back["rate"].AsNumber()
	require.True(t, ok)
	assert.Equal(t, "157.1234", n.String())
	_, ok = back["rate"].AsString()
	assert.False(t, ok)
	assert.Equal(t, domain.KindNull, back["missing"].Kind())
}

func TestValue_RejectsArrays(t *testing.T) {
	var v domain.Value
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"a":[true]}`), &v))
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, domain.NumberValue(dec("1.50")).Equal(domain.NumberValue(dec("1.5"))))
	assert.False(t, domain.StringValue("1").Equal(domain.NumberValue(dec("1"))))
	assert.False(t, domain.MapValue(map[string]domain.Value{"a": domain.BoolValue(true)}).
		Equal(domain.MapValue(map[string]domain.Value{"b": domain.BoolValue(true)})))
}
