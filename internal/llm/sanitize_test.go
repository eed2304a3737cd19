package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeShipmentJSON(t *testing.T) {
	t.Run("already clean passes through", func(t *testing.T) {
		in := `{"truckNumber":"MH09HH4512","from":"Indore","to":"Nagpur","weight":"24000","description":"Plastic Dana","name":"Ramesh"}`
		out, adjusted, err := SanitizeShipmentJSON([]byte(in), nil)
		require.NoError(t, err)
		assert.Empty(t, adjusted)
		assert.JSONEq(t, in, string(out))
	})

	t.Run("numbers coerced to strings", func(t *testing.T) {
		out, adjusted, err := SanitizeShipmentJSON([]byte(`{"truckNumber":"x","from":"","to":"","weight":24,"description":"","name":""}`), nil)
		require.NoError(t, err)
		assert.Contains(t, adjusted, "weight(number)")

		var m map[string]string
		require.NoError(t, json.Unmarshal(out, &m))
		assert.Equal(t, "24", m["weight"])
	})

	t.Run("decimal numbers keep their fraction", func(t *testing.T) {
		out, _, err := SanitizeShipmentJSON([]byte(`{"weight":24.5}`), nil)
		require.NoError(t, err)
		var m map[string]string
		require.NoError(t, json.Unmarshal(out, &m))
		assert.Equal(t, "24.5", m["weight"])
	})

	t.Run("null and missing become empty strings", func(t *testing.T) {
		out, adjusted, err := SanitizeShipmentJSON([]byte(`{"truckNumber":null}`), nil)
		require.NoError(t, err)
		assert.Contains(t, adjusted, "truckNumber(null)")
		assert.Contains(t, adjusted, "weight(missing)")

		var m map[string]string
		require.NoError(t, json.Unmarshal(out, &m))
		assert.Len(t, m, 6)
		for k, v := range m {
			assert.Empty(t, v, k)
		}
	})

	t.Run("unknown keys dropped", func(t *testing.T) {
		out, adjusted, err := SanitizeShipmentJSON([]byte(`{"truckNumber":"x","confidence":0.9}`), nil)
		require.NoError(t, err)
		assert.Contains(t, adjusted, "confidence(unknown)")

		var m map[string]any
		require.NoError(t, json.Unmarshal(out, &m))
		assert.NotContains(t, m, "confidence")
	})

	t.Run("booleans and objects stringified or blanked", func(t *testing.T) {
		out, _, err := SanitizeShipmentJSON([]byte(`{"description":true,"name":{"first":"ram"}}`), nil)
		require.NoError(t, err)
		var m map[string]string
		require.NoError(t, json.Unmarshal(out, &m))
		assert.Equal(t, "true", m["description"])
		assert.Empty(t, m["name"])
	})

	t.Run("non-object input fails", func(t *testing.T) {
		_, _, err := SanitizeShipmentJSON([]byte(`["not","an","object"]`), nil)
		assert.Error(t, err)
	})
}
