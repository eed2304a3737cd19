package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// shipmentKeys is the closed key set of the extraction object.
var shipmentKeys = []string{"truckNumber", "from", "to", "weight", "description", "name"}

// SanitizeShipmentJSON coerces a recovered object onto the six-key,
// all-strings shape:
//   - numeric values (a bare weight is common) become their string form
//   - null and unknown-typed values become ""
//   - unknown keys are dropped
//   - missing keys are filled with ""
//
// It returns the cleaned document and the list of adjustments made.
func SanitizeShipmentJSON(doc []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var adjusted []string
	out := make(map[string]any, len(shipmentKeys))
	for _, k := range shipmentKeys {
		v, ok := m[k]
		if !ok {
			out[k] = ""
			adjusted = append(adjusted, k+"(missing)")
			continue
		}
		switch t := v.(type) {
		case string:
			out[k] = strings.TrimSpace(t)
		case float64:
			if t == float64(int64(t)) {
				out[k] = strconv.FormatInt(int64(t), 10)
			} else {
				out[k] = strconv.FormatFloat(t, 'f', -1, 64)
			}
			adjusted = append(adjusted, k+"(number)")
		case bool:
			out[k] = strconv.FormatBool(t)
			adjusted = append(adjusted, k+"(bool)")
		case nil:
			out[k] = ""
			adjusted = append(adjusted, k+"(null)")
		default:
			out[k] = ""
			adjusted = append(adjusted, k+"(type)")
		}
	}
	for k := range m {
		known := false
		for _, want := range shipmentKeys {
			if k == want {
				known = true
				break
			}
		}
		if !known {
			adjusted = append(adjusted, k+"(unknown)")
		}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, adjusted, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(adjusted) > 0 {
		logger.Warn("llm.extract.sanitize", "adjusted", adjusted)
	}
	return b, adjusted, nil
}
