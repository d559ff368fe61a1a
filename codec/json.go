package codec

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

// JSON and GoJSON write the same document, {"len": n, "buf": [...]}, and
// differ only in the library behind them and the name stored in the frame.
// Both are several times larger than Binary and exist for readers that
// inspect frames by hand.
type (
	JSON   struct{}
	GoJSON struct{}
)

func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSON) Name() string                       { return "json" }

func (GoJSON) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (GoJSON) Name() string                       { return "go-json" }
