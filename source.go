package uec

import (
	"io"
	"sync"

	j "github.com/goccy/go-json"
)

// JSONDriver converts serialized JSON to and from the value model via a
// pluggable SPI. The default implementation is backed by goccy/go-json and
// may be swapped with SetJSONDriver, for example to trade speed for a
// number-preserving decoder.
type JSONDriver interface {
	DecodeBytes(b []byte) (any, error)
	DecodeReader(r io.Reader) (any, error)
	EncodeIndent(v any, indent string) ([]byte, error)
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default goccy/go-json backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = goJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// goJSONDriver wraps the goccy/go-json implementation.
type goJSONDriver struct{}

func (goJSONDriver) DecodeBytes(b []byte) (any, error) {
	var v any
	if err := j.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (goJSONDriver) DecodeReader(r io.Reader) (any, error) {
	var v any
	if err := j.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (goJSONDriver) EncodeIndent(v any, indent string) ([]byte, error) {
	return j.MarshalIndent(v, "", indent)
}

func (goJSONDriver) Name() string { return "go-json" }
