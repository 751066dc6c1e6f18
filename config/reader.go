package config

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Read reads a mission configuration from the JSON file at path. Environment variables in the
// file are expanded first. Missing fields keep their defaults.
func Read(path string) (*Mission, error) {
	rd, err := envsubst.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config file %q", path)
	}
	var attrs AttributeMap
	if err := json.Unmarshal(rd, &attrs); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config file %q", path)
	}
	cfg, err := FromAttributes(attrs)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode config file %q", path)
	}
	return cfg, nil
}

// FromAttributes decodes attributes over the default configuration and validates the result.
// Durations may be given as strings ("1.5s") or as numbers of milliseconds.
func FromAttributes(attrs AttributeMap) (*Mission, error) {
	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.DecodeHookFuncType(millisecondsToDurationHook),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]interface{}(attrs)); err != nil {
		return nil, err
	}
	if err := cfg.Validate("mission"); err != nil {
		return nil, err
	}
	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

func millisecondsToDurationHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	default:
		return data, nil
	}
}
