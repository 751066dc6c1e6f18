// Package telemetry carries the per tick diagnostic record of a mission to a display and to the
// run log.
package telemetry

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// Diagnostics is the status of the mission after one tick.
type Diagnostics struct {
	Tick           int64
	State          string
	StateID        int
	Previous       string
	Alliance       string
	Column         int
	MarkerPush     bool
	Marker         string
	Turn           string
	Undo           string
	Red            int
	Blue           int
	ColorOK        bool
	Heading        float64
	HeadingOK      bool
	LeftPosition   int64
	RightPosition  int64
	PositionsOK    bool
	LeftPower      float64
	RightPower     float64
	GripperLeft    float64
	GripperRight   float64
	StateElapsed   time.Duration
	RecoveryReason string
	Done           bool
}

// KeyValue is a single displayed value.
type KeyValue struct {
	Key   string
	Value interface{}
}

// KeyValues returns the record in display order.
func (d Diagnostics) KeyValues() []KeyValue {
	kvs := []KeyValue{
		{"tick", d.Tick},
		{"state", fmt.Sprintf("%d %s", d.StateID, d.State)},
		{"previous", d.Previous},
		{"alliance", d.Alliance},
		{"column", d.Column},
		{"marker_push", d.MarkerPush},
		{"marker", d.Marker},
		{"turn", d.Turn},
		{"undo", d.Undo},
		{"red", d.Red},
		{"blue", d.Blue},
		{"heading", d.Heading},
		{"left_position", d.LeftPosition},
		{"right_position", d.RightPosition},
		{"left_power", d.LeftPower},
		{"right_power", d.RightPower},
		{"gripper_left", d.GripperLeft},
		{"gripper_right", d.GripperRight},
		{"state_elapsed", d.StateElapsed},
	}
	if !d.ColorOK {
		kvs = append(kvs, KeyValue{"color_sensor", "unavailable"})
	}
	if !d.HeadingOK {
		kvs = append(kvs, KeyValue{"gyro", "unavailable"})
	}
	if !d.PositionsOK {
		kvs = append(kvs, KeyValue{"encoders", "unavailable"})
	}
	if d.RecoveryReason != "" {
		kvs = append(kvs, KeyValue{"stopped_at", d.Previous}, KeyValue{"recovery_reason", d.RecoveryReason})
	}
	return kvs
}

// Map returns the record keyed by name.
func (d Diagnostics) Map() map[string]interface{} {
	return lo.SliceToMap(d.KeyValues(), func(kv KeyValue) (string, interface{}) {
		return kv.Key, kv.Value
	})
}

// Fields returns the record as alternating keys and values for structured logging.
func (d Diagnostics) Fields() []interface{} {
	return lo.FlatMap(d.KeyValues(), func(kv KeyValue, _ int) []interface{} {
		return []interface{}{kv.Key, kv.Value}
	})
}

// Table renders the record as a two column table.
func (d Diagnostics) Table() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"key", "value"})
	for _, kv := range d.KeyValues() {
		t.AppendRow(table.Row{kv.Key, kv.Value})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}
