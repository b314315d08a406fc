package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/stretchr/testify/assert"
	otellog "go.opentelemetry.io/otel/log"
)

func TestToValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  otellog.Value
	}{
		{"string", "RED", otellog.StringValue("RED")},
		{"int", 3, otellog.IntValue(3)},
		{"int64", int64(-2), otellog.Int64Value(-2)},
		{"bool", true, otellog.BoolValue(true)},
		{"duration in ms", 1500 * time.Millisecond, otellog.Int64Value(1500)},
		{"time", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), otellog.StringValue("2026-10-19T00:00:00Z")},
		{"stringer", domain.ID("a11ce0000000000000000001"), otellog.StringValue("a11ce0000000000000000001")},
		{"strings", []string{"a", "b"}, otellog.SliceValue(otellog.StringValue("a"), otellog.StringValue("b"))},
		{"fallback", errors.New("boom"), otellog.StringValue("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(toValue(tt.value)), "got %s", toValue(tt.value))
		})
	}
}

func TestToValue_NestedMap(t *testing.T) {
	got := toValue(map[string]any{"status": "RED"})

	assert.Equal(t, otellog.KindMap, got.Kind())
	kvs := got.AsMap()
	assert.Len(t, kvs, 1)
	assert.Equal(t, "status", kvs[0].Key)
	assert.Equal(t, "RED", kvs[0].Value.AsString())
}
