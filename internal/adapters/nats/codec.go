package natsadapter

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

const (
	envelopeKind    = "chart"
	envelopeVersion = 1
)

// EncodeChartEvent wraps ev in a versioned structpb envelope and returns its
// protobuf wire form.
func EncodeChartEvent(ev *domain.ChartEvent) ([]byte, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal chart event: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("flatten chart event: %w", err)
	}
	env, err := structpb.NewStruct(map[string]any{
		"kind":    envelopeKind,
		"version": envelopeVersion,
		"payload": payload,
	})
	if err != nil {
		return nil, fmt.Errorf("build envelope: %w", err)
	}
	return proto.Marshal(env)
}

// DecodeChartEvent reverses EncodeChartEvent.
func DecodeChartEvent(data []byte) (*domain.ChartEvent, error) {
	var env structpb.Struct
	if err := proto.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	fields := env.GetFields()
	if k := fields["kind"].GetStringValue(); k != envelopeKind {
		return nil, fmt.Errorf("unexpected envelope kind %q", k)
	}
	if v := int(fields["version"].GetNumberValue()); v != envelopeVersion {
		return nil, fmt.Errorf("unsupported envelope version %d", v)
	}
	payload := fields["payload"].GetStructValue()
	if payload == nil {
		return nil, fmt.Errorf("envelope has no payload")
	}
	raw, err := payload.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("payload to json: %w", err)
	}
	var ev domain.ChartEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("unmarshal chart event: %w", err)
	}
	return &ev, nil
}
