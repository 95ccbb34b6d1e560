package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalsAsNumber(t *testing.T) {
	payload := struct {
		Price Money `json:"price"`
	}{Price: NewMoneyFromDecimal(decimal.RequireFromString("99.995"))}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	// 数值字面量，不是字符串
	if string(data) != `{"price":100.00}` {
		t.Fatalf("unexpected json: %s", data)
	}
}

func TestMoneyUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var fromNumber Money
	if err := json.Unmarshal([]byte(`12.345`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if fromNumber.String() != "12.35" {
		t.Fatalf("unexpected value from number: %s", fromNumber)
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"12.30"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString.String() != "12.30" {
		t.Fatalf("unexpected value from string: %s", fromString)
	}
}
