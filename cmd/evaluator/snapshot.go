package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nportas/amm-arb-engine/internal/amm"
	"github.com/nportas/amm-arb-engine/internal/pricing"
)

// Snapshot is a file of pool pairs to evaluate. Reserves are quoted in
// the same orientation for both pools of a pair (reserve_in = base token,
// reserve_out = quote token), and each pool carries its recent price
// window for the TWAP check.
type Snapshot struct {
	Pairs []PairSnapshot `json:"pairs"`
}

// PairSnapshot is one pool pair plus its price history.
type PairSnapshot struct {
	Name     string        `json:"name"`
	PoolA    PoolSnapshot  `json:"pool_a"`
	PoolB    PoolSnapshot  `json:"pool_b"`
	SamplesA []SampleEntry `json:"samples_a"`
	SamplesB []SampleEntry `json:"samples_b"`
}

// PoolSnapshot is one pool's reserves.
type PoolSnapshot struct {
	ReserveIn  float64 `json:"reserve_in"`
	ReserveOut float64 `json:"reserve_out"`
}

// SampleEntry is one price observation.
type SampleEntry struct {
	Timestamp float64 `json:"timestamp"`
	Price     float64 `json:"price"`
}

// Pool converts the snapshot entry into engine pool state.
func (p PoolSnapshot) Pool() amm.Pool {
	return amm.Pool{ReserveIn: p.ReserveIn, ReserveOut: p.ReserveOut}
}

// Samples converts the snapshot entries into engine price samples.
func toSamples(entries []SampleEntry) []pricing.PriceSample {
	samples := make([]pricing.PriceSample, len(entries))
	for i, e := range entries {
		samples[i] = pricing.PriceSample{Timestamp: e.Timestamp, Price: e.Price}
	}
	return samples
}

// LoadSnapshot reads and decodes a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}
