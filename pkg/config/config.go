package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/llm-d-incubation/mms-simulator/pkg/utils"
)

// Validate checks that the parameters describe a runnable simulation
func (s *SimulationSpec) Validate() error {
	lambda, mu := s.EffectiveRates()
	if err := checkRate("arrivalRate", s.ArrivalRate, lambda); err != nil {
		return err
	}
	if err := checkRate("serviceRate", s.ServiceRate, mu); err != nil {
		return err
	}
	if s.Servers < 1 {
		return &ConfigurationError{Field: "servers", Value: s.Servers, Reason: "must be at least 1"}
	}
	if s.Units < 1 {
		return &ConfigurationError{Field: "units", Value: s.Units, Reason: "must be at least 1"}
	}
	switch s.Pool {
	case "", PoolLinear, PoolHeap:
	default:
		return &ConfigurationError{Field: "pool", Value: s.Pool, Reason: "must be " + PoolLinear + " or " + PoolHeap}
	}
	return nil
}

func checkRate(field string, rate, effective float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return &ConfigurationError{Field: field, Value: rate, Reason: "must be a finite number"}
	}
	if rate <= 0 {
		return &ConfigurationError{Field: field, Value: rate, Reason: "must be positive"}
	}
	if effective < MinRate {
		return &ConfigurationError{Field: field, Value: rate, Reason: fmt.Sprintf("must give a simulated rate of at least %g", MinRate)}
	}
	return nil
}

// EffectiveRates returns the arrival and service rates used by the simulation;
// per-hour rates are converted to per-minute
func (s *SimulationSpec) EffectiveRates() (lambda, mu float64) {
	if s.PerHour {
		return s.ArrivalRate / MinutesPerHour, s.ServiceRate / MinutesPerHour
	}
	return s.ArrivalRate, s.ServiceRate
}

// PoolKind returns the server pool implementation, defaulting when unset
func (s *SimulationSpec) PoolKind() string {
	if s.Pool == "" {
		return DefaultPool
	}
	return s.Pool
}

func (s *SimulationSpec) String() string {
	return fmt.Sprintf("lambda=%v; mu=%v; servers=%d; units=%d; perHour=%v; seed=%d; pool=%s",
		s.ArrivalRate, s.ServiceRate, s.Servers, s.Units, s.PerHour, s.Seed, s.PoolKind())
}

// Validate checks the replication parameters and the embedded simulation
func (r *ReplicationSpec) Validate() error {
	if r.Replications < 1 {
		return &ConfigurationError{Field: "replications", Value: r.Replications, Reason: "must be at least 1"}
	}
	if r.Parallelism < 0 {
		return &ConfigurationError{Field: "parallelism", Value: r.Parallelism, Reason: "must not be negative"}
	}
	return r.Simulation.Validate()
}

// LoadSpec reads simulation data from a YAML or JSON file (by extension)
func LoadSpec(path string) (*SimulationSpec, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading simulation spec %s: %w", path, err)
	}
	var data *SimulationData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = utils.FromDataToSpec[SimulationData](bytes)
	default:
		data, err = utils.FromYAMLToSpec[SimulationData](bytes)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing simulation spec %s: %w", path, err)
	}
	return &data.Spec, nil
}
