package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultTolerance is the relative tolerance for numeric result matches when
// a step does not set one.
const DefaultTolerance = 1e-9

// Scenario is an executable check of the formula set: a flow of operation
// calls with expected outcomes, and assertions over the resulting trace and
// evaluation log.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Constants is an optional CUE constant set, relative to the scenario
	// file. Empty means the built-in CODATA set.
	Constants string `yaml:"constants,omitempty"`

	// RunID fixes the run ID for deterministic traces.
	// Empty means testutil.DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	// Flow holds the operation calls, evaluated in order.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final trace and log.
	Assertions []Assertion `yaml:"assertions"`
}

// FlowStep is one operation call.
type FlowStep struct {
	// Invoke is the operation name, e.g. "observer.dilation".
	Invoke string `yaml:"invoke"`

	// Args are the operation arguments.
	Args map[string]any `yaml:"args"`

	// Expect validates the outcome. If nil, any outcome is accepted.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome.
type ExpectClause struct {
	// Case is the expected outcome case, e.g. "Success" or "InvalidArgument".
	Case string `yaml:"case"`

	// Result is a subset match against the outcome result. Numbers match
	// within Tolerance; the strings "+Inf", "-Inf" and "NaN" match the
	// corresponding non-finite values.
	Result map[string]any `yaml:"result,omitempty"`

	// Tolerance is the relative tolerance for numbers. Zero means DefaultTolerance.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Assertion validates the trace or the evaluation log.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Operation is used by trace_contains, trace_count and result_range.
	Operation string `yaml:"operation,omitempty"`

	// Args is a subset match for trace_contains.
	Args map[string]any `yaml:"args,omitempty"`

	// Operations is the expected order for trace_order.
	Operations []string `yaml:"operations,omitempty"`

	// Count is the expected number for trace_count and stored_count.
	Count int `yaml:"count,omitempty"`

	// Field is a dotted path into the result for result_range,
	// e.g. "bogoliubov.beta_coefficient".
	Field string `yaml:"field,omitempty"`

	// Min and Max bound result_range, inclusive.
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`

	// Case is the outcome case for stored_count. Empty counts every outcome.
	Case string `yaml:"case,omitempty"`
}

// Assertion types.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertResultRange   = "result_range"
	AssertStoredCount   = "stored_count"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected, and the constants path is resolved relative to the file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Constants != "" && !filepath.IsAbs(scenario.Constants) {
		scenario.Constants = filepath.Join(filepath.Dir(path), scenario.Constants)
	}
	if scenario.Constants != "" {
		if _, err := os.Stat(scenario.Constants); os.IsNotExist(err) {
			return nil, &ConstantsNotFoundError{Scenario: scenario.Name, Path: scenario.Constants}
		}
	}
	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		if step.Invoke == "" {
			return fmt.Errorf("flow[%d]: invoke is required", i)
		}
		if step.Args == nil {
			return fmt.Errorf("flow[%d]: args is required (use {} if no args)", i)
		}
		if step.Expect != nil {
			if step.Expect.Case == "" {
				return fmt.Errorf("flow[%d].expect: case is required", i)
			}
			if step.Expect.Tolerance < 0 {
				return fmt.Errorf("flow[%d].expect: tolerance must be non-negative", i)
			}
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertTraceContains:
		if a.Operation == "" {
			return fmt.Errorf("assertions[%d]: operation is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Operations) == 0 {
			return fmt.Errorf("assertions[%d]: operations list is required for trace_order", index)
		}
	case AssertTraceCount, AssertStoredCount:
		if a.Type == AssertTraceCount && a.Operation == "" {
			return fmt.Errorf("assertions[%d]: operation is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertResultRange:
		if a.Operation == "" || a.Field == "" {
			return fmt.Errorf("assertions[%d]: operation and field are required for result_range", index)
		}
		if a.Min == nil && a.Max == nil {
			return fmt.Errorf("assertions[%d]: min or max is required for result_range", index)
		}
		if a.Min != nil && a.Max != nil && *a.Min > *a.Max {
			return fmt.Errorf("assertions[%d]: min %v is greater than max %v", index, *a.Min, *a.Max)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
