// Package health checks that sagalint can run: its configuration loads, its
// schema set compiles and its state directory is writable.
package health

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sagaworks/sagalint/internal/config"
	"github.com/sagaworks/sagalint/internal/schema"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// RunHealthChecks loads the configuration at configPath and checks everything
// it points at. Later checks are skipped when the configuration is broken.
func RunHealthChecks(configPath string) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 3),
		Passed: true,
	}

	cfg, configCheck := CheckConfig(configPath)
	report.add(configCheck)
	if cfg == nil {
		return report
	}

	report.add(CheckSchemas(cfg.SchemasDir))
	if cfg.HistoryEnabled {
		report.add(CheckStateDir(cfg.StateDir))
	}
	return report
}

// CheckConfig loads and validates the layered configuration.
func CheckConfig(configPath string) (*config.Configuration, CheckResult) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, CheckResult{
			Name:    "Configuration",
			Passed:  false,
			Message: err.Error(),
		}
	}

	return cfg, CheckResult{
		Name:    "Configuration",
		Passed:  true,
		Message: "configuration loaded",
	}
}

// CheckSchemas compiles the schema set in dir, or the embedded set when dir
// is empty.
func CheckSchemas(dir string) CheckResult {
	gate, err := schema.New(schema.Options{Dir: dir})
	if err != nil {
		return CheckResult{
			Name:    "Schema set",
			Passed:  false,
			Message: err.Error(),
		}
	}

	return CheckResult{
		Name:    "Schema set",
		Passed:  true,
		Message: fmt.Sprintf("schemas compiled (%s)", gate.Source()),
	}
}

// CheckStateDir makes sure history can be written under dir.
func CheckStateDir(dir string) CheckResult {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CheckResult{
			Name:    "State directory",
			Passed:  false,
			Message: fmt.Sprintf("cannot create %s: %v", dir, err),
		}
	}

	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return CheckResult{
			Name:    "State directory",
			Passed:  false,
			Message: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	probe.Close()
	os.Remove(probe.Name())

	return CheckResult{
		Name:    "State directory",
		Passed:  true,
		Message: fmt.Sprintf("%s is writable", filepath.Clean(dir)),
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		if check.Passed {
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		} else {
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		}
	}

	return output
}
