package pipeline

import (
	"context"
	"time"

	"github.com/Azure/container-kit/pkg/mcp/domain/errors"
	"github.com/Azure/container-kit/pkg/mcp/domain/logging"
	validation "github.com/Azure/container-kit/pkg/mcp/domain/security"
	"github.com/Azure/container-kit/pkg/mcp/domain/session"
)

// ProductionValidator provides production validation capabilities
type ProductionValidator struct {
	*UnifiedBasicValidator
	config ValidationConfig
}

// ValidationConfig configures validation behavior
type ValidationConfig struct {
	EnableDetailedLogging bool          `json:"enable_detailed_logging"`
	Timeout               time.Duration `json:"timeout"`
}

// NewProductionValidator creates a simplified production validator
func NewProductionValidator(
	sessionManager session.SessionManager,
	config ValidationConfig,
	logger logging.Standards,
) *ProductionValidator {
	return &ProductionValidator{
		UnifiedBasicValidator: NewUnifiedBasicValidator(sessionManager, logger),
		config:                config,
	}
}

// ValidateProduction performs production validation without stress testing
func (pv *ProductionValidator) ValidateProduction(ctx context.Context, target interface{}) (*validation.Result, error) {
	if pv.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pv.config.Timeout)
		defer cancel()
	}

	pv.logger.Info("Starting production validation",

		"detailed_logging", pv.config.EnableDetailedLogging)

	result, err := pv.ValidateBasic(ctx, target)
	if err != nil {
		return nil, errors.NewError().Message("validation failed").Cause(err).WithLocation().Build()
	}

	result.Details["validation_type"] = "production"
	result.Details["simplified"] = true

	return result, nil
}

// ValidateDeploymentReadiness checks if deployment is ready
func (pv *ProductionValidator) ValidateDeploymentReadiness(ctx context.Context, deployment interface{}) (*validation.Result, error) {
	rules := []ValidationRule{
		{
			Name:        "deployment_structure",
			Description: "Validate deployment structure",
			Validate: func(ctx context.Context, target interface{}) error {
				if target == nil {
					return errors.NewError().Messagef("deployment cannot be nil").WithLocation().Build()
				}

				return nil
			},
		},
		{
			Name:        "resource_limits",
			Description: "Check resource limits are set",
			Validate: func(ctx context.Context, target interface{}) error {
				return nil
			},
		},
	}

	return pv.ValidateWithRules(ctx, deployment, rules)
}

// ValidateSystemHealth performs basic health validation
func (pv *ProductionValidator) ValidateSystemHealth(ctx context.Context) (*SystemHealthStatus, error) {
	status := &SystemHealthStatus{
		Healthy:   true,
		Timestamp: time.Now(),
		Components: map[string]ComponentHealth{
			"validator": {
				Name:    "validator",
				Healthy: true,
				Message: "Validator operational",
			},
		},
	}

	pv.logger.Debug("System health check completed",

		"healthy", status.Healthy)

	return status, nil
}

// SystemHealthStatus represents basic system health
type SystemHealthStatus struct {
	Healthy    bool                       `json:"healthy"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents component health status
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message"`
}

// GetValidationResult retrieves a validation result (simplified)
func (pv *ProductionValidator) GetValidationResult(testID string) (*validation.Result, error) {
	// In the simplified version, we don't store complex test results
	result := &validation.Result{
		Valid: true,
		Details: map[string]interface{}{
			"test_id":    testID,
			"simplified": true,
			"message":    "Complex validation results not supported in simplified version",
			"timestamp":  time.Now(),
		},
	}
	return result, nil
}

// Shutdown gracefully shuts down the validator
func (pv *ProductionValidator) Shutdown(ctx context.Context) error {
	pv.logger.Info("Shutting down production validator")
	return nil
}
