package bootstrap

import (
	"fmt"
)

const (
	identityMissingMessageTemplateConstant = "❌ Erreur : l'adresse email Git (%s) n'est pas configurée.\n" +
		"   Configurez-la avec :\n" +
		"   git config --global user.email \"vous@exemple.com\"\n" +
		"   git config --global user.name \"Votre Nom\"\n" +
		"   Puis relancez la commande."
	stepFailureTemplateConstant = "bootstrap step %s failed: %v"
)

// IdentityConfigurationError reports a missing committer email. Its message is
// the corrective instruction shown to the user.
type IdentityConfigurationError struct {
	ConfigurationKey string
}

// Error returns the instruction for configuring the committer identity.
func (identityError IdentityConfigurationError) Error() string {
	return fmt.Sprintf(identityMissingMessageTemplateConstant, identityError.ConfigurationKey)
}

// StepError identifies the bootstrap step that stopped the run.
type StepError struct {
	StepName string
	Cause    error
}

// Error describes the failing step and its cause.
func (stepError StepError) Error() string {
	return fmt.Sprintf(stepFailureTemplateConstant, stepError.StepName, stepError.Cause)
}

// Unwrap exposes the underlying cause.
func (stepError StepError) Unwrap() error {
	return stepError.Cause
}
