package environments

import "strings"

type Environment string

const (
	Production  Environment = "production"
	Development Environment = "development"
	Staging     Environment = "staging"
	Test        Environment = "test"
)

// Parse maps an APP_ENV value onto a known environment. Short aliases used by
// the deploy scripts ("prod", "dev", "stg") are accepted; anything else falls
// back to Development.
func Parse(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return Production
	case "staging", "stg":
		return Staging
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) IsProduction() bool {
	return e == Production
}
