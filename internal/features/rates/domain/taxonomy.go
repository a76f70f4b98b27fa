package domain

import "strings"

// ServiceType is the platform's canonical service taxonomy.
type ServiceType string

const (
	ServiceTypeStandard ServiceType = "standard"
	ServiceTypeSurface  ServiceType = "surface"
	ServiceTypeExpress  ServiceType = "express"
)

// serviceNamePatterns maps a lower-case substring of a provider service name to a canonical type.
// Order matters: the first matching pattern wins.
var serviceNamePatterns = []struct {
	pattern string
	service ServiceType
}{
	{"regular", ServiceTypeStandard},
	{"standard", ServiceTypeStandard},
	{"surface", ServiceTypeSurface},
	{"ground", ServiceTypeSurface},
	{"express", ServiceTypeExpress},
	{"air", ServiceTypeExpress},
	{"priority", ServiceTypeExpress},
}

// MapServiceName maps a provider service name to a canonical type.
// The second result is false when no pattern matches; callers drop such names rather than guess.
func MapServiceName(name string) (ServiceType, bool) {
	lower := strings.ToLower(name)
	for _, p := range serviceNamePatterns {
		if strings.Contains(lower, p.pattern) {
			return p.service, true
		}
	}
	return "", false
}

// Title returns the display form, e.g. "Standard".
func (s ServiceType) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
