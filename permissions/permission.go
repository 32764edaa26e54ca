package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

const (
	wildcard = "*"
	slash    = "/"
)

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions returns the first endpoint matching the route pattern and method. A path ending
// in "*" matches by prefix and a method of "*" matches any method. Trailing slashes are ignored so
// that a group root such as "/v1/albums/" matches "/v1/albums".
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = trimSlash(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		if rp.Method != wildcard && !strings.EqualFold(rp.Method, method) {
			return false
		}

		if prefix, ok := strings.CutSuffix(rp.Path, wildcard); ok {
			return strings.HasPrefix(path, prefix) || path == trimSlash(prefix)
		}

		return trimSlash(rp.Path) == path
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Allows reports whether role is one of the endpoint roles. An endpoint without roles admits any
// authenticated caller.
func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

func trimSlash(path string) string {
	if trimmed := strings.TrimRight(path, slash); trimmed != "" {
		return trimmed
	}

	return slash
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
