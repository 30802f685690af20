package form

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// templateEnvVar overrides the template search as a last-resort candidate.
const templateEnvVar = "DD1750_TEMPLATE"

// ResolveTemplate locates the blank DD Form 1750 template. The configured
// path is tried first, then the conventional locations, then the
// environment override; the first existing regular file wins.
func ResolveTemplate(configured string) (string, error) {
	candidates := make([]string, 0, 4)
	if configured != "" {
		candidates = append(candidates, configured)
	}
	candidates = append(candidates,
		filepath.Join("templates", "dd1750.pdf"),
		"dd1750_template.pdf",
	)
	if env := os.Getenv(templateEnvVar); env != "" {
		candidates = append(candidates, env)
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c, nil
		}
	}
	return "", fmt.Errorf("no form template found; tried %s", strings.Join(candidates, ", "))
}
