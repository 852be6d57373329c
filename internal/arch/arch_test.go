// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

const module = "heredity/"

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", module+"...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	outer := []string{
		"heredity/internal/app", "heredity/internal/appshell",
		"heredity/internal/cli", "heredity/cmd/",
	}
	bans := map[string][]string{
		// the core sees only the model and its inputs
		"heredity/internal/engine": append([]string{
			"heredity/internal/pipeline", "heredity/internal/writers",
			"heredity/internal/metrics", "heredity/internal/telemetry",
			"heredity/internal/logging", "heredity/internal/config",
		}, outer...),
		"heredity/internal/pedigree": append([]string{
			"heredity/internal/engine", "heredity/internal/pipeline",
			"heredity/internal/writers",
		}, outer...),
		"heredity/internal/probs":    append([]string{"heredity/internal/pedigree", "heredity/internal/engine"}, outer...),
		"heredity/internal/pipeline": append([]string{"heredity/internal/writers"}, outer...),
		"heredity/internal/writers":  append([]string{"heredity/internal/pipeline"}, outer...),
		"heredity/pkg/":              {"heredity/internal/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, module) {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, module) {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}

// The engine stays dependency-free apart from the standard library.
func TestEngineHasNoThirdPartyImports(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", module+"internal/engine")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	var p pkg
	if err := json.NewDecoder(&out).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, dep := range p.Imports {
		if strings.HasPrefix(dep, module) || !strings.Contains(strings.SplitN(dep, "/", 2)[0], ".") {
			continue
		}
		t.Errorf("engine imports %s", dep)
	}
}
