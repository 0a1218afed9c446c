// e2e_test.go — whole-pipeline fixtures driven by testdata/programs.yaml.
package lox

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type e2eCase struct {
	Name         string `yaml:"name"`
	Source       string `yaml:"source"`
	Output       string `yaml:"output"`
	RuntimeError string `yaml:"runtime_error"`
	StaticErrors int    `yaml:"static_errors"`
}

type e2eManifest struct {
	Cases []e2eCase `yaml:"cases"`
}

func loadManifest(t *testing.T) []e2eCase {
	t.Helper()
	data, err := os.ReadFile("testdata/programs.yaml")
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var m e2eManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("decoding manifest: %v", err)
	}
	if len(m.Cases) == 0 {
		t.Fatalf("manifest holds no cases")
	}
	return m.Cases
}

func Test_E2E_Programs(t *testing.T) {
	for _, tc := range loadManifest(t) {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			ip := NewInterpreter()
			var out bytes.Buffer
			ip.SetOutput(&out)

			stmts, diags := ParseProgram(tc.Source)

			if tc.StaticErrors > 0 {
				if len(diags) != tc.StaticErrors {
					t.Fatalf("want %d static diagnostics, got %d: %v", tc.StaticErrors, len(diags), diags)
				}
				// any diagnostic suppresses execution; nothing may print
				if out.Len() != 0 {
					t.Fatalf("no output expected before execution, got %q", out.String())
				}
				return
			}
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}

			_, err := ip.Interpret(stmts)

			if tc.RuntimeError != "" {
				if err == nil {
					t.Fatalf("want runtime error containing %q, got none", tc.RuntimeError)
				}
				re, ok := err.(*RuntimeError)
				if !ok {
					t.Fatalf("want *RuntimeError, got %T: %v", err, err)
				}
				if !strings.Contains(re.Msg, tc.RuntimeError) {
					t.Fatalf("want message containing %q, got %q", tc.RuntimeError, re.Msg)
				}
				return
			}

			if err != nil {
				t.Fatalf("runtime error: %v", err)
			}
			if got := out.String(); got != tc.Output {
				t.Fatalf("output mismatch:\nwant:\n%q\ngot:\n%q", tc.Output, got)
			}
		})
	}
}
