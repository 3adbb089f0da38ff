package config

import (
    "fmt"
    "os"
    "strings"

    "gopkg.in/yaml.v3"
)

type candidatesFile struct {
    Candidates []string `yaml:"candidates"`
}

// LoadCandidatesFile reads an ordered list of package names from a YAML file
// of the form:
//
//	candidates:
//	  - com.example.app
//	  - com.example.app.beta
func LoadCandidatesFile(path string) ([]string, error) {
    data, err := os.ReadFile(path)
    if err != nil {
        return nil, fmt.Errorf("candidates file: %w", err)
    }
    var f candidatesFile
    if err := yaml.Unmarshal(data, &f); err != nil {
        return nil, fmt.Errorf("candidates file %s: %w", path, err)
    }
    out := []string{}
    for _, c := range f.Candidates {
        c = strings.TrimSpace(c)
        if c == "" {
            continue
        }
        out = append(out, c)
    }
    return out, nil
}
