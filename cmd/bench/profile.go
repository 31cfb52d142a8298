package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is a saved workload shape. Zero fields leave the matching flag
// untouched.
//
//	workers: 16
//	duration: 30s
//	idents: 200000
//	file_tokens: 8192
//	meta_pct: 10
//	zipf_s: 1.2
//	zipf_v: 1
//	seed: 42
type Profile struct {
	Workers    int           `yaml:"workers"`
	Duration   time.Duration `yaml:"duration"`
	Idents     int           `yaml:"idents"`
	FileTokens int           `yaml:"file_tokens"`
	MetaPct    int           `yaml:"meta_pct"`
	ZipfS      float64       `yaml:"zipf_s"`
	ZipfV      float64       `yaml:"zipf_v"`
	Seed       int64         `yaml:"seed"`
}

// LoadProfile reads a YAML profile. Unknown keys are rejected so typos do
// not silently fall back to flag defaults.
func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()

	var p Profile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", path, err)
	}
	return &p, nil
}

// Apply copies the non-zero fields of p into c.
func (p *Profile) Apply(c *CLI) {
	if p.Workers != 0 {
		c.Workers = p.Workers
	}
	if p.Duration != 0 {
		c.Duration = p.Duration
	}
	if p.Idents != 0 {
		c.Idents = p.Idents
	}
	if p.FileTokens != 0 {
		c.FileTokens = p.FileTokens
	}
	if p.MetaPct != 0 {
		c.MetaPct = p.MetaPct
	}
	if p.ZipfS != 0 {
		c.ZipfS = p.ZipfS
	}
	if p.ZipfV != 0 {
		c.ZipfV = p.ZipfV
	}
	if p.Seed != 0 {
		c.Seed = p.Seed
	}
}
