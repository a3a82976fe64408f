package arpabet

import (
	_ "embed"
	"fmt"
)

//go:embed bundled.dict
var bundledCorpus string

// Bundled returns the small corpus of common words compiled into the binary.
func Bundled() (*Dictionary, error) {
	d, err := Parse(bundledCorpus)
	if err != nil {
		return nil, fmt.Errorf("bundled corpus: %w", err)
	}
	return d, nil
}
