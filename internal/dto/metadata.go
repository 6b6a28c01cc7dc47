package dto

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/stepbook/flownote/pkg/domain"
)

// NotebookMetadata is the typed view over a notebook's raw metadata map.
// It uses "mapstructure" tags to match the conventional metadata keys.
type NotebookMetadata struct {
	UseStepbook bool `json:"use_stepbook" mapstructure:"use_stepbook"`

	KernelSpec struct {
		Name        string `json:"name" mapstructure:"name"`
		DisplayName string `json:"display_name" mapstructure:"display_name"`
	} `json:"kernelspec" mapstructure:"kernelspec"`

	LanguageInfo struct {
		Name    string `json:"name" mapstructure:"name"`
		Version string `json:"version" mapstructure:"version"`
	} `json:"language_info" mapstructure:"language_info"`
}

// DecodeMetadata converts a raw metadata map into its typed form.
// Unknown keys are ignored; the map owner may carry arbitrary entries.
func DecodeMetadata(raw domain.Metadata) (*NotebookMetadata, error) {
	var meta NotebookMetadata
	if err := mapstructure.Decode(map[string]any(raw), &meta); err != nil {
		return nil, fmt.Errorf("failed to decode notebook metadata: %w", err)
	}
	return &meta, nil
}
