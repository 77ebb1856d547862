package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TopicSpec is one entry of topics.yaml:
//
//	Artificial Intelligence:
//	  groups: [technology, science]
type TopicSpec struct {
	Groups []string `yaml:"groups"`
}

// LoadTopics reads the topics file. An empty topic list is a fatal
// configuration error: the run is aborted before any provider is called.
func LoadTopics(path string) (map[string]TopicSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open topics file: %w", err)
	}
	defer f.Close()

	topics := make(map[string]TopicSpec)
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&topics); err != nil {
		return nil, fmt.Errorf("failed to parse topics file %s: %w", path, err)
	}

	if len(topics) == 0 {
		return nil, fmt.Errorf("topics file %s contains no topics", path)
	}
	return topics, nil
}
