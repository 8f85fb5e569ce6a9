package lockfile

import (
	"bytes"
	"sort"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const header = "# pakt lockfile v1\n# this file is generated, do not edit\n"

// Parse decodes lockfile bytes into an image.
func Parse(data []byte, into *domain.LockfileImage) error {
	var raw map[string]domain.LockedRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return zerr.Wrap(err, "failed to parse lockfile")
	}
	if raw == nil {
		raw = map[string]domain.LockedRecord{}
	}
	*into = raw
	return nil
}

// Serialize encodes an image with a stable pattern order.
func Serialize(image domain.LockfileImage) ([]byte, error) {
	patterns := make([]string, 0, len(image))
	for pattern := range image {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	var buf bytes.Buffer
	buf.WriteString(header)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	// Encode as an explicit mapping node so entries keep the sorted order
	// instead of yaml's map iteration order.
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, pattern := range patterns {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: pattern}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(image[pattern]); err != nil {
			return nil, zerr.Wrap(err, "failed to encode lockfile entry")
		}
		root.Content = append(root.Content, keyNode, valueNode)
	}
	if err := enc.Encode(root); err != nil {
		return nil, zerr.Wrap(err, "failed to encode lockfile")
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(err, "failed to finish lockfile encoding")
	}

	return buf.Bytes(), nil
}
