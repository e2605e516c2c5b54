package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLCodec renders the save document as block-style YAML. Field names and
// order match the JSON document so the two stay interchangeable; the document
// types carry matching yaml tags for the decode side.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports a save document from YAML. Plain scalars decode into string
// fields as written, so `ports: 24` and `vlan: 10` need no quoting.
func (c *YAMLCodec) Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}

// Export exports a save document to YAML
func (c *YAMLCodec) Export(doc *Document, w io.Writer) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	// JSON is valid YAML; decoding into a node keeps key order
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	blockStyle(&node)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// blockStyle strips the flow and quoting styles the JSON parse left behind.
// The encoder still quotes strings that would otherwise read as another type.
func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle | yaml.DoubleQuotedStyle
	for _, child := range n.Content {
		blockStyle(child)
	}
}
