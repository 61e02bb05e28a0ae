package theme

import (
	"bytes"
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes category mapping flattening nested maps: color
// shades {blue: {500: x}} become "blue-500", DEFAULT inside nested map
// stands for parent name.
func (c *Category) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: token category must be a mapping", node.Line)
	}
	out := make(Category)
	if err := flatten("", node, out); err != nil {
		return err
	}
	*c = out
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func tokenName(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == DefaultKey:
		return prefix
	default:
		return prefix + "-" + key
	}
}

func flatten(prefix string, node *yaml.Node, out Category) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], resolveAlias(node.Content[i+1])
		if key.Value == "" {
			return fmt.Errorf("line %d: empty token name", key.Line)
		}
		name := tokenName(prefix, key.Value)

		switch val.Kind {
		case yaml.ScalarNode:
			out[name] = S(val.Value)
		case yaml.SequenceNode:
			list, err := decodeList(val)
			if err != nil {
				return err
			}
			out[name] = L(list...)
		case yaml.MappingNode:
			if err := flatten(name, val, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: unsupported value for token %q", val.Line, name)
		}
	}
	return nil
}

// decodeList accepts sequence of scalars. Mapping items contribute their
// values in order which covers font size tuples like ['2rem', {lineHeight: '2.5rem'}].
func decodeList(node *yaml.Node) ([]string, error) {
	list := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolveAlias(item)
		switch item.Kind {
		case yaml.ScalarNode:
			list = append(list, item.Value)
		case yaml.MappingNode:
			for i := 1; i < len(item.Content); i += 2 {
				if v := resolveAlias(item.Content[i]); v.Kind == yaml.ScalarNode {
					list = append(list, v.Value)
				} else {
					return nil, fmt.Errorf("line %d: nested structures are not allowed in token lists", v.Line)
				}
			}
		default:
			return nil, fmt.Errorf("line %d: nested structures are not allowed in token lists", item.Line)
		}
	}
	return list, nil
}

func (v Value) MarshalYAML() (any, error) {
	if v.IsList() {
		return v.List, nil
	}
	return v.Scalar, nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsList() {
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Scalar)
}

// MarshalYAML keeps token names in natural order so output is stable and
// readable.
func (c Category) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range c.Names() {
		val := &yaml.Node{}
		if err := val.Encode(c[name]); err != nil {
			return nil, err
		}
		if !c[name].IsList() {
			val.Style = yaml.DoubleQuotedStyle
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, val)
	}
	return node, nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, name := range c.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := c[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
