// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdconv/pkg/ast"
)

const fence = "---"

// splitFrontMatter separates a leading YAML block from the body. The first
// non-blank line must be exactly "---" and the block closes at the next line
// that starts with "---". The rest of the closing line is discarded. When
// there is no complete block the whole input is the body.
func splitFrontMatter(input string) (yamlText, body string, ok bool) {
	trimmed := strings.TrimLeft(input, " \t\r\n")
	first, rest, found := strings.Cut(trimmed, "\n")
	if !found || strings.TrimRight(first, " \t\r") != fence {
		return "", input, false
	}

	var block []string
	for {
		var line string
		line, rest, found = strings.Cut(rest, "\n")
		if strings.HasPrefix(line, fence) {
			return strings.TrimSpace(strings.Join(block, "\n")), rest, true
		}
		if !found {
			return "", input, false
		}
		block = append(block, line)
	}
}

// parseMeta decodes front matter into metadata. Empty text yields empty
// metadata; a root that is not a mapping is an error.
func parseMeta(src string) (ast.Meta, error) {
	meta := ast.Meta{}
	if src == "" {
		return meta, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return nil, &MetadataError{Msg: err.Error()}
	}
	if len(doc.Content) == 0 {
		return meta, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, &MetadataError{Msg: "front matter is not a mapping"}
	}
	for k, v := range mappingPairs(root) {
		meta[k] = metaValue(v, 0)
	}
	return meta, nil
}

// maxMetaDepth bounds recursion through nested or aliased YAML values.
const maxMetaDepth = 64

// metaValue converts a YAML node. Numbers keep their source spelling, null
// and unsupported values become the empty string.
func metaValue(n *yaml.Node, depth int) ast.MetaValue {
	n = resolveAlias(n)
	if n == nil || depth > maxMetaDepth {
		return ast.MetaString("")
	}

	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err == nil {
				return ast.MetaBool(b)
			}
			return ast.MetaString(n.Value)
		case "!!null", "!!binary":
			return ast.MetaString("")
		default:
			return ast.MetaString(n.Value)
		}
	case yaml.SequenceNode:
		list := make(ast.MetaList, 0, len(n.Content))
		for _, item := range n.Content {
			list = append(list, metaValue(item, depth+1))
		}
		return list
	case yaml.MappingNode:
		m := ast.MetaMap{}
		for k, v := range mappingPairs(n) {
			m[k] = metaValue(v, depth+1)
		}
		return m
	}
	return ast.MetaString("")
}

// mappingPairs returns the string-keyed entries of a mapping node. Later
// duplicates win; non-string keys are skipped.
func mappingPairs(n *yaml.Node) map[string]*yaml.Node {
	pairs := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveAlias(n.Content[i])
		if key == nil || key.Kind != yaml.ScalarNode || key.ShortTag() != "!!str" {
			continue
		}
		pairs[key.Value] = n.Content[i+1]
	}
	return pairs
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for i := 0; n != nil && n.Kind == yaml.AliasNode && i < maxMetaDepth; i++ {
		n = n.Alias
	}
	return n
}
