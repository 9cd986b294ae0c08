package manifest

import (
	"github.com/raykroeker/vimfiles/pkg/errors"
	"gopkg.in/yaml.v3"
)

func parseYAML(data []byte) (*document, error) {
	doc := newDocument()

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return doc, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrManifestInvalid,
			"manifest must be a mapping of plugin name to record")
	}

	if err := top.Decode(&doc.records); err != nil {
		return nil, err
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		name := top.Content[i].Value
		doc.addPlugin(name)

		rec := top.Content[i+1]
		if rec.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(rec.Content); j += 2 {
			if rec.Content[j].Value != "links" || rec.Content[j+1].Kind != yaml.MappingNode {
				continue
			}
			links := rec.Content[j+1]
			for k := 0; k+1 < len(links.Content); k += 2 {
				doc.addLinkKey(name, links.Content[k].Value)
			}
		}
	}
	return doc, nil
}
