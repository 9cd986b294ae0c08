package manifest

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// parseTOML decodes the document with go-toml and walks it a second time
// with the unstable parser, which is the only way to recover table order.
func parseTOML(data []byte) (*document, error) {
	doc := newDocument()

	if err := toml.Unmarshal(data, &doc.records); err != nil {
		return nil, err
	}

	p := unstable.Parser{}
	p.Reset(data)

	var table []string
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(e.Key())
			if len(table) > 0 {
				doc.addPlugin(table[0])
			}
		case unstable.KeyValue:
			full := append(append([]string(nil), table...), keyParts(e.Key())...)
			if len(full) == 0 {
				continue
			}
			doc.addPlugin(full[0])
			switch {
			case len(full) == 3 && full[1] == "links":
				doc.addLinkKey(full[0], full[2])
			case len(full) == 2 && full[1] == "links":
				if v := e.Value(); v != nil && v.Kind == unstable.InlineTable {
					it := v.Children()
					for it.Next() {
						if kv := it.Node(); kv.Kind == unstable.KeyValue {
							doc.addLinkKey(full[0], strings.Join(keyParts(kv.Key()), "."))
						}
					}
				}
			case len(full) == 1:
				if v := e.Value(); v != nil && v.Kind == unstable.InlineTable {
					collectInlineLinks(doc, full[0], v)
				}
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return doc, nil
}

// collectInlineLinks handles `name = { links = { ... } }`.
func collectInlineLinks(doc *document, plugin string, rec *unstable.Node) {
	it := rec.Children()
	for it.Next() {
		kv := it.Node()
		if kv.Kind != unstable.KeyValue {
			continue
		}
		key := keyParts(kv.Key())
		if len(key) != 1 || key[0] != "links" {
			continue
		}
		v := kv.Value()
		if v == nil || v.Kind != unstable.InlineTable {
			continue
		}
		links := v.Children()
		for links.Next() {
			if l := links.Node(); l.Kind == unstable.KeyValue {
				doc.addLinkKey(plugin, strings.Join(keyParts(l.Key()), "."))
			}
		}
	}
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}
