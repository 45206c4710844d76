// Package xmldict converts XML documents into nested map[string]any values
// that can be stored as JSON and walked like any other supplier payload.
//
// Conventions:
//   - attributes become "@name" keys
//   - character data next to attributes or child elements becomes "#text"
//   - an element with only text becomes a string, an empty element nil
//   - repeated sibling elements become []any in document order
//   - namespace prefixes are kept as written ("soap:Body", "@xmlns:soap")
package xmldict

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	AttrPrefix = "@"
	TextKey    = "#text"
)

var ErrEmptyDocument = errors.New("xmldict: empty document")

type frame struct {
	name     string
	attrs    map[string]any
	children map[string]any
	text     strings.Builder
}

// Decode parses data and returns {rootName: rootValue}.
func Decode(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charsetReader

	var (
		stack []*frame
		root  map[string]any
	)
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmldict: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			f := &frame{name: qualified(t.Name)}
			if len(t.Attr) > 0 {
				f.attrs = make(map[string]any, len(t.Attr))
				for _, a := range t.Attr {
					f.attrs[AttrPrefix+qualified(a.Name)] = a.Value
				}
			}
			stack = append(stack, f)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("xmldict: unexpected end element %s", qualified(t.Name))
			}
			top := stack[len(stack)-1]
			if name := qualified(t.Name); name != top.name {
				return nil, fmt.Errorf("xmldict: element <%s> closed by </%s>", top.name, name)
			}
			stack = stack[:len(stack)-1]
			v := top.value()
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("xmldict: multiple root elements")
				}
				root = map[string]any{top.name: v}
				continue
			}
			stack[len(stack)-1].addChild(top.name, v)
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("xmldict: unclosed element <%s>", stack[len(stack)-1].name)
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// DecodeString is Decode for string input.
func DecodeString(s string) (map[string]any, error) { return Decode([]byte(s)) }

func (f *frame) addChild(name string, v any) {
	if f.children == nil {
		f.children = make(map[string]any)
	}
	prev, ok := f.children[name]
	if !ok {
		f.children[name] = v
		return
	}
	if list, isList := prev.([]any); isList {
		f.children[name] = append(list, v)
		return
	}
	f.children[name] = []any{prev, v}
}

func (f *frame) value() any {
	text := strings.TrimSpace(f.text.String())
	if len(f.attrs) == 0 && len(f.children) == 0 {
		if text == "" {
			return nil
		}
		return text
	}
	m := make(map[string]any, len(f.attrs)+len(f.children)+1)
	for k, v := range f.attrs {
		m[k] = v
	}
	for k, v := range f.children {
		m[k] = v
	}
	if text != "" {
		m[TextKey] = text
	}
	return m
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	case "utf-8", "utf8", "":
		return input, nil
	}
	return nil, fmt.Errorf("xmldict: unsupported charset %q", label)
}
