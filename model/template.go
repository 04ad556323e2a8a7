package model

import "strings"

// TagAttributeDelimiter is the substring of an attribute config string after
// which the matchable tag attribute name starts
const TagAttributeDelimiter = "%@|Site Code%_%@|SCADA Asset Name%"

// AttributeDescriptor is one attribute declared on a template
type AttributeDescriptor struct {
	Name         string `json:"name"`
	TagAttribute string `json:"tag_attribute"` // derived matchable name, may be empty
	ConfigString string `json:"config_string"`
}

// TemplateDefinition is a named template with an optional base template and
// its directly declared attributes
type TemplateDefinition struct {
	Name         string                `json:"name"`
	BaseTemplate string                `json:"base_template,omitempty"`
	Attributes   []AttributeDescriptor `json:"attributes"`
}

// ResolvedTemplate is a template with its inheritance chain flattened.
// Direct attributes precede inherited ones; on name collision the nearest
// declaration wins.
type ResolvedTemplate struct {
	Name       string                `json:"name"`
	Attributes []AttributeDescriptor `json:"attributes"`
}

// AttributeCount returns the size of the flattened attribute list
func (t ResolvedTemplate) AttributeCount() int {
	return len(t.Attributes)
}

// RequiredAttributes returns the set of tag attribute names an asset must
// carry to match this template. Attributes without a derivable tag attribute
// do not participate in matching.
func (t ResolvedTemplate) RequiredAttributes() StringSet {
	required := StringSet{}
	for _, attr := range t.Attributes {
		if attr.TagAttribute != "" {
			required.Add(attr.TagAttribute)
		}
	}
	return required
}

// TemplateMatch maps an asset identifier to the name of its assigned template
type TemplateMatch map[string]string

// ParseTagAttribute derives the matchable tag attribute name from an attribute
// config string. Everything after the delimiter, lower-cased and trimmed; an
// absent delimiter yields an empty name.
func ParseTagAttribute(configString string) string {
	_, after, found := strings.Cut(configString, TagAttributeDelimiter)
	if !found {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(after))
}
