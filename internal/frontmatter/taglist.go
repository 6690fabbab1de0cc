package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TagList accepts either a YAML sequence or a comma-separated scalar.
// Items are whitespace-trimmed and empty items dropped; order is preserved
// and duplicates are kept.
type TagList []string

func (t *TagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*t = splitTags(raw)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		list := make(TagList, 0, len(items))
		for _, item := range items {
			if v := strings.TrimSpace(item); v != "" {
				list = append(list, v)
			}
		}
		*t = list
		return nil
	default:
		return fmt.Errorf("tags must be a scalar or a sequence, got %s", value.Tag)
	}
}

func splitTags(raw string) TagList {
	parts := strings.Split(raw, ",")
	list := make(TagList, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			list = append(list, v)
		}
	}
	return list
}
