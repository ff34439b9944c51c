package content

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Document is a content file split into its metadata header and body.
type Document struct {
	Meta map[string]any
	Body string
}

var headerFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// ErrUnclosedHeader reports a file that opens a metadata header and never
// closes it.
var ErrUnclosedHeader = errors.New("front matter header is not closed")

var byteOrderMark = []byte("\uFEFF")

// ParseDocument splits data into a metadata map and body text. YAML headers
// are delimited by "---" lines, TOML headers by "+++". A file without a
// header is valid and yields empty metadata; a header without its closing
// line is an error. A leading byte order mark is ignored.
func ParseDocument(data []byte) (Document, error) {
	data = bytes.TrimPrefix(data, byteOrderMark)
	if err := checkHeaderClosed(data); err != nil {
		return Document{}, err
	}

	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta, headerFormats...)
	if err != nil {
		return Document{}, fmt.Errorf("parse front matter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return Document{Meta: meta, Body: string(body)}, nil
}

func checkHeaderClosed(data []byte) error {
	first, rest, _ := bytes.Cut(bytes.TrimLeft(data, "\r\n"), []byte("\n"))
	delim := string(bytes.TrimRight(first, " \t\r"))
	if delim != "---" && delim != "+++" {
		return nil
	}
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimRight(line, " \t\r")) == delim {
			return nil
		}
	}
	return fmt.Errorf("%w: missing closing %q line", ErrUnclosedHeader, delim)
}
