package parser

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"feedview/internal/domain"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"
)

type XMLParser struct {
	log *slog.Logger
}

func NewXMLParser(log *slog.Logger) *XMLParser {
	return &XMLParser{
		log: log,
	}
}

// Parse читает ленту целиком и строит дерево элементов.
// Имена тегов сохраняются с префиксом пространства имен, как в DOM.
// Любая ошибка разбора оборачивает domain.ErrParse.
func (p *XMLParser) Parse(ctx context.Context, reader io.Reader) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		p.log.Error("Error reading feed body", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to read feed body: %v", domain.ErrFetch, err)
	}
	doc, err := buildTree(data)
	if err != nil {
		p.log.Error(
			"Error decoding XML",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: failed to decode XML: %v", domain.ErrParse, err)
	}
	doc.Type = detectFeedType(data)
	p.log.Debug("Feed document parsed",
		slog.String("feed_type", string(doc.Type)),
		slog.Int("bytes", len(data)),
	)
	return doc, nil
}

func buildTree(data []byte) (*domain.Document, error) {
	doc := domain.NewDocument()
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	stack := []*domain.Node{doc.Root}
	for {
		tok, err := decoder.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			node := &domain.Node{
				Name:  qualifiedName(t.Name),
				Attrs: make([]domain.Attr, 0, len(t.Attr)),
			}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, domain.Attr{Name: qualifiedName(a.Name), Value: a.Value})
			}
			if top == doc.Root && len(doc.Root.Children) > 0 {
				return nil, fmt.Errorf("unexpected second root element <%s>", node.Name)
			}
			top.AppendChild(node)
			stack = append(stack, node)
		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 1 {
				return nil, fmt.Errorf("unexpected end element </%s>", name)
			}
			if top.Name != name {
				return nil, fmt.Errorf("element <%s> closed by </%s>", top.Name, name)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if top != doc.Root {
				top.AppendText(string(t))
			}
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].Name)
	}
	if len(doc.Root.Children) == 0 {
		return nil, errors.New("document has no root element")
	}
	return doc, nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// detectFeedType определяет словарь ленты. Результат используется только для логов.
func detectFeedType(data []byte) domain.FeedType {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeAtom:
		return domain.FeedTypeAtom
	case gofeed.FeedTypeRSS:
		return domain.FeedTypeRSS
	default:
		return domain.FeedTypeUnknown
	}
}
