// Package normalizer приводит записи RSS и Atom к единой модели domain.Entry.
package normalizer

import (
	"strings"

	"feedview/internal/domain"
)

// Теги контейнеров записей в порядке приоритета. Используется первый словарь,
// давший хотя бы один узел.
var entryTags = []string{"entry", "item"}

// candidate описывает один источник значения поля: тег и, если задан, атрибут.
// Без атрибута значением служит текстовое содержимое элемента.
type candidate struct {
	Tag  string
	Attr string
}

// fieldRule - упорядоченный список кандидатов и заглушка на случай, если ни один не подошел.
type fieldRule struct {
	Candidates []candidate
	Fallback   string
}

var (
	titleRule = fieldRule{
		Candidates: []candidate{{Tag: "title"}},
		Fallback:   domain.FallbackTitle,
	}
	linkRule = fieldRule{
		Candidates: []candidate{{Tag: "link"}, {Tag: "link", Attr: "href"}},
		Fallback:   domain.FallbackLink,
	}
	summaryRule = fieldRule{
		Candidates: []candidate{{Tag: "description"}, {Tag: "summary"}},
		Fallback:   domain.FallbackSummary,
	}
	publishedRule = fieldRule{
		Candidates: []candidate{{Tag: "pubDate"}, {Tag: "updated"}},
		Fallback:   domain.FallbackPublishedAt,
	}
)

// Normalize возвращает записи документа в порядке их следования.
// Документ без записей (или nil) дает пустой срез.
func Normalize(doc *domain.Document) []domain.Entry {
	nodes := EntryNodes(doc)
	entries := make([]domain.Entry, 0, len(nodes))
	for _, node := range nodes {
		entries = append(entries, NormalizeNode(node))
	}
	return entries
}

// EntryNodes находит узлы записей: сначала Atom entry, затем RSS item.
func EntryNodes(doc *domain.Document) []*domain.Node {
	for _, tag := range entryTags {
		if nodes := doc.ElementsByTag(tag); len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}

// NormalizeNode строит запись из одного узла entry или item.
func NormalizeNode(node *domain.Node) domain.Entry {
	return domain.Entry{
		Title:       resolve(node, titleRule),
		Link:        resolve(node, linkRule),
		Summary:     resolve(node, summaryRule),
		PublishedAt: resolve(node, publishedRule),
	}
}

// resolve перебирает кандидатов по порядку. Для каждого тега берется только первый
// найденный элемент; пустое значение равносильно отсутствию.
func resolve(node *domain.Node, rule fieldRule) string {
	for _, c := range rule.Candidates {
		el := node.FirstByTag(c.Tag)
		if el == nil {
			continue
		}
		if v := strings.TrimSpace(value(el, c)); v != "" {
			return v
		}
	}
	return rule.Fallback
}

func value(el *domain.Node, c candidate) string {
	if c.Attr == "" {
		return el.TextContent()
	}
	v, _ := el.Attr(c.Attr)
	return v
}
