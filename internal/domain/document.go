package domain

import "strings"

// FeedType описывает словарь, определенный для документа при разборе.
type FeedType string

const (
	FeedTypeAtom    FeedType = "atom"
	FeedTypeRSS     FeedType = "rss"
	FeedTypeUnknown FeedType = "unknown"
)

// Attr - атрибут элемента с квалифицированным именем (prefix:local или local).
type Attr struct {
	Name  string
	Value string
}

// Node - элемент разобранного XML-документа.
// Name хранит квалифицированное имя тега в том виде, в каком оно записано в документе.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	content  []contentPart
}

// contentPart сохраняет порядок текста и дочерних элементов для TextContent.
type contentPart struct {
	text  string
	child *Node
}

// AppendText добавляет текстовый фрагмент (включая CDATA) в содержимое узла.
func (n *Node) AppendText(s string) {
	if s == "" {
		return
	}
	n.content = append(n.content, contentPart{text: s})
}

// AppendChild добавляет дочерний элемент в конец содержимого узла.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
	n.content = append(n.content, contentPart{child: child})
}

// Attr возвращает значение атрибута по квалифицированному имени.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// TextContent возвращает конкатенацию всего текста узла и его потомков в порядке документа.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, part := range n.content {
		if part.child != nil {
			part.child.writeText(b)
			continue
		}
		b.WriteString(part.text)
	}
}

// ElementsByTag возвращает всех потомков узла с указанным именем в порядке документа.
// Сам узел в результат не входит.
func (n *Node) ElementsByTag(name string) []*Node {
	var found []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, child := range cur.Children {
			if child.Name == name {
				found = append(found, child)
			}
			walk(child)
		}
	}
	walk(n)
	return found
}

// FirstByTag возвращает первого потомка с указанным именем или nil.
func (n *Node) FirstByTag(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
		if found := child.FirstByTag(name); found != nil {
			return found
		}
	}
	return nil
}

// Document - дерево разобранной ленты.
// Root - виртуальный корень, единственным потомком которого является корневой элемент XML.
type Document struct {
	Type FeedType
	Root *Node
}

// NewDocument создает пустой документ с виртуальным корнем.
func NewDocument() *Document {
	return &Document{
		Type: FeedTypeUnknown,
		Root: &Node{},
	}
}

// ElementsByTag ищет элементы по имени во всем документе.
func (d *Document) ElementsByTag(name string) []*Node {
	if d == nil || d.Root == nil {
		return nil
	}
	return d.Root.ElementsByTag(name)
}
