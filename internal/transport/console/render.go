package console

import (
	"fmt"
	"io"
	"strings"

	"feedview/internal/usecase"
)

const (
	heartOn  = "♥"
	heartOff = "♡"
)

// Renderer печатает страницу записей в текстовом виде.
type Renderer struct {
	w io.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render выводит карточки записей текущей страницы и, если страниц больше одной,
// строку "Página X de Y".
func (r *Renderer) Render(page usecase.Page) error {
	var b strings.Builder
	if len(page.Entries) == 0 {
		b.WriteString("(sin entradas)\n")
	}
	for i, e := range page.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		heart := heartOff
		if page.Favorites[e.Link] {
			heart = heartOn
		}
		fmt.Fprintf(&b, "%s %s\n", heart, e.Title)
		fmt.Fprintf(&b, "  %s\n", e.Summary)
		fmt.Fprintf(&b, "  %s\n", e.PublishedAt)
		fmt.Fprintf(&b, "  %s\n", e.Link)
	}
	if page.PaginationVisible {
		fmt.Fprintf(&b, "\nPágina %d de %d\n", page.CurrentPage, page.TotalPages)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}
