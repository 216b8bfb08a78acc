package site

import "context"

// Section is the navigation entry for the generated pages: the index page
// first, then the per-directory pages sorted by source path.
type Section struct {
	Title string
	Pages []Page
}

// Nav assembles the navigation section for the generator's table.
func (g *Generator) Nav(ctx context.Context) (Section, error) {
	pages, err := g.Pages(ctx)
	if err != nil {
		return Section{}, err
	}
	return Section{Title: g.cfg.NavTitle, Pages: pages}, nil
}
