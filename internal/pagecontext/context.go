package pagecontext

import (
	"slices"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/widgets"
)

// Kind identifies which manifest a page is built from.
type Kind string

const (
	KindHome          Kind = "home"
	KindStandalone    Kind = "standalone"
	KindChronological Kind = "chronological"
	KindCategory      Kind = "category"
	KindTag           Kind = "tag"
	KindArticle       Kind = "article"
)

// Context is the read-only content snapshot for one render. Accessors hand
// out copies, so widgets can never alter what a sibling widget sees.
type Context struct {
	kind       Kind
	feed       []*content.Article
	staffPicks []*content.Article
	categories []*content.Category
	scoped     []*content.Article
	article    *content.Article
	category   *content.Category
	tag        *content.Tag
	degraded   []widgets.Slice
}

// Empty returns a context with no slices, used when every read failed.
func Empty(kind Kind) *Context {
	return &Context{kind: kind}
}

func (c *Context) Kind() Kind {
	return c.kind
}

func (c *Context) Feed() []*content.Article {
	return cloneArticles(c.feed)
}

func (c *Context) StaffPicks() []*content.Article {
	return cloneArticles(c.staffPicks)
}

func (c *Context) Categories() []*content.Category {
	out := make([]*content.Category, len(c.categories))
	for i, category := range c.categories {
		out[i] = category.Clone()
	}
	return out
}

// Scoped is the windowed listing for category, tag and chronological pages.
func (c *Context) Scoped() []*content.Article {
	return cloneArticles(c.scoped)
}

// LeadArticle is the newest feed entry, or nil.
func (c *Context) LeadArticle() *content.Article {
	if len(c.feed) == 0 {
		return nil
	}
	return c.feed[0].Clone()
}

func (c *Context) Article() *content.Article {
	return c.article.Clone()
}

func (c *Context) Category() *content.Category {
	return c.category.Clone()
}

func (c *Context) Tag() *content.Tag {
	return c.tag.Clone()
}

// Degraded lists the slices that fell back to empty because their read failed.
func (c *Context) Degraded() []widgets.Slice {
	return slices.Clone(c.degraded)
}

// Slice returns a copy of the named slice for widget binding. ok is false
// when the slice does not exist, the entity is absent or c is nil.
func (c *Context) Slice(name widgets.Slice) (any, bool) {
	if c == nil {
		return nil, false
	}
	switch name {
	case widgets.SliceFeed:
		return c.Feed(), true
	case widgets.SliceStaffPicks:
		return c.StaffPicks(), true
	case widgets.SliceCategories:
		return c.Categories(), true
	case widgets.SliceScoped:
		return c.Scoped(), true
	case widgets.SliceLeadArticle:
		lead := c.LeadArticle()
		return lead, lead != nil
	case widgets.SliceArticle:
		return c.Article(), c.article != nil
	case widgets.SliceCategory:
		return c.Category(), c.category != nil
	case widgets.SliceTag:
		return c.Tag(), c.tag != nil
	default:
		return nil, false
	}
}

func cloneArticles(articles []*content.Article) []*content.Article {
	out := make([]*content.Article, len(articles))
	for i, article := range articles {
		out[i] = article.Clone()
	}
	return out
}
