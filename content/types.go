package content

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Article is a published piece of editorial content.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID           uuid.UUID `bun:",pk,type:uuid"              json:"id"`
	Slug         string    `bun:"slug,notnull,unique"        json:"slug"`
	Title        string    `bun:"title,notnull"              json:"title"`
	Summary      string    `bun:"summary"                    json:"summary,omitempty"`
	Body         string    `bun:"body"                       json:"body,omitempty"`
	Author       string    `bun:"author"                     json:"author,omitempty"`
	ImageURL     string    `bun:"image_url"                  json:"image_url,omitempty"`
	CategorySlug string    `bun:"category_slug"              json:"category,omitempty"`
	Tags         []string  `bun:"tags,type:jsonb"            json:"tags,omitempty"`
	// TagList stores Tags as ",a,b," so SQL adapters can match a tag with LIKE.
	TagList     string    `bun:"tag_list"                   json:"-"`
	StaffPick   bool      `bun:"staff_pick,notnull,default:false" json:"staff_pick"`
	PublishedAt time.Time `bun:"published_at,notnull"       json:"published_at"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Category groups articles under a single editorial topic.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID          uuid.UUID `bun:",pk,type:uuid"       json:"id"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Name        string    `bun:"name,notnull"        json:"name"`
	Description string    `bun:"description"         json:"description,omitempty"`
	Position    int       `bun:"position,notnull,default:0" json:"position"`
}

// Tag is a free-form label attached to articles.
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID   uuid.UUID `bun:",pk,type:uuid"       json:"id"`
	Slug string    `bun:"slug,notnull,unique" json:"slug"`
	Name string    `bun:"name,notnull"        json:"name"`
}

// Layout is the editor-authored widget composition for a page key.
type Layout struct {
	bun.BaseModel `bun:"table:layouts,alias:l"`

	ID        uuid.UUID    `bun:",pk,type:uuid"           json:"id"`
	PageKey   string       `bun:"page_key,notnull,unique" json:"page_key"`
	Title     string       `bun:"title"                   json:"title,omitempty"`
	IsActive  bool         `bun:"is_active,notnull"       json:"is_active"`
	Widgets   []WidgetNode `bun:"widgets,type:jsonb"      json:"widgets"`
	UpdatedAt time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// WidgetNode is one entry of a layout. Props is opaque to everything but the
// renderer registered for Type.
type WidgetNode struct {
	Type  string         `json:"type"`
	Props map[string]any `json:"props,omitempty"`
}

// HasTag reports whether the article carries the tag slug.
func (a *Article) HasTag(slug string) bool {
	return a != nil && slices.Contains(a.Tags, slug)
}

// SyncTagList recomputes TagList from Tags.
func (a *Article) SyncTagList() {
	if a == nil {
		return
	}
	if len(a.Tags) == 0 {
		a.TagList = ""
		return
	}
	a.TagList = "," + strings.Join(a.Tags, ",") + ","
}

// Clone returns a deep copy of the article.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	cloned := *a
	cloned.Tags = slices.Clone(a.Tags)
	return &cloned
}

func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	cloned := *c
	return &cloned
}

func (t *Tag) Clone() *Tag {
	if t == nil {
		return nil
	}
	cloned := *t
	return &cloned
}

// Clone returns a copy of the layout. Widget props are copied one level deep.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	cloned := *l
	cloned.Widgets = CloneWidgets(l.Widgets)
	return &cloned
}

// CloneWidgets copies nodes and their top level props.
func CloneWidgets(nodes []WidgetNode) []WidgetNode {
	if nodes == nil {
		return nil
	}
	out := make([]WidgetNode, len(nodes))
	for i, node := range nodes {
		out[i] = WidgetNode{Type: node.Type, Props: cloneProps(node.Props)}
	}
	return out
}

func cloneProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for key, value := range props {
		out[key] = value
	}
	return out
}

// CloneArticles deep copies a slice of articles, keeping nil as nil.
func CloneArticles(articles []*Article) []*Article {
	if articles == nil {
		return nil
	}
	out := make([]*Article, len(articles))
	for i, article := range articles {
		out[i] = article.Clone()
	}
	return out
}
