package model

const (
	FilterCollectionName  = "filters"
	ArticleCollectionName = "articles"

	// MaxFilterLevel is the deepest level a filter may sit at (root is 0).
	MaxFilterLevel = 2
)

// FilterRecord is the stored row of a filter facet.
type FilterRecord struct {
	ID           string `bson:"_id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Slug         string `bson:"slug" json:"slug"`
	ParentID     string `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Level        int    `bson:"level" json:"level"`
	OrderIndex   int    `bson:"order_index" json:"order_index"`
	Description  string `bson:"description,omitempty" json:"description,omitempty"`
	ArticleCount int    `bson:"article_count" json:"articleCount"`
}

// FilterNode is a filter facet with its children attached.
type FilterNode struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	ParentID     string        `json:"parent_id,omitempty"`
	Level        int           `json:"level"`
	OrderIndex   int           `json:"order_index"`
	Description  string        `json:"description,omitempty"`
	ArticleCount int           `json:"articleCount,omitempty"`
	Children     []*FilterNode `json:"children"`
}

// --- Huma Structs ---

type FilterTreeInput struct {
	Query string `query:"q" doc:"Case-insensitive name search"`
}

type SelectionAction string

const (
	ActionSelect   SelectionAction = "select"
	ActionDeselect SelectionAction = "deselect"
	ActionClear    SelectionAction = "clear"
)

type SelectionRequest struct {
	Query  string          `json:"query,omitempty" doc:"Current URL query string" example:"filters=markets&filters=crypto"`
	Action SelectionAction `json:"action" enum:"select,deselect,clear"`
	ID     string          `json:"id,omitempty" doc:"Filter the action applies to"`
}

type SelectionResult struct {
	Filters []string      `json:"filters"`
	Query   string        `json:"query"`
	Path    []*FilterNode `json:"path"`
}

type SelectionInput struct {
	Body SelectionRequest
}

type FilterIDInput struct {
	ID string `path:"id"`
}

type ReparentInput struct {
	ID   string `path:"id"`
	Body struct {
		ParentID string `json:"parentId,omitempty" doc:"New parent, empty to make the filter a root"`
	}
}
