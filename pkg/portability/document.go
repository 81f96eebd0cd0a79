// Package portability implements export and import of keeper state as
// portable documents. Exports snapshot every list; imports re-create the
// entries through the normal keeper lifecycle, so imported items always
// receive fresh ids.
package portability

import (
	"time"

	"github.com/getlistd/listd/pkg/entry"
	"github.com/getlistd/listd/pkg/keeper"
)

// DocumentVersion is the export document version this build writes.
const DocumentVersion = "1"

// Document is a full snapshot of every list, keyed by list name.
type Document struct {
	Version    string              `json:"version" yaml:"version"`
	ExportedAt time.Time           `json:"exportedAt" yaml:"exportedAt"`
	Lists      map[string]ListDump `json:"lists" yaml:"lists"`
}

// ListDump is one list's items plus the kind they decode into.
type ListDump struct {
	Kind  string     `json:"kind" yaml:"kind"`
	Items []ItemDump `json:"items" yaml:"items"`
}

// ItemDump is a single exported item. Fields is the kind-specific payload
// as a generic map so one document type covers every kind. The id is
// informational only: import never carries ids over.
type ItemDump struct {
	ID          int64                  `json:"id" yaml:"id"`
	Done        bool                   `json:"done" yaml:"done"`
	CreatedAt   time.Time              `json:"createdAt" yaml:"createdAt"`
	CompletedAt *time.Time             `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Fields      map[string]interface{} `json:"fields" yaml:"fields"`
}

// Stores bundles the three concrete keepers the daemon serves. Export and
// Import operate on the bundle rather than the registry because decoding a
// generic field map back into an entry needs the concrete type.
type Stores struct {
	Tasks     *keeper.Keeper[entry.Task]
	Groceries *keeper.Keeper[entry.Grocery]
	Cards     *keeper.Keeper[entry.Card]
}

// ListNames are the list names a document may contain, in export order.
var ListNames = []string{"tasks", "groceries", "cards"}
