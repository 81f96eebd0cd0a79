package portability

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/beevik/etree"
)

// EncodeXML renders the document as XML for consumption by external tools.
// Lists and fields are emitted in sorted order so output is deterministic.
//
//	<listd version="1" exportedAt="...">
//	  <list name="tasks" kind="task">
//	    <item id="1" done="false" createdAt="...">
//	      <field name="title">Try listd</field>
//	    </item>
//	  </list>
//	</listd>
func EncodeXML(doc *Document) ([]byte, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := out.CreateElement("listd")
	root.CreateAttr("version", doc.Version)
	root.CreateAttr("exportedAt", doc.ExportedAt.Format(time.RFC3339))

	names := make([]string, 0, len(doc.Lists))
	for name := range doc.Lists {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dump := doc.Lists[name]
		listEl := root.CreateElement("list")
		listEl.CreateAttr("name", name)
		listEl.CreateAttr("kind", dump.Kind)

		for _, it := range dump.Items {
			itemEl := listEl.CreateElement("item")
			itemEl.CreateAttr("id", strconv.FormatInt(it.ID, 10))
			itemEl.CreateAttr("done", strconv.FormatBool(it.Done))
			itemEl.CreateAttr("createdAt", it.CreatedAt.Format(time.RFC3339))
			if it.CompletedAt != nil {
				itemEl.CreateAttr("completedAt", it.CompletedAt.Format(time.RFC3339))
			}

			keys := make([]string, 0, len(it.Fields))
			for k := range it.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fieldEl := itemEl.CreateElement("field")
				fieldEl.CreateAttr("name", k)
				fieldEl.SetText(xmlValue(it.Fields[k]))
			}
		}
	}

	out.Indent(2)
	return out.WriteToBytes()
}

// xmlValue renders a JSON-typed field value as element text. Whole-number
// floats render without a decimal point.
func xmlValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
