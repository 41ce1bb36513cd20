package dmpexport

import (
	"github.com/benjaminschreck/go-dmpexport/pkg/dmpexport/xml"
)

// TurnRunIntoHyperlink makes run a hyperlink to url, registering the
// target in rels. It does nothing and returns false when url is empty.
func TurnRunIntoHyperlink(rels *xml.Relationships, run *xml.Run, url string) bool {
	if url == "" || rels == nil || run == nil {
		return false
	}
	id := rels.AddExternal(xml.RelTypeHyperlink, url)
	run.MakeHyperlink(id)
	return true
}
