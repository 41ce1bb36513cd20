// Package dmpexport fills Word (DOCX) templates with the content of a
// Data Management Plan.
//
// A template carries bracketed placeholder tokens such as [projectname]
// or [sensitivedata] in its paragraphs, and dynamic tables whose second
// row holds a table sentinel such as [datasetTable]. An export replaces
// every token with text computed from the DMP and expands each dynamic
// table to one row per item, keeping the formatting of the template.
//
// # Quick Start
//
//	plan, err := dmp.Load(jsonFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	exporter, err := dmpexport.NewWithOptions(
//	    dmpexport.WithConfig(&dmpexport.Config{Locale: "de"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := exporter.ExportFile(ctx, plan, "template.docx", "plan.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//	    log.Println("warning:", w)
//	}
//
// # Substitution
//
// Tokens are matched inside the text of a single run. Replacements are
// applied in a fixed order, and a value may itself contain a token that a
// later entry resolves. Values of list tokens ([contributors], [storage],
// [legalrestriction], [repoinformation] by default) are split on ";" and
// written one fragment per line.
//
// Headers and footers only receive [projectnameText], [acronym] and
// [grantid].
//
// # Tables
//
// The identifier row of a dynamic table is removed, and the row after it
// is cloned once per item. Without items the row is blanked, except for
// the reused-dataset and deletion tables, which are removed together with
// their caption paragraph. The new-dataset table is removed the same way
// when the plan has datasets but none of them is new. The target
// audience column of the repository
// table is merged vertically.
//
// # Errors
//
// A missing narrative phrase or an unknown table sentinel fails the
// export. Rows that cannot be synthesized are skipped and reported in
// Result.Warnings. Unless Config.Lenient is set, a known token left in the
// document fails the export as well.
package dmpexport
