// Package dmp defines the Data Management Plan aggregate consumed by the
// document exporter.
//
// A DMP is loaded once per export as a read-only snapshot. Load decodes a
// JSON snapshot and resolves it: host variants are checked and the
// distribution index (host to datasets) is built, so rendering code never
// inspects host types or walks distributions more than once.
//
//	f, err := os.Open("plan.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	plan, err := dmp.Load(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ds := range plan.NewDatasets() {
//	    fmt.Println(ds.Title)
//	}
package dmp
