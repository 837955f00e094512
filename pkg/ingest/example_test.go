package ingest_test

import (
	"fmt"

	"github.com/amplistack/amplistack/pkg/ingest"
)

func ExampleSlugify() {
	fmt.Println(ingest.Slugify("Customer Data Platform"))
	fmt.Println(ingest.Slugify("  ?? "))
	// Output:
	// customer-data-platform
	// node
}

func ExampleParse() {
	p, _ := ingest.Parse([]byte(`{"data":{"diagramNodes":[{"label":"Braze","layer":"activation"}]}}`))
	fmt.Println(len(p.Nodes), p.Nodes[0].DisplayName(), p.Nodes[0].Layer)
	// Output: 1 Braze activation
}
