package rules_test

import (
	"fmt"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/rules"
)

func ExampleSet_Resolve() {
	live := []rules.Node{
		{ID: "paid-ads", Layer: catalog.Marketing},
		{ID: "website", Layer: catalog.Experiences},
		{ID: "web-app", Layer: catalog.Experiences},
	}

	for _, m := range rules.Default().Resolve("", live, nil) {
		fmt.Println(m.Key)
	}
	// Output:
	// paid-ads->website:rule-global-0
}
