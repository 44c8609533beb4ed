package serializer_test

import (
	"fmt"
	"log"

	"github.com/erraggy/idpdocs/catalog"
	"github.com/erraggy/idpdocs/serializer"
)

func ExampleSerialize() {
	doc, err := catalog.Build("https://idp.example.org")
	if err != nil {
		log.Fatal(err)
	}
	data, err := serializer.Serialize(doc, serializer.WithFormat(serializer.FormatYAML))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(data) > 0)
	// Output: true
}
